// internal/app/system/backend/session.go
package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
)

// Session issues calls on behalf of one signed-in admin. It is cheap to
// create and holds no state beyond the token, so handlers build one per
// request.
type Session struct {
	c     *Client
	token string
}

// Session binds the client to an admin token.
func (c *Client) Session(token string) *Session {
	return &Session{c: c, token: token}
}

// Token returns the admin token this session sends.
func (s *Session) Token() string { return s.token }

func (s *Session) do(ctx context.Context, cl call, out any) (reply, error) {
	if s.token == "" {
		return reply{}, ErrNoToken
	}
	cl.token = s.token
	return s.c.do(ctx, cl, out)
}

// LoginResult is a successful admin sign-in.
type LoginResult struct {
	Token string
	Admin *models.Admin
}

// Login posts credentials to /api/admin/login. A response that is not
// JSON yields ErrNotJSON whatever its status; a non-OK JSON response yields
// an *APIError with the backend's message. The admin token is taken from
// the adminToken cookie the backend sets, or from a "token" field in the
// body when the backend sends it there instead.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	rp, err := c.send(ctx, call{
		op:       "admin.login",
		method:   http.MethodPost,
		path:     "/api/admin/login",
		jsonBody: map[string]string{"email": email, "password": password},
	})
	if err != nil {
		return LoginResult{}, err
	}
	if !rp.isJSON() {
		return LoginResult{}, ErrNotJSON
	}
	if rp.status < 200 || rp.status >= 300 {
		return LoginResult{}, newAPIError(rp)
	}

	var body models.LoginResponse
	_ = json.Unmarshal(rp.body, &body)

	token := tokenFromHeader(rp.header)
	if token == "" {
		token = body.Token
	}
	if token == "" {
		return LoginResult{}, &APIError{StatusCode: rp.status, Message: "Login response did not include a session", Body: string(rp.body)}
	}
	return LoginResult{Token: token, Admin: body.Admin}, nil
}

func tokenFromHeader(h http.Header) string {
	resp := http.Response{Header: h}
	for _, ck := range resp.Cookies() {
		if ck.Name == TokenCookie && ck.Value != "" {
			return ck.Value
		}
	}
	return ""
}

// Me fetches the signed-in admin. Any non-OK or non-JSON answer is an
// error; callers treat every error as "not signed in".
func (s *Session) Me(ctx context.Context) (models.Admin, error) {
	var out struct {
		models.Admin
		Wrapped *models.Admin `json:"admin"`
	}
	_, err := s.do(ctx, call{
		op:          "admin.me",
		method:      http.MethodGet,
		path:        "/api/admin/me",
		requireJSON: true,
	}, &out)
	if err != nil {
		return models.Admin{}, err
	}
	if out.Wrapped != nil {
		return *out.Wrapped, nil
	}
	return out.Admin, nil
}

// Logout ends the backend session. The response body is ignored.
func (s *Session) Logout(ctx context.Context) error {
	_, err := s.do(ctx, call{
		op:     "admin.logout",
		method: http.MethodPost,
		path:   "/api/admin/logout",
	}, nil)
	return err
}

// Forward relays a request to path on behalf of the session and returns
// the upstream status and body untouched. Only transport failures are
// errors.
func (s *Session) Forward(ctx context.Context, op, method, path string, query map[string][]string) (int, []byte, error) {
	if s.token == "" {
		return 0, nil, ErrNoToken
	}
	rp, err := s.c.send(ctx, call{
		op:     op,
		method: method,
		path:   path,
		query:  query,
		token:  s.token,
	})
	if err != nil {
		return 0, nil, err
	}
	return rp.status, rp.body, nil
}

// seg escapes an id for use as one path segment.
func seg(id string) string {
	return url.PathEscape(id)
}
