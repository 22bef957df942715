// Package backend is the HTTP client for the SOSign REST API.
//
// The dashboard never talks to the backend from the browser; every call
// goes through a Session bound to the admin token stored in the dashboard's
// own cookie session. Each endpoint has its own typed method returning that
// endpoint's response shape, since the backend does not use one envelope.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/metrics"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenCookie is the cookie name the backend uses for admin sessions.
const TokenCookie = "adminToken"

// maxBody caps how much of a response is read.
const maxBody = 10 << 20

// Client is safe for concurrent use.
type Client struct {
	base    *url.URL
	http    *http.Client
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewClient builds a client for baseURL (scheme and host, optional path
// prefix). timeout bounds each call in addition to the caller's context.
func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics, log *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q: missing host", baseURL)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base:    u,
		http:    &http.Client{Timeout: timeout},
		metrics: m,
		log:     log,
	}, nil
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string { return c.base.String() }

// call describes one backend request.
type call struct {
	op     string
	method string
	path   string
	query  url.Values
	token  string

	jsonBody    any
	rawBody     io.Reader
	contentType string

	// requireJSON fails 2xx responses whose Content-Type is not JSON.
	requireJSON bool
}

// reply is a completed backend response.
type reply struct {
	status int
	header http.Header
	body   []byte
}

func (r reply) isJSON() bool {
	mt, _, err := mime.ParseMediaType(r.header.Get("Content-Type"))
	return err == nil && (mt == "application/json" || strings.HasSuffix(mt, "+json"))
}

// send performs c and returns the raw reply regardless of status. Only
// transport failures are returned as errors.
func (c *Client) send(ctx context.Context, cl call) (reply, error) {
	// cl.path is already escaped (ids go through seg).
	u := *c.base
	unescaped, err := url.PathUnescape(cl.path)
	if err != nil {
		return reply{}, fmt.Errorf("%s: bad path %q: %w", cl.op, cl.path, err)
	}
	u.Path = c.base.Path + unescaped
	u.RawPath = c.base.EscapedPath() + cl.path
	if len(cl.query) > 0 {
		u.RawQuery = cl.query.Encode()
	}

	var body io.Reader
	contentType := cl.contentType
	switch {
	case cl.jsonBody != nil:
		b, err := json.Marshal(cl.jsonBody)
		if err != nil {
			return reply{}, fmt.Errorf("%s: marshal body: %w", cl.op, err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	case cl.rawBody != nil:
		body = cl.rawBody
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), body)
	if err != nil {
		return reply{}, fmt.Errorf("%s: build request: %w", cl.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", requestID(ctx))
	if cl.token != "" {
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: cl.token})
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(cl.op, 0, time.Since(start))
		c.log.Warn("backend call failed",
			zap.String("op", cl.op), zap.String("method", cl.method),
			zap.String("path", cl.path), zap.Error(err))
		return reply{}, fmt.Errorf("%s: %w", cl.op, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	elapsed := time.Since(start)
	c.metrics.ObserveUpstream(cl.op, resp.StatusCode, elapsed)
	if err != nil {
		return reply{}, fmt.Errorf("%s: read body: %w", cl.op, err)
	}

	c.log.Debug("backend call",
		zap.String("op", cl.op),
		zap.String("method", cl.method),
		zap.String("path", cl.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", elapsed),
	)
	return reply{status: resp.StatusCode, header: resp.Header, body: b}, nil
}

// do performs cl and decodes a 2xx JSON body into out (when non-nil).
// Non-2xx statuses become *APIError carrying the backend's message.
func (c *Client) do(ctx context.Context, cl call, out any) (reply, error) {
	rp, err := c.send(ctx, cl)
	if err != nil {
		return rp, err
	}
	if rp.status < 200 || rp.status >= 300 {
		return rp, newAPIError(rp)
	}
	if cl.requireJSON && !rp.isJSON() {
		return rp, ErrNotJSON
	}
	if out != nil && len(bytes.TrimSpace(rp.body)) > 0 {
		if err := json.Unmarshal(rp.body, out); err != nil {
			return rp, fmt.Errorf("%s: decode response: %w", cl.op, err)
		}
	}
	return rp, nil
}

func newAPIError(rp reply) *APIError {
	apiErr := &APIError{StatusCode: rp.status, Body: string(rp.body)}
	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(rp.body, &env) == nil {
		if env.Message != "" {
			apiErr.Message = env.Message
		} else {
			apiErr.Message = env.Error
		}
	}
	return apiErr
}

// requestID reuses chi's request id so upstream logs can be correlated
// with ours; calls made outside a request get a fresh uuid.
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// isNullish reports a JSON body that carries no document.
func isNullish(b []byte) bool {
	t := bytes.TrimSpace(b)
	return len(t) == 0 || bytes.Equal(t, []byte("null")) || bytes.Equal(t, []byte("{}"))
}
