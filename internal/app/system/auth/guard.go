// internal/app/system/auth/guard.go
package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"go.uber.org/zap"
)

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/login"

type ctxKey string

const (
	adminKey   ctxKey = "admin"
	tokenCtx   ctxKey = "adminToken"
	flashesKey ctxKey = "flashes"
)

// CurrentAdmin returns the admin verified for this request.
func CurrentAdmin(r *http.Request) (models.Admin, bool) {
	a, ok := r.Context().Value(adminKey).(models.Admin)
	return a, ok
}

// Token returns the backend admin token bound to this request, set by
// RequireAdmin or RequireToken.
func Token(r *http.Request) string {
	t, _ := r.Context().Value(tokenCtx).(string)
	return t
}

// Flashes returns flash messages popped by RequireAdmin for this request.
func Flashes(r *http.Request) []string {
	f, _ := r.Context().Value(flashesKey).([]string)
	return f
}

// WithTestAdmin binds admin and token to r the way RequireAdmin does.
// Handler tests use it to skip the identity round trip.
func WithTestAdmin(r *http.Request, admin models.Admin, token string) *http.Request {
	return bind(r, admin, token)
}

func bind(r *http.Request, admin models.Admin, token string) *http.Request {
	ctx := context.WithValue(r.Context(), adminKey, admin)
	ctx = context.WithValue(ctx, tokenCtx, token)
	return r.WithContext(ctx)
}

// RequireAdmin verifies the session against GET /api/admin/me before any
// protected page runs. No token, a non-OK or non-JSON answer, or a transport
// failure all count as signed out: the token is dropped and the visitor is
// sent to the login page without rendering anything else.
func (sm *SessionManager) RequireAdmin(client *backend.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sm.TokenFrom(r)
			if token == "" {
				redirectToLogin(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
			admin, err := client.Session(token).Me(ctx)
			cancel()
			if err != nil {
				sm.log.Info("admin session rejected",
					zap.Int("status", backend.StatusCode(err)),
					zap.Error(err))
				if cerr := sm.Clear(w, r); cerr != nil {
					sm.log.Warn("clear session", zap.Error(cerr))
				}
				redirectToLogin(w, r)
				return
			}

			r = bind(r, admin, token)
			if r.Header.Get("HX-Request") != "true" {
				if f := sm.PopFlashes(w, r); len(f) > 0 {
					r = r.WithContext(context.WithValue(r.Context(), flashesKey, f))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireToken guards JSON proxy routes. A missing token is answered with
// 401 before any upstream call; the token is not verified here, the
// upstream does that.
func (sm *SessionManager) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sm.TokenFrom(r)
		if token == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(models.MessageResponse{
				Success: false,
				Message: "Admin authentication required",
			})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), tokenCtx, token)))
	})
}

// RedirectIfSignedIn sends visitors that already hold a token away from
// the login page.
func (sm *SessionManager) RedirectIfSignedIn(dest string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet && sm.TokenFrom(r) != "" {
				http.Redirect(w, r, dest, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	// HTMX: full-page client redirect (no partial swap)
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", LoginPath)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}
