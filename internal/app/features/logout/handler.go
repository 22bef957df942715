// internal/app/features/logout/handler.go
package logout

import (
	"context"
	"net/http"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/auth"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	Client     *backend.Client
	SessionMgr *auth.SessionManager
}

func NewHandler(client *backend.Client, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		Client:     client,
		SessionMgr: sessionMgr,
	}
}

// ServeLogout handles POST /logout. The backend logout is best effort:
// the local session is cleared and the browser goes to /login whatever
// the backend answers.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if token := h.SessionMgr.TokenFrom(r); token != "" {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		if err := h.Client.Session(token).Logout(ctx); err != nil {
			h.Log.Warn("backend logout failed", zap.Error(err))
		}
		cancel()
	}

	if err := h.SessionMgr.Clear(w, r); err != nil {
		h.Log.Error("logout: clear session", zap.Error(err))
	}

	// HTMX handling: use HX-Redirect to force a client-side navigation.
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", auth.LoginPath)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
}
