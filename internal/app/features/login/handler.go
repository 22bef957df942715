// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/gauravhaldar/sosign-admin/internal/app/features/errors"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/auth"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/ratelimit"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Messages shown on the login form.
const (
	msgBadFormat = "Server error: Invalid response format"
	msgFailed    = "Login failed"
	msgNetwork   = "Something went wrong. Please try again."
)

// Handler serves the admin sign-in page.
type Handler struct {
	Client     *backend.Client
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

type loginFormData struct {
	viewdata.BaseVM
	Email string
	Error string
}

// NewHandler constructs a login Handler. limiter may be nil to disable
// throttling.
func NewHandler(client *backend.Client, sessionMgr *auth.SessionManager, limiter *ratelimit.LoginLimiter, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Client:     client,
		SessionMgr: sessionMgr,
		Limiter:    limiter,
		ErrLog:     errLog,
		Log:        logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "login", loginFormData{BaseVM: viewdata.NewBaseVM(r, "Admin Login")})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.renderFormWithError(w, r, http.StatusOK, "Please enter your email and password.", email)
		return
	}

	if h.Limiter != nil {
		if ok, msg := h.Limiter.Check(r, email); !ok {
			h.Log.Warn("login throttled", zap.String("ip", ratelimit.ClientIP(r)))
			h.renderFormWithError(w, r, http.StatusTooManyRequests, msg, email)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	res, err := h.Client.Login(ctx, email, password)
	if err != nil {
		h.Log.Info("admin login failed", zap.Int("status", backend.StatusCode(err)), zap.Error(err))
		h.renderFormWithError(w, r, http.StatusOK, loginErrorText(err), email)
		return
	}

	if err := h.SessionMgr.SetToken(w, r, res.Token); err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, "A server error occurred.", "/login")
		return
	}
	if h.Limiter != nil {
		h.Limiter.ResetEmail(email)
	}
	h.Log.Info("admin signed in", zap.String("email", email))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// loginErrorText maps a failed sign-in to the form message: a non-JSON
// answer, the backend's own message, or a transport failure.
func loginErrorText(err error) string {
	if errors.Is(err, backend.ErrNotJSON) {
		return msgBadFormat
	}
	if _, ok := backend.AsAPIError(err); ok {
		return backend.MessageOr(err, msgFailed)
	}
	return msgNetwork
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, status int, msg, email string) {
	templates.RenderStatus(w, r, status, "login", loginFormData{
		BaseVM: viewdata.NewBaseVM(r, "Admin Login"),
		Email:  email,
		Error:  msg,
	})
}
