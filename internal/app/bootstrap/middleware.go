// internal/app/bootstrap/middleware.go
package bootstrap

import (
	"crypto/sha256"
	"net/http"
	"net/url"
	"strings"
	"time"

	errorsfeature "github.com/gauravhaldar/sosign-admin/internal/app/features/errors"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/formupload"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// requestLogger logs every request at debug and server errors at error,
// tagged with chi's request id.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []zap.Field{
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.Bool("htmx", r.Header.Get("HX-Request") == "true"),
			}
			if status >= http.StatusInternalServerError {
				logger.Error("request", fields...)
				return
			}
			logger.Debug("request", fields...)
		})
	}
}

// csrfKey derives the 32-byte gorilla/csrf key from the configured seed,
// falling back to the session key.
func csrfKey(cfg AppConfig) []byte {
	seed := cfg.CSRFKey
	if seed == "" {
		seed = "csrf:" + cfg.SessionKey
	}
	sum := sha256.Sum256([]byte(seed))
	return sum[:]
}

// csrfProtect guards every unsafe method. Over plain HTTP (dev) requests
// are marked as such so the origin check does not assume TLS.
func csrfProtect(cfg AppConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	protect := csrf.Protect(csrfKey(cfg),
		csrf.Secure(cfg.Secure()),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("csrf check failed",
				zap.String("path", r.URL.Path),
				zap.Error(csrf.FailureReason(r)))
			errorsfeature.RenderStatus(w, r, http.StatusForbidden, "Access denied",
				"Your session form expired. Reload the page and try again.", r.URL.Path)
		})),
	)
	return func(next http.Handler) http.Handler {
		h := protect(next)
		if cfg.Secure() {
			return h
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}

// capUploads limits multipart bodies to maxBytes. It must run before
// csrfProtect, which parses the form of plain posts to find the token.
// A body that declares a larger length is refused without reading it:
// htmx gets an alert, a plain post a flash and a redirect to the page it
// came from. Bodies of unknown length are cut off at maxBytes.
func capUploads(maxBytes int64, flash actions.Flasher, logger *zap.Logger) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = formupload.DefaultMaxBytes
	}
	msg := formupload.TooLargeMessage(maxBytes)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
				next.ServeHTTP(w, r)
				return
			}
			if r.ContentLength > maxBytes {
				logger.Warn("upload refused",
					zap.String("path", r.URL.Path),
					zap.Int64("length", r.ContentLength),
					zap.Int64("max", maxBytes))
				actions.Fail(w, r, flash, msg, refererPath(r, "/dashboard"))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// refererPath returns the local path (with query) of the Referer when it
// is this host and under prefix, and prefix otherwise.
func refererPath(r *http.Request, prefix string) string {
	u, err := url.Parse(r.Referer())
	if err != nil || (u.Host != "" && u.Host != r.Host) {
		return prefix
	}
	if u.Path != prefix && !strings.HasPrefix(u.Path, prefix+"/") {
		return prefix
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
