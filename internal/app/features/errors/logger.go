// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"go.uber.org/zap"
)

// ErrorLogger logs an unexpected failure and shows the visitor a page (or,
// for htmx requests, an alert) instead of the raw error.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// LogServerError logs err at error level and answers 500.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.Log.Error(logMsg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	e.respond(w, r, http.StatusInternalServerError, "Something went wrong", userMsg, backURL)
}

// LogBadRequest logs err at warn level and answers 400.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.Log.Warn(logMsg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	e.respond(w, r, http.StatusBadRequest, "Bad request", userMsg, backURL)
}

func (e *ErrorLogger) respond(w http.ResponseWriter, r *http.Request, status int, heading, msg, backURL string) {
	if actions.IsHTMX(r) {
		actions.Alert(w, msg)
		return
	}
	RenderStatus(w, r, status, heading, msg, backURL)
}
