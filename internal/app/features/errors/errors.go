// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/viewdata"
)

// pageData is the basic view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Heading string
	Message string
	BackURL string
}

// Handler is the errors feature handler.
// No backend needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound renders the 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	RenderStatus(w, r, http.StatusNotFound, "Page not found",
		"The page you are looking for does not exist.", "/dashboard")
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	RenderStatus(w, r, http.StatusForbidden, "Access denied",
		"You don't have permission to view this page.", "/dashboard")
}

// Unauthorized renders a friendly "sign in required" page.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	RenderStatus(w, r, http.StatusUnauthorized, "Sign in required",
		"Please sign in to continue.", "/login")
}

// RenderStatus shows the error page with a heading, message and back link.
func RenderStatus(w http.ResponseWriter, r *http.Request, status int, heading, msg, backURL string) {
	if backURL == "" {
		backURL = "/dashboard"
	}
	templates.RenderStatus(w, r, status, "error_page", pageData{
		BaseVM:  viewdata.NewBaseVM(r, heading),
		Heading: heading,
		Message: msg,
		BackURL: backURL,
	})
}
