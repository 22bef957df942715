// internal/app/features/comments/routes.go
package comments

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the comment routes on the /dashboard router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/comment-approval", h.ServeApproval)
	r.Post("/comment-approval/{id}/approve", h.Approve)
	r.Post("/comment-approval/{id}/reject", h.Reject)

	r.Get("/comments/petition/{petitionID}", h.ServeThread)
	r.Post("/comments/{id}/delete", h.Delete)
}
