// internal/app/features/petitions/routes.go
package petitions

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the petition routes on the /dashboard router.
// The session guard is applied by the caller.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/petition-approval", h.ServeApproval)
	r.Post("/petition-approval/{id}/approve", h.Approve)

	// There is no petitions list; the bare path opens the approval queue.
	r.Get("/petitions", redirectTo(approvalPath))
	r.Get("/petitions/{id}", h.ServeDetail)
	r.Post("/petitions/{id}/delete", h.Delete)
}
