// internal/app/features/successful/routes.go
package successful

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the successful petitions routes on the /dashboard router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/successfulpetitions", h.ServeList)
	r.Get("/successfulpetitions/{id}", h.ServeDetail)
	r.Post("/successfulpetitions/{id}/delete", h.Delete)
}
