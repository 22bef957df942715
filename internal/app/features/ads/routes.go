// internal/app/features/ads/routes.go
package ads

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the ads routes on the /dashboard router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/ads", h.ServeList)
	r.Post("/ads", h.HandleCreate)
	r.Get("/ads/new", h.ServeNew)
	r.Get("/ads/{id}/edit", h.ServeEdit)
	r.Post("/ads/{id}", h.HandleUpdate)
	r.Post("/ads/{id}/toggle", h.Toggle)
	r.Post("/ads/{id}/delete", h.Delete)
}
