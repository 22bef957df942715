// internal/app/features/blogs/routes.go
package blogs

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the blog routes on the /dashboard router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/blogs", h.ServeList)
	r.Get("/blogs/create", h.ServeCreate)
	r.Post("/blogs/create", h.HandleCreate)
	r.Get("/blogs/edit/{id}", h.ServeEdit)
	r.Post("/blogs/edit/{id}", h.HandleEdit)

	r.Post("/blogs/{id}/delete", h.Delete)
	r.Post("/blogs/{id}/featured", h.ToggleFeatured)
	r.Post("/blogs/{id}/publish", h.TogglePublished)
}
