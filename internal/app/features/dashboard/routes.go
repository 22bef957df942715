// internal/app/features/dashboard/routes.go
package dashboard

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the overview page at the root of the /dashboard
// router. The session guard is applied by the caller.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.ServeDashboard)
}
