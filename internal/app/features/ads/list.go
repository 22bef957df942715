// internal/app/features/ads/list.go
package ads

import (
	"context"
	"net/http"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/listing"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/viewdata"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

type gridData struct {
	viewdata.BaseVM
	listing.State[models.Ad]
}

func (h *Handler) load(r *http.Request) gridData {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	return gridData{
		BaseVM: viewdata.NewBaseVM(r, "Ads Management"),
		State:  h.list.Load(ctx, h.api(r)),
	}
}

// ServeList handles GET /dashboard/ads.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	data := h.load(r)
	if actions.IsHTMX(r) {
		templates.RenderFragment(w, r, "ad_grid", data)
		return
	}
	templates.Render(w, r, "ads", data)
}

// Toggle handles POST /dashboard/ads/{id}/toggle.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	api := h.api(r)
	h.mutate(w, r, "toggle", "Failed to update status", api.ToggleAd)
}

// Delete handles POST /dashboard/ads/{id}/delete.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	api := h.api(r)
	h.mutate(w, r, "delete", "Failed to delete ad", api.DeleteAd)
}

func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, verb, failure string, do func(context.Context, string) error) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	out := h.Actions.Run(ctx, actions.Action{
		ID:       id,
		Verb:     verb,
		Strategy: actions.RefetchOnSuccess,
		Do:       func(ctx context.Context) error { return do(ctx, id) },
		Failure:  failure,
	})
	if !out.OK {
		actions.Fail(w, r, h.Flash, out.Alert, listPath)
		return
	}
	h.refetch(w, r)
}

// refetch answers a successful action: the grid again for htmx, the
// page otherwise.
func (h *Handler) refetch(w http.ResponseWriter, r *http.Request) {
	if !actions.IsHTMX(r) {
		http.Redirect(w, r, listPath, http.StatusSeeOther)
		return
	}
	templates.RenderFragment(w, r, "ad_grid", h.load(r))
}
