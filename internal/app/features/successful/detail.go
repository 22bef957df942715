// internal/app/features/successful/detail.go
package successful

import (
	"context"
	"net/http"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/detail"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/viewdata"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

type detailData struct {
	viewdata.BaseVM
	detail.Result[models.SuccessfulPetition]
}

// ServeDetail handles GET /dashboard/successfulpetitions/{id}.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	api := h.api(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res := detail.Load(ctx, func(ctx context.Context) (*models.SuccessfulPetition, error) {
		return api.SuccessfulPetition(ctx, id)
	}, "Failed to fetch successful petition details")
	if res.Err != "" {
		res.Err = "Failed to load successful petition: " + res.Err
	}

	status := http.StatusOK
	if res.NotFound {
		status = http.StatusNotFound
	}
	templates.RenderStatus(w, r, status, "successful_detail", detailData{
		BaseVM: viewdata.NewBaseVM(r, "Successful Petition"),
		Result: res,
	})
}
