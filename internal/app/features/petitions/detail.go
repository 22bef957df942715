// internal/app/features/petitions/detail.go
package petitions

import (
	"context"
	"net/http"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/detail"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/viewdata"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// recentSignatures is how many signatures the detail page lists.
const recentSignatures = 10

type detailData struct {
	viewdata.BaseVM
	detail.Result[models.Petition]

	Referrals []models.ReferralCount
	Recent    []models.Signature
	More      int
}

// ServeDetail handles GET /dashboard/petitions/{id}.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	api := h.api(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res := detail.Load(ctx, func(ctx context.Context) (*models.Petition, error) {
		return api.Petition(ctx, id)
	}, "Failed to fetch petition details")
	if res.Err != "" {
		res.Err = "Failed to load petition: " + res.Err
	}

	data := detailData{
		BaseVM: viewdata.NewBaseVM(r, "Petition Details"),
		Result: res,
	}
	if p := res.Item; p != nil {
		data.Referrals = p.ReferralBreakdown()
		data.Recent, data.More = p.RecentSignatures(recentSignatures)
	}

	status := http.StatusOK
	if res.NotFound {
		status = http.StatusNotFound
	}
	templates.RenderStatus(w, r, status, "petition_detail", data)
}

// Delete handles POST /dashboard/petitions/{id}/delete. The page asks for
// confirmation before posting.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	api := h.api(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	out := h.Actions.Run(ctx, actions.Action{
		ID:   id,
		Verb: "delete",
		Do:   func(ctx context.Context) error { return api.DeletePetition(ctx, id) },
	})
	if !out.OK {
		msg := "Failed to delete petition: " + backend.DetailOr(out.Err, "Failed to delete petition")
		actions.Fail(w, r, h.Flash, msg, "/dashboard/petitions/"+id)
		return
	}

	h.Flash.AddFlash(w, r, "Petition deleted successfully!")
	actions.Redirect(w, r, approvalPath)
}
