// internal/app/features/petitions/approval.go
package petitions

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

type approvalData struct {
	viewdata.BaseVM
	listing.State[models.Petition]
}

// ServeApproval handles GET /dashboard/petition-approval.
func (h *Handler) ServeApproval(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	templates.Render(w, r, "petition_approval", approvalData{
		BaseVM: viewdata.NewBaseVM(r, "Unapproved Petitions"),
		State:  h.pending.Load(ctx, h.api(r)),
	})
}

// Approve handles POST /dashboard/petition-approval/{id}/approve. On
// success the row is dropped from the page without reloading the queue.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	api := h.api(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	out := h.Actions.Run(ctx, actions.Action{
		ID:       id,
		Verb:     "approve",
		Strategy: actions.LocalRemoveOnSuccess,
		Do:       func(ctx context.Context) error { return api.ApprovePetition(ctx, id) },
		Failure:  "Failed to approve petition",
	})
	if !out.OK {
		actions.Fail(w, r, h.Flash, out.Alert, approvalPath)
		return
	}
	if actions.IsHTMX(r) {
		actions.RemoveRow(w, "pending-count", nil)
		return
	}
	http.Redirect(w, r, approvalPath, http.StatusSeeOther)
}
