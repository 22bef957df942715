// internal/app/features/comments/approval.go
package comments

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
	listing.State[models.Comment]
}

// ServeApproval handles GET /dashboard/comment-approval.
func (h *Handler) ServeApproval(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	templates.Render(w, r, "comment_approval", approvalData{
		BaseVM: viewdata.NewBaseVM(r, "Comment Approval"),
		State:  h.pending.Load(ctx, h.api(r)),
	})
}

// Approve handles POST /dashboard/comment-approval/{id}/approve.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	api := h.api(r)
	h.moderate(w, r, "approve", "Failed to approve comment", api.ApproveComment)
}

// Reject handles POST /dashboard/comment-approval/{id}/reject. Rejecting
// deletes the comment; the page confirms first.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	api := h.api(r)
	h.moderate(w, r, "reject", "Failed to reject comment", api.RejectComment)
}

// moderate runs an approve or reject. Either way the comment leaves the
// queue, so success drops its row without reloading the list.
func (h *Handler) moderate(w http.ResponseWriter, r *http.Request, verb, failure string, do func(context.Context, string) error) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	out := h.Actions.Run(ctx, actions.Action{
		ID:       id,
		Verb:     verb,
		Strategy: actions.LocalRemoveOnSuccess,
		Do:       func(ctx context.Context) error { return do(ctx, id) },
		Failure:  failure,
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
