// internal/app/features/comments/thread.go
package comments

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/listing"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/navigation"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/paging"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// threadData renders one page of a petition's comment thread. The first
// page renders the whole section; later pages render only their items
// plus the updated count, appended in place of the load-more button.
type threadData struct {
	PetitionID string
	CSRFToken  string
	Page       int
	Comments   []models.Comment
	Loaded     int
	HasMore    bool
	Error      string
}

// MoreURL is the load-more link for the following page.
func (d threadData) MoreURL() string {
	q := url.Values{
		"page":   {strconv.Itoa(d.Page + 1)},
		"loaded": {strconv.Itoa(d.Loaded)},
	}
	return fmt.Sprintf("/dashboard/comments/petition/%s?%s", url.PathEscape(d.PetitionID), q.Encode())
}

// ServeThread handles GET /dashboard/comments/petition/{petitionID}.
func (h *Handler) ServeThread(w http.ResponseWriter, r *http.Request) {
	petitionID := chi.URLParam(r, "petitionID")
	page := paging.ParsePage(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := threadData{
		PetitionID: petitionID,
		CSRFToken:  csrf.Token(r),
		Page:       page,
	}
	res, err := h.api(r).PetitionComments(ctx, petitionID, page, paging.CommentsPageSize)
	if err != nil {
		h.Log.Warn("comment thread load failed",
			zap.String("petition", petitionID), zap.Int("page", page), zap.Error(err))
		data.Error = listing.ErrorText(err, "Failed to fetch comments")
	} else {
		data.Comments = res.Comments
		data.HasMore = res.HasNextPage && len(res.Comments) > 0
	}

	if page > 1 {
		data.Loaded = paging.ParsePositive(r.URL.Query().Get("loaded"), 0) + len(data.Comments)
		templates.RenderFragment(w, r, "comment_thread_more", data)
		return
	}
	data.Loaded = len(data.Comments)
	templates.RenderFragment(w, r, "comment_thread", data)
}

// Delete handles POST /dashboard/comments/{id}/delete for both top-level
// comments and replies. Top-level deletions also lower the thread count.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	api := h.api(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	out := h.Actions.Run(ctx, actions.Action{
		ID:       id,
		Verb:     "delete",
		Strategy: actions.LocalRemoveOnSuccess,
		Do:       func(ctx context.Context) error { return api.DeleteComment(ctx, id) },
	})
	if !out.OK {
		msg := "Failed to delete comment"
		if _, ok := backend.AsAPIError(out.Err); ok {
			msg += ": " + backend.MessageOr(out.Err, "Unknown error")
		}
		actions.Fail(w, r, h.Flash, msg, backTo(r))
		return
	}

	if !actions.IsHTMX(r) {
		h.Flash.AddFlash(w, r, "Comment deleted successfully!")
		http.Redirect(w, r, backTo(r), http.StatusSeeOther)
		return
	}
	counter := "comment-count"
	if r.PostFormValue("reply") == "1" {
		counter = ""
	}
	actions.RemoveRow(w, counter, map[string]any{actions.EventAlert: "Comment deleted successfully!"})
}

// backTo is the page a plain form post returns to: an explicit local
// "return" under /dashboard, else the comment's petition, else the queue.
func backTo(r *http.Request) string {
	fallback := approvalPath
	if p := r.PostFormValue("petition"); p != "" {
		fallback = "/dashboard/petitions/" + url.PathEscape(p)
	}
	return navigation.SafeReturn(r, "/dashboard", fallback)
}
