// internal/app/features/downloadrequests/review.go
package downloadrequests

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/formutil"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/navigation"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

type reviewData struct {
	formutil.Base

	Request models.DownloadRequest
	Verb    string
	Heading string
	Notice  string
	Action  string
}

// Approving reports whether the modal approves (and so shows the field
// picker).
func (m reviewData) Approving() bool { return m.Verb == "approve" }

func newReview(r *http.Request, req models.DownloadRequest, verb string) reviewData {
	m := reviewData{
		Request: req,
		Verb:    verb,
		Heading: "Approve Request",
		Notice:  "User will be able to download the petition data.",
		Action:  listPath + "/" + url.PathEscape(req.ID) + "/" + verb,
	}
	if verb == "reject" {
		m.Heading = "Reject Request"
		m.Notice = "User will not be able to download. They can request again."
	}
	formutil.SetBase(&m.Base, r, m.Heading)
	return m
}

func reviewVerb(r *http.Request) (string, bool) {
	v := chi.URLParam(r, "action")
	return v, v == "approve" || v == "reject"
}

// ServeReview handles GET /dashboard/download-requests/{id}/{action}. The
// backend has no single-request endpoint, so the request is taken from
// the pending list. Every requested field starts selected.
func (h *Handler) ServeReview(w http.ResponseWriter, r *http.Request) {
	verb, ok := reviewVerb(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st := h.list.Load(ctx, query{api: h.api(r), status: models.StatusPending})
	if st.Error != "" {
		actions.Fail(w, r, h.Flash, st.Error, listPath)
		return
	}
	i := slices.IndexFunc(st.Items, func(d models.DownloadRequest) bool { return d.ID == id })
	if i < 0 {
		actions.Fail(w, r, h.Flash, "Download request not found", listPath)
		return
	}

	m := newReview(r, st.Items[i], verb)
	if actions.IsHTMX(r) {
		templates.RenderFragment(w, r, "download_request_modal", m)
		return
	}
	templates.Render(w, r, "download_request_review_page", m)
}

// approvedFields reads the picked fields, dropping blanks and repeats.
func approvedFields(r *http.Request) []string {
	var out []string
	for _, f := range r.PostForm["approvedFields"] {
		f = strings.TrimSpace(f)
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// HandleReview handles POST /dashboard/download-requests/{id}/{action}.
// Approval needs at least one field. Success closes the modal and reloads
// both the table and the tab totals.
func (h *Handler) HandleReview(w http.ResponseWriter, r *http.Request) {
	verb, ok := reviewVerb(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	id := chi.URLParam(r, "id")
	note := formutil.Value(r, "adminNote")
	back := navigation.BackURL(listPath, url.Values{"status": {currentTab(r)}})

	var fields []string
	if verb == "approve" {
		fields = approvedFields(r)
		if len(fields) == 0 {
			actions.Fail(w, r, h.Flash, "Select at least one field to approve", back)
			return
		}
	}

	api := h.api(r)
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	out := h.Actions.Run(ctx, actions.Action{
		ID:       id,
		Verb:     verb,
		Strategy: actions.RefetchOnSuccess,
		Do: func(ctx context.Context) error {
			if verb == "approve" {
				return api.ApproveDownloadRequest(ctx, id, note, fields)
			}
			return api.RejectDownloadRequest(ctx, id, note)
		},
		Failure: "Failed to " + verb + " request",
	})
	if !out.OK {
		actions.Fail(w, r, h.Flash, out.Alert, back)
		return
	}
	if !actions.IsHTMX(r) {
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	actions.CloseModal(w)
	templates.RenderFragment(w, r, "download_request_panel", h.load(r, currentTab(r)))
}
