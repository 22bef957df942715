// internal/app/features/hiderequests/review.go
package hiderequests

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/formutil"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/navigation"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

type reviewData struct {
	formutil.Base

	ID      string
	Verb    string
	Heading string
	Notice  string
	Confirm string
	Action  string
	Note    string
}

func newReview(r *http.Request, id, verb string) reviewData {
	m := reviewData{
		ID:      id,
		Verb:    verb,
		Heading: "Approve Hide Request",
		Notice:  "The petition will be hidden from public view.",
		Confirm: "Confirm Approve",
		Action:  listPath + "/" + url.PathEscape(id) + "/" + verb,
	}
	if verb == "reject" {
		m.Heading = "Reject Hide Request"
		m.Notice = "The petition will remain visible to the public."
		m.Confirm = "Confirm Reject"
	}
	formutil.SetBase(&m.Base, r, m.Heading)
	return m
}

func reviewVerb(r *http.Request) (string, bool) {
	v := chi.URLParam(r, "action")
	_, ok := pastTense[v]
	return v, ok
}

// pastTense holds the review verbs and their success wording.
var pastTense = map[string]string{
	"approve": "approved",
	"reject":  "rejected",
}

// ServeReview handles GET /dashboard/hide-requests/{id}/{action}: the note
// modal. The note always starts empty.
func (h *Handler) ServeReview(w http.ResponseWriter, r *http.Request) {
	verb, ok := reviewVerb(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	m := newReview(r, chi.URLParam(r, "id"), verb)
	if actions.IsHTMX(r) {
		templates.RenderFragment(w, r, "hide_request_modal", m)
		return
	}
	templates.Render(w, r, "hide_request_review_page", m)
}

// HandleReview handles POST /dashboard/hide-requests/{id}/{action}. On
// success the modal closes and the list is reloaded with the filter and
// page the admin was on; on failure the modal stays open.
func (h *Handler) HandleReview(w http.ResponseWriter, r *http.Request) {
	verb, ok := reviewVerb(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	id := chi.URLParam(r, "id")
	note := formutil.Value(r, "adminNote")
	api := h.api(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	out := h.Actions.Run(ctx, actions.Action{
		ID:       id,
		Verb:     verb,
		Strategy: actions.RefetchOnSuccess,
		Do: func(ctx context.Context) error {
			return api.ReviewHideRequest(ctx, id, verb, note)
		},
		Failure: "Failed to " + verb + " request",
	})
	q := navigation.CurrentQuery(r)
	back := navigation.BackURL(listPath, q)
	if !out.OK {
		actions.Fail(w, r, h.Flash, "Failed to "+verb+" request: "+out.Alert, back)
		return
	}

	done := "Request " + pastTense[verb] + " successfully!"
	if !actions.IsHTMX(r) {
		if h.Flash != nil {
			h.Flash.AddFlash(w, r, done)
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	actions.Trigger(w, map[string]any{actions.EventCloseModal: true, actions.EventAlert: done})
	templates.RenderFragment(w, r, "hide_request_list", h.load(r, q))
}
