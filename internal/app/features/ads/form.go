// internal/app/features/ads/form.go
package ads

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"slices"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/formupload"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/formutil"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// formFields mirror the modal. Dates are sent only when set.
var formFields = []string{"title", "description", "targetUrl", "position", "isActive?", "priority", "startDate~", "endDate~"}

type modalData struct {
	formutil.Base

	ID          string
	Action      string
	Heading     string
	Submit      string
	Title       string
	Description string
	TargetURL   string
	Position    string
	IsActive    bool
	Priority    int
	StartDate   string
	EndDate     string
	Preview     formupload.Preview
	Positions   []string
}

func newModal(r *http.Request, ad *models.Ad) modalData {
	m := modalData{
		Action:    listPath,
		Heading:   "Create New Ad",
		Submit:    "Create Ad",
		Position:  models.DefaultAdPosition,
		IsActive:  true,
		Positions: models.AdPositions,
	}
	if ad != nil {
		m.ID = ad.ID
		m.Action = listPath + "/" + url.PathEscape(ad.ID)
		m.Heading = "Edit Ad"
		m.Submit = "Update Ad"
		m.Title = ad.Title
		m.Description = ad.Description
		m.TargetURL = ad.TargetURL
		if ad.Position != "" {
			m.Position = ad.Position
		}
		m.IsActive = ad.IsActive
		m.Priority = ad.Priority
		m.StartDate = templates.DateISO(ad.StartDate)
		m.EndDate = templates.DateISO(ad.EndDate)
		m.Preview = formupload.Preview{Original: ad.ImageURL}
	}
	formutil.SetBase(&m.Base, r, m.Heading)
	return m
}

func (h *Handler) renderModal(w http.ResponseWriter, r *http.Request, m modalData) {
	if actions.IsHTMX(r) {
		templates.RenderFragment(w, r, "ad_modal", m)
		return
	}
	templates.Render(w, r, "ad_form_page", m)
}

// ServeNew handles GET /dashboard/ads/new.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderModal(w, r, newModal(r, nil))
}

// ServeEdit handles GET /dashboard/ads/{id}/edit. The backend has no
// single-ad endpoint, so the ad is taken from the list.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st := h.list.Load(ctx, h.api(r))
	if st.Error != "" {
		actions.Fail(w, r, h.Flash, st.Error, listPath)
		return
	}
	i := slices.IndexFunc(st.Items, func(a models.Ad) bool { return a.ID == id })
	if i < 0 {
		actions.Fail(w, r, h.Flash, "Ad not found", listPath)
		return
	}
	h.renderModal(w, r, newModal(r, &st.Items[i]))
}

// HandleCreate handles POST /dashboard/ads.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	api := h.api(r)
	h.save(w, r, "", api.CreateAd)
}

// HandleUpdate handles POST /dashboard/ads/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	api := h.api(r)
	h.save(w, r, id, func(ctx context.Context, body backend.Multipart) error {
		return api.UpdateAd(ctx, id, body)
	})
}

// save forwards the modal. Success closes the modal and refreshes the
// grid; failure alerts and leaves the modal open.
func (h *Handler) save(w http.ResponseWriter, r *http.Request, id string, send func(context.Context, backend.Multipart) error) {
	body, err := formupload.FromRequest(r, formFields, "image", h.MaxBytes)
	if err != nil {
		msg := "Failed to save ad"
		if errors.Is(err, formupload.ErrTooLarge) {
			msg = formupload.TooLargeMessage(h.MaxBytes)
		}
		h.Log.Warn("ad form unreadable", zap.String("id", id), zap.Error(err))
		actions.Fail(w, r, h.Flash, msg, listPath)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "ad save")
	defer cancel()

	verb := "create"
	if id != "" {
		verb = "update"
	}
	out := h.Actions.Run(ctx, actions.Action{
		ID:       id,
		Verb:     verb,
		Strategy: actions.RefetchOnSuccess,
		Do:       func(ctx context.Context) error { return send(ctx, body) },
		Failure:  "Failed to save ad",
	})
	if !out.OK {
		actions.Fail(w, r, h.Flash, out.Alert, listPath)
		return
	}
	if actions.IsHTMX(r) {
		actions.CloseModal(w)
	}
	h.refetch(w, r)
}
