// internal/app/features/hiderequests/handler.go
package hiderequests

import (
	"context"
	"net/http"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/auth"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/listing"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/paging"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const listPath = "/dashboard/hide-requests"

// statuses is the filter dropdown; "" shows every request.
var statuses = []string{"", models.StatusPending, models.StatusApproved, models.StatusRejected}

// Handler serves hide-request review.
type Handler struct {
	Client  *backend.Client
	Flash   actions.Flasher
	Actions *actions.Dispatcher
	Log     *zap.Logger

	list *listing.Paged[query, models.HideRequest]
}

type query struct {
	api    *backend.Session
	page   int
	status string
}

// NewHandler constructs a hide-requests Handler.
func NewHandler(client *backend.Client, flash actions.Flasher, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Flash:   flash,
		Actions: actions.NewDispatcher(logger),
		Log:     logger,
		list: listing.NewPaged("hiderequests.list", fetchPage,
			"Failed to load hide requests: Failed to fetch hide requests", logger),
	}
}

func fetchPage(ctx context.Context, q query) ([]models.HideRequest, paging.Meta, error) {
	res, err := q.api.HideRequests(ctx, q.page, paging.PageSize, q.status)
	if err != nil {
		return nil, paging.Meta{}, err
	}
	p := res.Pagination
	return res.HideRequests, paging.Meta{
		CurrentPage:  max(p.CurrentPage, 1),
		TotalPages:   max(p.TotalPages, 1),
		TotalResults: p.TotalResults,
	}, nil
}

func (h *Handler) api(r *http.Request) *backend.Session {
	return h.Client.Session(auth.Token(r))
}

// MountRoutes registers the hide-request routes under /dashboard.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/hide-requests", h.ServeList)
	r.Get("/hide-requests/{id}/{action}", h.ServeReview)
	r.Post("/hide-requests/{id}/{action}", h.HandleReview)
}
