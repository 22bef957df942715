// internal/app/features/downloadrequests/handler.go
package downloadrequests

import (
	"context"
	"net/http"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/auth"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/batch"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/listing"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/snapshot"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const listPath = "/dashboard/download-requests"

// tabs are the status tabs, in display order. The first is the default.
var tabs = []string{models.StatusPending, models.StatusApproved, models.StatusRejected}

// Stats are the per-status totals shown on the tab cards.
type Stats struct {
	Pending  int
	Approved int
	Rejected int
}

// Handler serves download-request review.
type Handler struct {
	Client  *backend.Client
	Flash   actions.Flasher
	Actions *actions.Dispatcher
	Log     *zap.Logger

	list *listing.Controller[query, models.DownloadRequest]
	// stats holds each session's last complete batch.
	stats *snapshot.Store[Stats]
}

type query struct {
	api    *backend.Session
	status string
}

// NewHandler constructs a download-requests Handler.
func NewHandler(client *backend.Client, flash actions.Flasher, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Flash:   flash,
		Actions: actions.NewDispatcher(logger),
		Log:     logger,
		list: listing.New("downloadrequests.list", func(ctx context.Context, q query) ([]models.DownloadRequest, error) {
			res, err := q.api.DownloadRequests(ctx, q.status)
			return res.Requests, err
		}, "Failed to fetch download requests", logger),
		stats: snapshot.New[Stats](0),
	}
}

func (h *Handler) api(r *http.Request) *backend.Session {
	return h.Client.Session(auth.Token(r))
}

// loadStats asks for the three status totals in parallel. The counters
// change only when all three answer; otherwise the session's previous
// totals stay (zero when it has none).
func (h *Handler) loadStats(ctx context.Context, r *http.Request, api *backend.Session) Stats {
	var next Stats
	count := func(status string, dst *int) func(context.Context) error {
		return func(ctx context.Context) error {
			res, err := api.DownloadRequests(ctx, status)
			if err != nil {
				return err
			}
			*dst = res.TotalRequests
			return nil
		}
	}
	err := batch.All(ctx,
		count(models.StatusPending, &next.Pending),
		count(models.StatusApproved, &next.Approved),
		count(models.StatusRejected, &next.Rejected),
	)

	key := snapshot.Key(auth.Token(r))
	if err != nil {
		h.Log.Warn("download request stats failed; keeping previous totals", zap.Error(err))
		prev, _ := h.stats.Get(key)
		return prev
	}
	h.stats.Put(key, next)
	return next
}

// MountRoutes registers the download-request routes under /dashboard.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/download-requests", h.ServeList)
	r.Get("/download-requests/{id}/{action}", h.ServeReview)
	r.Post("/download-requests/{id}/{action}", h.HandleReview)
}
