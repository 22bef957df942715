// internal/app/features/ads/handler.go
package ads

import (
	"context"
	"net/http"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/auth"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/listing"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"go.uber.org/zap"
)

const listPath = "/dashboard/ads"

// Handler serves the ads grid and its create/edit modal.
type Handler struct {
	Client   *backend.Client
	Flash    actions.Flasher
	Actions  *actions.Dispatcher
	Log      *zap.Logger
	MaxBytes int64

	list *listing.Controller[*backend.Session, models.Ad]
}

// NewHandler constructs an ads Handler.
func NewHandler(client *backend.Client, flash actions.Flasher, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Flash:   flash,
		Actions: actions.NewDispatcher(logger),
		Log:     logger,
		list: listing.New("ads.list", func(ctx context.Context, api *backend.Session) ([]models.Ad, error) {
			return api.Ads(ctx)
		}, "Failed to fetch ads", logger),
	}
}

func (h *Handler) api(r *http.Request) *backend.Session {
	return h.Client.Session(auth.Token(r))
}
