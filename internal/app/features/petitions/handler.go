// internal/app/features/petitions/handler.go
package petitions

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

const approvalPath = "/dashboard/petition-approval"

// Handler serves the petition approval queue and petition detail pages.
type Handler struct {
	Client  *backend.Client
	Flash   actions.Flasher
	Actions *actions.Dispatcher
	Log     *zap.Logger

	pending *listing.Controller[*backend.Session, models.Petition]
}

// NewHandler constructs a petitions Handler.
func NewHandler(client *backend.Client, flash actions.Flasher, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Flash:   flash,
		Actions: actions.NewDispatcher(logger),
		Log:     logger,
		pending: listing.New("petitions.unapproved", fetchPending, "Failed to fetch petitions", logger),
	}
}

func fetchPending(ctx context.Context, api *backend.Session) ([]models.Petition, error) {
	res, err := api.UnapprovedPetitions(ctx)
	return res.Petitions, err
}

func (h *Handler) api(r *http.Request) *backend.Session {
	return h.Client.Session(auth.Token(r))
}

func redirectTo(dest string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, dest, http.StatusSeeOther)
	}
}
