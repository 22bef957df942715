// internal/app/features/successful/handler.go
package successful

import (
	"context"
	"net/http"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/auth"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/listing"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/paging"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"go.uber.org/zap"
)

const listPath = "/dashboard/successfulpetitions"

// Categories are the categories a successful petition can be filed under.
var Categories = []string{
	"Environment",
	"Education",
	"Healthcare",
	"Social Justice",
	"Politics",
	"Animal Rights",
	"Human Rights",
	"Technology",
	"Other",
}

// SortOption is one server-side ordering of the list.
type SortOption struct{ Key, Label string }

// SortOptions are the orderings the list offers. The empty key is the
// backend default (latest first).
var SortOptions = []SortOption{
	{"", "Sort by Latest"},
	{"signatures", "Sort by Signatures"},
	{"title", "Sort by Title"},
	{"oldest", "Sort by Oldest"},
}

// Handler serves the successful petitions pages.
type Handler struct {
	Client  *backend.Client
	Flash   actions.Flasher
	Actions *actions.Dispatcher
	Log     *zap.Logger

	list *listing.Paged[query, models.SuccessfulPetition]
}

type query struct {
	api *backend.Session
	q   backend.SuccessfulQuery
}

// NewHandler constructs a successful petitions Handler.
func NewHandler(client *backend.Client, flash actions.Flasher, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Flash:   flash,
		Actions: actions.NewDispatcher(logger),
		Log:     logger,
		list: listing.NewPaged("successful.list", fetchPage,
			"Failed to load successful petitions: Failed to fetch successful petitions", logger),
	}
}

func fetchPage(ctx context.Context, p query) ([]models.SuccessfulPetition, paging.Meta, error) {
	res, err := p.api.SuccessfulPetitions(ctx, p.q)
	if err != nil {
		return nil, paging.Meta{}, err
	}
	pg := res.Pagination
	return res.SuccessfulPetitions, paging.Meta{
		CurrentPage:  pg.CurrentPage,
		TotalPages:   pg.TotalPages,
		TotalResults: pg.TotalResults,
	}, nil
}

func (h *Handler) api(r *http.Request) *backend.Session {
	return h.Client.Session(auth.Token(r))
}
