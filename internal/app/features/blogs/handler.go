// internal/app/features/blogs/handler.go
package blogs

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

const listPath = "/dashboard/blogs"

// Handler serves blog management: the list, toggles, and the create and
// edit forms.
type Handler struct {
	Client   *backend.Client
	Flash    actions.Flasher
	Actions  *actions.Dispatcher
	Log      *zap.Logger
	MaxBytes int64

	list *listing.Paged[query, models.Blog]
}

type query struct {
	api  *backend.Session
	page int
}

// NewHandler constructs a blogs Handler.
func NewHandler(client *backend.Client, flash actions.Flasher, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Flash:   flash,
		Actions: actions.NewDispatcher(logger),
		Log:     logger,
		list:    listing.NewPaged("blogs.list", fetchPage, "Failed to fetch blogs", logger),
	}
}

func fetchPage(ctx context.Context, q query) ([]models.Blog, paging.Meta, error) {
	res, err := q.api.Blogs(ctx, q.page, paging.PageSize)
	if err != nil {
		return nil, paging.Meta{}, err
	}
	return res.Blogs, paging.Meta{CurrentPage: q.page, TotalPages: max(res.TotalPages, 1)}, nil
}

func (h *Handler) api(r *http.Request) *backend.Session {
	return h.Client.Session(auth.Token(r))
}
