// internal/app/features/comments/handler.go
package comments

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

const approvalPath = "/dashboard/comment-approval"

// Handler serves comment moderation: the approval queue and the comment
// thread shown on each petition page.
type Handler struct {
	Client  *backend.Client
	Flash   actions.Flasher
	Actions *actions.Dispatcher
	Log     *zap.Logger

	pending *listing.Controller[*backend.Session, models.Comment]
}

// NewHandler constructs a comments Handler.
func NewHandler(client *backend.Client, flash actions.Flasher, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Flash:   flash,
		Actions: actions.NewDispatcher(logger),
		Log:     logger,
		pending: listing.New("comments.unapproved", fetchPending, "Failed to fetch comments", logger),
	}
}

func fetchPending(ctx context.Context, api *backend.Session) ([]models.Comment, error) {
	res, err := api.UnapprovedComments(ctx)
	return res.Comments, err
}

func (h *Handler) api(r *http.Request) *backend.Session {
	return h.Client.Session(auth.Token(r))
}
