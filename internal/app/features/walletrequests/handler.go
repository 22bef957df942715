// internal/app/features/walletrequests/handler.go
package walletrequests

import (
	"context"
	"net/http"
	"net/url"
	"slices"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/auth"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/listing"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/navigation"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/viewdata"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const listPath = "/dashboard/wallet-requests"

// filters are the status buttons, in display order; "" is "All".
var filters = []string{"", models.StatusPending, models.StatusVerificationPending, models.StatusApproved, models.StatusRejected}

// Handler serves wallet recharge verification.
type Handler struct {
	Client  *backend.Client
	Flash   actions.Flasher
	Actions *actions.Dispatcher
	Log     *zap.Logger

	list *listing.Controller[query, models.WalletRequest]
}

type query struct {
	api    *backend.Session
	status string
}

// NewHandler constructs a wallet-requests Handler.
func NewHandler(client *backend.Client, flash actions.Flasher, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Flash:   flash,
		Actions: actions.NewDispatcher(logger),
		Log:     logger,
		list: listing.New("walletrequests.list", func(ctx context.Context, q query) ([]models.WalletRequest, error) {
			res, err := q.api.WalletRequests(ctx, q.status)
			return res.Requests, err
		}, "Failed to fetch recharge requests", logger),
	}
}

func (h *Handler) api(r *http.Request) *backend.Session {
	return h.Client.Session(auth.Token(r))
}

type listData struct {
	viewdata.BaseVM
	listing.State[models.WalletRequest]

	Status  string
	Filters []string
}

func filter(q url.Values) string {
	if s := q.Get("status"); slices.Contains(filters, s) {
		return s
	}
	return ""
}

func (h *Handler) load(r *http.Request, status string) listData {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	return listData{
		BaseVM:  viewdata.NewBaseVM(r, "Wallet Recharge Requests"),
		State:   h.list.Load(ctx, query{api: h.api(r), status: status}),
		Status:  status,
		Filters: filters,
	}
}

func currentFilter(r *http.Request) string {
	return filter(navigation.CurrentQuery(r))
}

func backTo(status string) string {
	return navigation.BackURL(listPath, url.Values{"status": {status}})
}

// ServeList handles GET /dashboard/wallet-requests.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	data := h.load(r, filter(r.URL.Query()))
	if actions.IsHTMX(r) {
		templates.RenderFragment(w, r, "wallet_request_table", data)
		return
	}
	templates.Render(w, r, "wallet_requests", data)
}

type proofData struct {
	viewdata.BaseVM
	Request models.WalletRequest
}

// ServeProof handles GET /dashboard/wallet-requests/{id}/proof: the payment
// screenshot at full size.
func (h *Handler) ServeProof(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st := h.list.Load(ctx, query{api: h.api(r)})
	if st.Error != "" {
		actions.Fail(w, r, h.Flash, st.Error, listPath)
		return
	}
	i := slices.IndexFunc(st.Items, func(wr models.WalletRequest) bool { return wr.ID == id })
	if i < 0 || st.Items[i].Screenshot == "" {
		actions.Fail(w, r, h.Flash, "No proof", listPath)
		return
	}
	data := proofData{BaseVM: viewdata.NewBaseVM(r, "Payment Proof"), Request: st.Items[i]}
	if actions.IsHTMX(r) {
		templates.RenderFragment(w, r, "wallet_request_proof", data)
		return
	}
	templates.Render(w, r, "wallet_request_proof_page", data)
}

// Review handles POST /dashboard/wallet-requests/{id}/{action}. There is
// no confirmation step; success reloads the table with the current filter.
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	if action != "approve" && action != "reject" {
		http.NotFound(w, r)
		return
	}
	id := chi.URLParam(r, "id")
	status := currentFilter(r)
	api := h.api(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	out := h.Actions.Run(ctx, actions.Action{
		ID:       id,
		Verb:     action,
		Strategy: actions.RefetchOnSuccess,
		Do: func(ctx context.Context) error {
			return api.ReviewWalletRequest(ctx, action, id)
		},
		Failure: "Action failed",
	})
	if !out.OK {
		actions.Fail(w, r, h.Flash, out.Alert, backTo(status))
		return
	}
	if !actions.IsHTMX(r) {
		http.Redirect(w, r, backTo(status), http.StatusSeeOther)
		return
	}
	templates.RenderFragment(w, r, "wallet_request_table", h.load(r, status))
}

// MountRoutes registers the wallet-request routes under /dashboard.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/wallet-requests", h.ServeList)
	r.Get("/wallet-requests/{id}/proof", h.ServeProof)
	r.Post("/wallet-requests/{id}/{action}", h.Review)
}
