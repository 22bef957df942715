// internal/app/features/wallets/handler.go
package wallets

import (
	"cmp"
	"context"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/auth"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/listing"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/paging"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/snapshot"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/viewdata"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	listPath = "/dashboard/wallets"
	topN     = 5
)

// Handler serves the wallet balances page. Rate converts wallet points to
// rupees for display.
type Handler struct {
	Client *backend.Client
	Log    *zap.Logger
	Rate   float64

	list *listing.Paged[query, models.Wallet]
	// last holds each session's most recent page, keyed by page number.
	last *snapshot.Store[listing.PagedState[models.Wallet]]
}

type query struct {
	api  *backend.Session
	page int
}

// NewHandler constructs a wallets Handler. A non-positive rate means 1.
func NewHandler(client *backend.Client, rate float64, logger *zap.Logger) *Handler {
	if rate <= 0 {
		rate = 1
	}
	return &Handler{
		Client: client,
		Log:    logger,
		Rate:   rate,
		list:   listing.NewPaged("wallets.list", fetchPage, "Failed to load wallets: Failed to fetch wallets", logger),
		last:   snapshot.New[listing.PagedState[models.Wallet]](0),
	}
}

func fetchPage(ctx context.Context, q query) ([]models.Wallet, paging.Meta, error) {
	res, err := q.api.Wallets(ctx, q.page, paging.PageSize)
	if err != nil {
		return nil, paging.Meta{}, err
	}
	return res.Wallets, paging.Meta{
		CurrentPage:  cmp.Or(res.CurrentPage, q.page),
		TotalPages:   res.TotalPages,
		TotalResults: res.TotalWallets,
	}, nil
}

// row is one wallet as displayed.
type row struct {
	models.Wallet
	Index  int
	Amount float64
}

type pageData struct {
	viewdata.BaseVM
	listing.PagedState[models.Wallet]

	Search  string
	Rows    []row
	Top     []row
	Total   float64
	Average float64
	Highest float64
	Pages   paging.Range
}

// Showing is the range line under the table.
func (d pageData) Showing() string {
	return "Showing " + strconv.Itoa(d.Pages.From) + " to " + strconv.Itoa(d.Pages.To) +
		" of " + strconv.Itoa(d.Pages.Total) + " wallets"
}

// summarize fills the balance cards from the loaded page. The average
// divides by the platform wallet count the backend reports.
func (h *Handler) summarize(d *pageData) {
	offset := (max(d.Meta.CurrentPage, 1) - 1) * paging.PageSize
	all := make([]row, len(d.Items))
	for i, w := range d.Items {
		all[i] = row{Wallet: w, Index: offset + i + 1, Amount: w.Balance * h.Rate}
		d.Total += all[i].Amount
	}
	if d.Meta.TotalResults > 0 {
		d.Average = d.Total / float64(d.Meta.TotalResults)
	}

	top := slices.Clone(all)
	slices.SortStableFunc(top, func(a, b row) int { return cmp.Compare(b.Balance, a.Balance) })
	d.Top = top[:min(topN, len(top))]
	if len(d.Top) > 0 {
		d.Highest = d.Top[0].Amount
	}

	d.Rows = listing.Filter(all, d.Search,
		func(r row) string { return r.UserID.Name },
		func(r row) string { return r.UserID.Email },
		func(r row) string { return r.UserID.MobileNumber },
		func(r row) string { return r.UserID.UniqueCode })
}

// load builds the page. With reuse set, the session's last fetch of the
// same page is used when there is one.
func (h *Handler) load(r *http.Request, reuse bool) pageData {
	q := r.URL.Query()
	page := paging.ParsePositive(q.Get("page"), 1)

	key := snapshot.Key(auth.Token(r), strconv.Itoa(page))
	st, ok := h.last.Get(key)
	if !reuse || !ok {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
		defer cancel()
		if st = h.list.Load(ctx, query{api: h.Client.Session(auth.Token(r)), page: page}); st.Error == "" {
			h.last.Put(key, st)
		}
	}

	d := pageData{
		BaseVM:     viewdata.NewBaseVM(r, "User Wallet Management"),
		PagedState: st,
		Search:     q.Get("q"),
		Pages:      paging.Window(st.Meta, paging.PageSize, &url.URL{Path: listPath}),
	}
	h.summarize(&d)
	return d
}

// ServeList handles GET /dashboard/wallets. Search narrows the page
// already loaded and swaps only the table; paging asks the backend for
// another page and swaps the cards too.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	search := actions.IsHTMX(r) && r.Header.Get("HX-Target") == "wallet-table"
	data := h.load(r, search)
	switch {
	case !actions.IsHTMX(r):
		templates.Render(w, r, "wallets", data)
	case search:
		templates.RenderFragment(w, r, "wallet_table", data)
	default:
		templates.RenderFragment(w, r, "wallets_body", data)
	}
}

// MountRoutes mounts the wallets route on the /dashboard router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/wallets", h.ServeList)
}
