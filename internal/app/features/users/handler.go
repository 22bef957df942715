// internal/app/features/users/handler.go
package users

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/auth"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/batch"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/listing"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/snapshot"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/viewdata"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	listPath   = "/dashboard/users"
	loadFailed = "Failed to load user management data."
)

var defaultSort = listing.SortState{Key: "createdAt", Dir: listing.Desc}

var comparators = map[string]listing.Comparator[models.Customer]{
	"name":      listing.ByString(func(c models.Customer) string { return c.Name }),
	"email":     listing.ByString(func(c models.Customer) string { return c.Email }),
	"createdAt": listing.ByTime(func(c models.Customer) time.Time { return c.CreatedAt }),
}

// Handler serves the registered users table.
type Handler struct {
	Client *backend.Client
	Log    *zap.Logger

	// last holds each session's most recent fetch; search and sort
	// re-render from it.
	last *snapshot.Store[fetched]
}

// fetched is one load of the page: the customers and the platform total.
type fetched struct {
	Customers []models.Customer
	Total     int
}

// NewHandler constructs a users Handler.
func NewHandler(client *backend.Client, logger *zap.Logger) *Handler {
	return &Handler{Client: client, Log: logger, last: snapshot.New[fetched](0)}
}

type tableData struct {
	viewdata.BaseVM

	Error      string
	Rows       []models.Customer
	TotalUsers int
	Search     string
	Sort       listing.SortState
}

// SortURL is the link behind a column header.
func (d tableData) SortURL(key string) string {
	s := d.Sort.Toggle(key)
	v := url.Values{"sort": {s.Key}, "dir": {string(s.Dir)}}
	if d.Search != "" {
		v.Set("q", d.Search)
	}
	return listPath + "?" + v.Encode()
}

// fetch reads the customers and the platform total together. The total
// is best effort: a stats answer of {success:false} leaves it at zero.
func (h *Handler) fetch(r *http.Request) (fetched, error) {
	api := h.Client.Session(auth.Token(r))
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var f fetched
	err := batch.All(ctx,
		func(ctx context.Context) error {
			var err error
			f.Customers, err = api.Customers(ctx)
			return err
		},
		func(ctx context.Context) error {
			st, err := api.Stats(ctx)
			if err != nil {
				if e, ok := backend.AsAPIError(err); ok && e.App {
					return nil
				}
				return err
			}
			f.Total = st.TotalUsers
			return nil
		},
	)
	return f, err
}

// load builds the table. Search and sort requests from the page (htmx
// targeting the table) reuse the session's last fetch; anything else
// fetches again.
func (h *Handler) load(r *http.Request) tableData {
	q := r.URL.Query()
	d := tableData{
		BaseVM: viewdata.NewBaseVM(r, "User Management"),
		Search: q.Get("q"),
		Sort:   listing.ParseSort(q, defaultSort, "name", "email", "createdAt"),
	}

	key := snapshot.Key(auth.Token(r))
	f, ok := fetched{}, false
	if actions.IsHTMX(r) && r.Header.Get("HX-Target") == "user-table" {
		f, ok = h.last.Get(key)
	}
	if !ok {
		var err error
		if f, err = h.fetch(r); err != nil {
			h.Log.Warn("users load failed", zap.Error(err))
			d.Error = loadFailed
			return d
		}
		h.last.Put(key, f)
	}

	d.TotalUsers = f.Total
	rows := listing.Filter(f.Customers, d.Search,
		func(c models.Customer) string { return c.Name },
		func(c models.Customer) string { return c.Email })
	d.Rows = listing.SortBy(rows, d.Sort, comparators)
	return d
}

// ServeList handles GET /dashboard/users.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	data := h.load(r)
	if actions.IsHTMX(r) {
		templates.RenderFragment(w, r, "user_table", data)
		return
	}
	templates.Render(w, r, "users", data)
}

// MountRoutes mounts the users route on the /dashboard router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/users", h.ServeList)
}
