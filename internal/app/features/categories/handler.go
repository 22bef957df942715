// internal/app/features/categories/handler.go
package categories

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/auth"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/listing"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/navigation"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/snapshot"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/viewdata"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const listPath = "/dashboard/categories"

var defaultSort = listing.SortState{Key: "name", Dir: listing.Asc}

var comparators = map[string]listing.Comparator[models.Category]{
	"name":      listing.ByString(func(c models.Category) string { return c.Name }),
	"slug":      listing.ByString(func(c models.Category) string { return c.Slug }),
	"createdAt": listing.ByTime(func(c models.Category) time.Time { return c.CreatedAt }),
}

// Handler serves the category table.
type Handler struct {
	Client  *backend.Client
	Flash   actions.Flasher
	Actions *actions.Dispatcher
	Log     *zap.Logger

	list *listing.Controller[*backend.Session, models.Category]
	last *snapshot.Store[[]models.Category]
}

// NewHandler constructs a categories Handler.
func NewHandler(client *backend.Client, flash actions.Flasher, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Flash:   flash,
		Actions: actions.NewDispatcher(logger),
		Log:     logger,
		list: listing.New("categories.list", func(ctx context.Context, api *backend.Session) ([]models.Category, error) {
			return api.Categories(ctx)
		}, "Failed to load category management data.", logger),
		last: snapshot.New[[]models.Category](0),
	}
}

func (h *Handler) api(r *http.Request) *backend.Session {
	return h.Client.Session(auth.Token(r))
}

type tableData struct {
	viewdata.BaseVM

	Error    string
	Rows     []models.Category
	Total    int
	Defaults int
	Search   string
	Sort     listing.SortState
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

// load builds the table from q. With reuse set, the session's last
// successful fetch is used when there is one.
func (h *Handler) load(r *http.Request, q url.Values, reuse bool) tableData {
	key := snapshot.Key(auth.Token(r))
	var st listing.State[models.Category]
	items, ok := h.last.Get(key)
	if reuse && ok {
		st.Items = items
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
		defer cancel()
		if st = h.list.Load(ctx, h.api(r)); st.Error == "" {
			h.last.Put(key, st.Items)
		}
	}

	d := tableData{
		BaseVM: viewdata.NewBaseVM(r, "Category Management"),
		Error:  st.Error,
		Total:  len(st.Items),
		Search: q.Get("q"),
		Sort:   listing.ParseSort(q, defaultSort, "name", "slug", "createdAt"),
	}
	for _, c := range st.Items {
		if c.IsDefault {
			d.Defaults++
		}
	}
	rows := listing.Filter(st.Items, d.Search,
		func(c models.Category) string { return c.Name },
		func(c models.Category) string { return c.Slug })
	d.Rows = listing.SortBy(rows, d.Sort, comparators)
	return d
}

// ServeList handles GET /dashboard/categories. Search and sort are applied
// here to the fetched rows; the backend only lists. Table requests from
// the page re-render the session's last fetch.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	reuse := actions.IsHTMX(r) && r.Header.Get("HX-Target") == "category-table"
	data := h.load(r, r.URL.Query(), reuse)
	if actions.IsHTMX(r) {
		templates.RenderFragment(w, r, "category_table", data)
		return
	}
	templates.Render(w, r, "categories", data)
}

// Delete handles POST /dashboard/categories/{id}/delete.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	api := h.api(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	out := h.Actions.Run(ctx, actions.Action{
		ID:             id,
		Verb:           "delete",
		Strategy:       actions.RefetchOnSuccess,
		Do:             func(ctx context.Context) error { return api.DeleteCategory(ctx, id) },
		Failure:        "Failed to delete category",
		NetworkFailure: "Error deleting category",
	})
	if !out.OK {
		actions.Fail(w, r, h.Flash, out.Alert, listPath)
		return
	}
	if !actions.IsHTMX(r) {
		http.Redirect(w, r, listPath, http.StatusSeeOther)
		return
	}
	templates.RenderFragment(w, r, "category_table", h.load(r, navigation.CurrentQuery(r), false))
}

// MountRoutes mounts the category routes on the /dashboard router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/categories", h.ServeList)
	r.Post("/categories/{id}/delete", h.Delete)
}
