// internal/app/features/successful/list.go
package successful

import (
	"context"
	"net/http"
	"net/url"
	"slices"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/formutil"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/listing"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/navigation"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/paging"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/viewdata"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

type filter struct {
	Page     int
	Search   string
	Category string
	Location string
	Sort     string
}

func parseFilter(q url.Values) filter {
	f := filter{
		Page:     paging.ParsePositive(q.Get("page"), 1),
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Location: q.Get("location"),
		Sort:     q.Get("sort"),
	}
	if !slices.ContainsFunc(SortOptions, func(o SortOption) bool { return o.Key == f.Sort }) {
		f.Sort = ""
	}
	return f
}

type listData struct {
	viewdata.BaseVM
	listing.PagedState[models.SuccessfulPetition]

	Filter      filter
	Categories  []string
	Locations   []string
	SortOptions []SortOption
	Pages       paging.Range
}

// locations lists the distinct locations on the loaded page, sorted, plus
// the selected one so the filter never loses its value.
func locations(items []models.SuccessfulPetition, selected string) []string {
	var out []string
	for _, p := range items {
		if p.Location != "" && !slices.Contains(out, p.Location) {
			out = append(out, p.Location)
		}
	}
	if selected != "" && !slices.Contains(out, selected) {
		out = append(out, selected)
	}
	slices.Sort(out)
	return out
}

func (h *Handler) load(r *http.Request, f filter) listData {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st := h.list.Load(ctx, query{api: h.api(r), q: backend.SuccessfulQuery{
		Page:     f.Page,
		Limit:    paging.PageSize,
		Search:   f.Search,
		Category: f.Category,
		Location: f.Location,
		Sort:     f.Sort,
	}})

	base := &url.URL{Path: listPath, RawQuery: encodeFilter(f).Encode()}
	return listData{
		BaseVM:      viewdata.NewBaseVM(r, "Successful Petitions"),
		PagedState:  st,
		Filter:      f,
		Categories:  Categories,
		Locations:   locations(st.Items, f.Location),
		SortOptions: SortOptions,
		Pages:       paging.Window(st.Meta, paging.PageSize, base),
	}
}

func encodeFilter(f filter) url.Values {
	v := url.Values{}
	for k, val := range map[string]string{"search": f.Search, "category": f.Category, "location": f.Location, "sort": f.Sort} {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

// ServeList handles GET /dashboard/successfulpetitions. htmx requests from
// the filter form and pager get only the list fragment.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	data := h.load(r, parseFilter(r.URL.Query()))
	if actions.IsHTMX(r) {
		templates.RenderFragment(w, r, "successful_list", data)
		return
	}
	templates.Render(w, r, "successful_petitions", data)
}

// Delete handles POST /dashboard/successfulpetitions/{id}/delete. From the
// list the current page is refetched; from the detail page the admin is
// sent back to the list.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	api := h.api(r)
	fromDetail := formutil.Value(r, "from") == "detail"

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	out := h.Actions.Run(ctx, actions.Action{
		ID:       id,
		Verb:     "delete",
		Strategy: actions.RefetchOnSuccess,
		Do:       func(ctx context.Context) error { return api.DeleteSuccessfulPetition(ctx, id) },
	})
	if !out.OK {
		back := listPath
		if fromDetail {
			back = listPath + "/" + url.PathEscape(id)
		}
		msg := "Failed to delete successful petition: " + backend.DetailOr(out.Err, "Failed to delete successful petition")
		actions.Fail(w, r, h.Flash, msg, back)
		return
	}

	const done = "Successful petition deleted successfully!"
	if fromDetail || !actions.IsHTMX(r) {
		h.Flash.AddFlash(w, r, done)
		actions.Redirect(w, r, listPath)
		return
	}
	actions.Trigger(w, map[string]any{actions.EventAlert: done})
	templates.RenderFragment(w, r, "successful_list", h.load(r, parseFilter(navigation.CurrentQuery(r))))
}
