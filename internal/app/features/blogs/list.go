// internal/app/features/blogs/list.go
package blogs

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/listing"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/navigation"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/paging"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/viewdata"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

type listData struct {
	viewdata.BaseVM
	listing.PagedState[models.Blog]

	Page      int
	Pages     paging.Range
	Published int
	Featured  int
}

func (h *Handler) load(r *http.Request, page int) listData {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st := h.list.Load(ctx, query{api: h.api(r), page: page})
	base := &url.URL{Path: listPath}
	d := listData{
		BaseVM:     viewdata.NewBaseVM(r, "Blog Management"),
		PagedState: st,
		Page:       page,
		Pages:      paging.Window(st.Meta, paging.PageSize, base),
	}
	// Counts cover the loaded page only.
	for _, b := range st.Items {
		if b.IsPublished {
			d.Published++
		}
		if b.IsFeatured {
			d.Featured++
		}
	}
	return d
}

func currentPage(r *http.Request) int {
	return paging.ParsePositive(navigation.CurrentQuery(r).Get("page"), 1)
}

// ServeList handles GET /dashboard/blogs.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	data := h.load(r, paging.ParsePage(r))
	if actions.IsHTMX(r) {
		templates.RenderFragment(w, r, "blog_list", data)
		return
	}
	templates.Render(w, r, "blogs", data)
}

// Delete handles POST /dashboard/blogs/{id}/delete.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	api := h.api(r)
	h.mutate(w, r, "delete", "Failed to delete blog", api.DeleteBlog)
}

// ToggleFeatured handles POST /dashboard/blogs/{id}/featured.
func (h *Handler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	api := h.api(r)
	h.mutate(w, r, "toggle-featured", "Failed to toggle featured", api.ToggleBlogFeatured)
}

// TogglePublished handles POST /dashboard/blogs/{id}/publish.
func (h *Handler) TogglePublished(w http.ResponseWriter, r *http.Request) {
	api := h.api(r)
	h.mutate(w, r, "toggle-published", "Failed to toggle published", api.ToggleBlogPublished)
}

// mutate runs a list action and answers with the refetched list.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, verb, failure string, do func(context.Context, string) error) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	out := h.Actions.Run(ctx, actions.Action{
		ID:       id,
		Verb:     verb,
		Strategy: actions.RefetchOnSuccess,
		Do:       func(ctx context.Context) error { return do(ctx, id) },
		Failure:  failure,
	})
	if !out.OK {
		actions.Fail(w, r, h.Flash, out.Alert, listPath)
		return
	}
	if !actions.IsHTMX(r) {
		http.Redirect(w, r, listPath, http.StatusSeeOther)
		return
	}
	templates.RenderFragment(w, r, "blog_list", h.load(r, currentPage(r)))
}
