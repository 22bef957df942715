// internal/app/features/hiderequests/list.go
package hiderequests

import (
	"context"
	"net/http"
	"net/url"
	"slices"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/listing"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/paging"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/viewdata"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
)

type listData struct {
	viewdata.BaseVM
	listing.PagedState[models.HideRequest]

	Status   string
	Statuses []string
	Pages    paging.Range
}

// filter reads status and page from q. An unknown status is treated as
// "all".
func filter(q url.Values) (status string, page int) {
	status = q.Get("status")
	if !slices.Contains(statuses, status) {
		status = ""
	}
	return status, paging.ParsePositive(q.Get("page"), 1)
}

func (h *Handler) load(r *http.Request, q url.Values) listData {
	status, page := filter(q)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st := h.list.Load(ctx, query{api: h.api(r), page: page, status: status})

	base := url.Values{}
	if status != "" {
		base.Set("status", status)
	}
	return listData{
		BaseVM:     viewdata.NewBaseVM(r, "Hide Requests Management"),
		PagedState: st,
		Status:     status,
		Statuses:   statuses,
		Pages:      paging.Window(st.Meta, paging.PageSize, &url.URL{Path: listPath, RawQuery: base.Encode()}),
	}
}

// ServeList handles GET /dashboard/hide-requests. Changing the status
// filter resets to page 1 because the select does not carry a page.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	data := h.load(r, r.URL.Query())
	if actions.IsHTMX(r) {
		templates.RenderFragment(w, r, "hide_request_list", data)
		return
	}
	templates.Render(w, r, "hide_requests", data)
}
