// internal/app/features/downloadrequests/list.go
package downloadrequests

import (
	"context"
	"net/http"
	"net/url"
	"slices"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/listing"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/navigation"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/viewdata"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
)

type panelData struct {
	viewdata.BaseVM
	listing.State[models.DownloadRequest]

	Status string
	Stats  Stats
}

// Pending reports whether the pending tab is shown; only it has actions.
func (d panelData) Pending() bool { return d.Status == models.StatusPending }

func tab(q url.Values) string {
	if s := q.Get("status"); slices.Contains(tabs, s) {
		return s
	}
	return tabs[0]
}

func (h *Handler) load(r *http.Request, status string) panelData {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	api := h.api(r)
	return panelData{
		BaseVM: viewdata.NewBaseVM(r, "Download Requests"),
		State:  h.list.Load(ctx, query{api: api, status: status}),
		Status: status,
		Stats:  h.loadStats(ctx, r, api),
	}
}

// currentTab is the tab the page is showing, so an action reloads it.
func currentTab(r *http.Request) string {
	return tab(navigation.CurrentQuery(r))
}

// ServeList handles GET /dashboard/download-requests. The tab cards and
// the table are reloaded together.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	data := h.load(r, tab(r.URL.Query()))
	if actions.IsHTMX(r) {
		templates.RenderFragment(w, r, "download_request_panel", data)
		return
	}
	templates.Render(w, r, "download_requests", data)
}
