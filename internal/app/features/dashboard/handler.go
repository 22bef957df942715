// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"

	_ "github.com/gauravhaldar/sosign-admin/internal/app/features/dashboard/views"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/auth"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/viewdata"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"go.uber.org/zap"
)

const msgStatsFailed = "Failed to fetch statistics"

type Handler struct {
	Client *backend.Client
	Log    *zap.Logger
}

func NewHandler(client *backend.Client, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		Log:    logger,
	}
}

type dashboardData struct {
	viewdata.BaseVM
	Error  string
	Stats  *models.DashboardStats
	Charts chartSet
}

// ServeDashboard handles GET /dashboard: the overview cards, breakdowns and
// charts from /api/admin/stats.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	data := dashboardData{BaseVM: viewdata.NewBaseVM(r, "Dashboard Overview")}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	stats, err := h.Client.Session(auth.Token(r)).Stats(ctx)
	if err != nil {
		h.Log.Warn("dashboard stats failed", zap.Int("status", backend.StatusCode(err)), zap.Error(err))
		data.Error = backend.MessageOr(err, msgStatsFailed)
	} else {
		data.Stats = stats
		data.Charts = buildCharts(*stats)
	}

	templates.Render(w, r, "dashboard", data)
}
