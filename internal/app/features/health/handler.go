// internal/app/features/health/handler.go
package health

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/workers"
	"go.uber.org/zap"
)

// StatusSource reports the latest backend probe. *workers.BackendProbe
// satisfies it.
type StatusSource interface {
	Status() workers.ProbeStatus
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Probe   StatusSource
	BaseURL string
	Log     *zap.Logger
}

// NewHandler constructs a health Handler reading probe results from p.
func NewHandler(p StatusSource, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Probe:   p,
		BaseURL: baseURL,
		Log:     logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status    string     `json:"status"`
	Backend   string     `json:"backend"`
	BaseURL   string     `json:"backend_url,omitempty"`
	CheckedAt *time.Time `json:"checked_at,omitempty"`
	TookMS    int64      `json:"took_ms,omitempty"`
	Message   string     `json:"message,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// Serve handles GET /health. It never calls the backend itself; it reports
// what the last scheduled probe saw.
//
// Backend reachable: 200 and
//
//	{ "status":"ok", "backend":"reachable", "checked_at":"…", "took_ms":12 }
//
// No probe has run yet: 200 and
//
//	{ "status":"ok", "backend":"unknown" }
//
// Backend unreachable: 503 and
//
//	{ "status":"error", "backend":"unreachable", "message":"Backend unavailable", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{Status: "ok", Backend: "unknown", BaseURL: h.BaseURL}

	st := h.Probe.Status()
	if !st.CheckedAt.IsZero() {
		at := st.CheckedAt.UTC()
		resp.CheckedAt = &at
		resp.TookMS = st.Took.Milliseconds()
		resp.Backend = "reachable"
	}

	if !st.CheckedAt.IsZero() && !st.Up {
		h.Log.Warn("health-check: backend probe failing", zap.String("error", st.Error))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Backend = "unreachable"
		resp.Message = "Backend unavailable"
		resp.Error = st.Error
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
