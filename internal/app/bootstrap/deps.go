// internal/app/bootstrap/deps.go
package bootstrap

import (
	"github.com/gauravhaldar/sosign-admin/internal/app/system/auth"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/metrics"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/ratelimit"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/tasks"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/workers"
)

// Deps bundles the long-lived services built by Startup and used by
// BuildHandler and Shutdown.
//
// The dashboard owns no database; everything it shows comes from the
// SOSign backend through Client.
type Deps struct {
	Metrics   *metrics.Metrics
	Client    *backend.Client
	Sessions  *auth.SessionManager
	Limiter   *ratelimit.LoginLimiter
	Probe     *workers.BackendProbe
	Scheduler *tasks.Scheduler
}
