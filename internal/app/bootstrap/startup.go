// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/auth"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/metrics"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/ratelimit"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/tasks"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/workers"
	"go.uber.org/zap"
)

// Startup runs one-time initialization before the HTTP handler is built:
// deadlines, templates, the backend client, the session store, login
// throttling and the background backend probe.
func Startup(ctx context.Context, cfg AppConfig, logger *zap.Logger) (Deps, error) {
	timeouts.Configure(timeouts.Config{
		Short:  cfg.TimeoutShort,
		Medium: cfg.TimeoutMedium,
		Long:   cfg.TimeoutLong,
	})
	cur := timeouts.Current()
	logger.Info("timeouts configured",
		zap.Duration("short", cur.Short),
		zap.Duration("medium", cur.Medium),
		zap.Duration("long", cur.Long))

	templates.SetLogger(logger)
	if err := templates.Boot(); err != nil {
		return Deps{}, fmt.Errorf("boot templates: %w", err)
	}

	m := metrics.New()

	client, err := backend.NewClient(cfg.APIBaseURL, cfg.UpstreamTimeout, m, logger)
	if err != nil {
		return Deps{}, fmt.Errorf("backend client: %w", err)
	}

	sm, err := auth.NewSessionManager(cfg.SessionKey, cfg.SessionName, cfg.SessionDomain, cfg.SessionMaxAge, cfg.Secure(), logger)
	if err != nil {
		return Deps{}, fmt.Errorf("session manager: %w", err)
	}

	probe := workers.NewBackendProbe(func(ctx context.Context) error {
		_, err := client.PetitionStats(ctx)
		return err
	}, m, logger)

	sched := tasks.NewScheduler(logger)
	if err := sched.Add(probe.Job(cfg.ProbeSchedule, timeouts.Ping())); err != nil {
		return Deps{}, err
	}
	sched.Start()

	logger.Info("startup complete",
		zap.String("backend", client.BaseURL()),
		zap.String("env", cfg.Env))

	return Deps{
		Metrics:   m,
		Client:    client,
		Sessions:  sm,
		Limiter:   ratelimit.NewLoginLimiterWithConfig(cfg.LoginIPLimit, time.Minute, cfg.LoginEmailLimit, 5*time.Minute),
		Probe:     probe,
		Scheduler: sched,
	}, nil
}
