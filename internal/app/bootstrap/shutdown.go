// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"go.uber.org/zap"
)

// Shutdown stops background work started by Startup.
func Shutdown(ctx context.Context, deps Deps, logger *zap.Logger) error {
	if deps.Scheduler != nil {
		logger.Info("stopping scheduler")
		deps.Scheduler.Stop(ctx)
	}
	if deps.Limiter != nil {
		deps.Limiter.Stop()
	}
	return ctx.Err()
}
