// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Run drives the app lifecycle: load and validate config, build the
// logger, Startup, BuildHandler, serve until ctx is cancelled or a
// SIGINT/SIGTERM arrives, then drain requests and Shutdown.
func Run(ctx context.Context, args []string) error {
	boot := NewBootstrapLogger()
	defer func() { _ = boot.Sync() }()

	cfg, err := LoadConfig(args, boot)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := ValidateConfig(cfg, boot); err != nil {
		return err
	}

	logger, err := NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := Startup(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return err
	}

	handler, err := BuildHandler(cfg, deps, logger)
	if err != nil {
		logger.Error("build handler failed", zap.Error(err))
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.TimeoutLong + 10*time.Second,
		WriteTimeout:      cfg.TimeoutLong + 15*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("env", cfg.Env))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", zap.Error(err))
			_ = Shutdown(context.Background(), deps, logger)
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown", zap.Error(err))
	}
	if err := Shutdown(shutdownCtx, deps, logger); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	logger.Info("stopped")
	return nil
}
