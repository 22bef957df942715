// internal/app/system/tasks/scheduler.go
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a named unit of periodic work.
type Job struct {
	Name     string
	Schedule string // cron spec or "@every 30s"
	Timeout  time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler runs registered jobs on their schedules.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
	jobs []Job
}

// NewScheduler creates a scheduler running in UTC.
func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.Recover(cronLogger{logger}))),
		log:  logger,
	}
}

// Add registers j. An invalid schedule is an error; the job is not added.
func (s *Scheduler) Add(j Job) error {
	if j.Run == nil {
		return fmt.Errorf("job %q has no Run func", j.Name)
	}
	if j.Timeout <= 0 {
		j.Timeout = 30 * time.Second
	}
	if _, err := s.cron.AddFunc(j.Schedule, func() { s.runOnce(j) }); err != nil {
		return fmt.Errorf("schedule job %q (%q): %w", j.Name, j.Schedule, err)
	}
	s.jobs = append(s.jobs, j)
	return nil
}

// Start runs every job once immediately and then on its schedule.
func (s *Scheduler) Start() {
	for _, j := range s.jobs {
		go s.runOnce(j)
	}
	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.jobs)))
}

// Stop halts scheduling and waits for running jobs, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("scheduler stopped")
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out")
	}
}

func (s *Scheduler) runOnce(j Job) {
	ctx, cancel := context.WithTimeout(context.Background(), j.Timeout)
	defer cancel()

	start := time.Now()
	if err := j.Run(ctx); err != nil {
		s.log.Warn("job failed",
			zap.String("job", j.Name),
			zap.Duration("took", time.Since(start)),
			zap.Error(err))
		return
	}
	s.log.Debug("job done", zap.String("job", j.Name), zap.Duration("took", time.Since(start)))
}

// cronLogger adapts zap to cron.Logger for the Recover wrapper.
type cronLogger struct{ l *zap.Logger }

func (c cronLogger) Info(msg string, kv ...any) {
	c.l.Sugar().Infow(msg, kv...)
}

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.l.Sugar().Errorw(msg, append(kv, "error", err)...)
}
