// internal/app/system/workers/backendprobe.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/metrics"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/tasks"
	"go.uber.org/zap"
)

// Checker is the backend call used as a liveness signal.
type Checker func(ctx context.Context) error

// ProbeStatus is the latest probe result.
type ProbeStatus struct {
	Up        bool
	CheckedAt time.Time
	Took      time.Duration
	Error     string
}

// BackendProbe periodically calls the backend's public stats endpoint and
// keeps the last result for /health and the backend_up gauge.
type BackendProbe struct {
	check   Checker
	metrics *metrics.Metrics
	log     *zap.Logger

	mu   sync.RWMutex
	last ProbeStatus
}

// NewBackendProbe creates a probe. m may be nil.
func NewBackendProbe(check Checker, m *metrics.Metrics, logger *zap.Logger) *BackendProbe {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackendProbe{check: check, metrics: m, log: logger}
}

// Status returns the latest result. CheckedAt is zero before the first run.
func (p *BackendProbe) Status() ProbeStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

// Check runs one probe and records the result.
func (p *BackendProbe) Check(ctx context.Context) error {
	start := time.Now()
	err := p.check(ctx)

	st := ProbeStatus{Up: err == nil, CheckedAt: time.Now(), Took: time.Since(start)}
	if err != nil {
		st.Error = err.Error()
	}

	p.mu.Lock()
	wasUp, seen := p.last.Up, !p.last.CheckedAt.IsZero()
	p.last = st
	p.mu.Unlock()

	p.metrics.SetBackendUp(st.Up)
	if seen && wasUp != st.Up {
		if st.Up {
			p.log.Info("backend reachable again", zap.Duration("took", st.Took))
		} else {
			p.log.Warn("backend unreachable", zap.Error(err))
		}
	}
	return err
}

// Job wraps the probe for the scheduler.
func (p *BackendProbe) Job(schedule string, timeout time.Duration) tasks.Job {
	return tasks.Job{
		Name:     "backend-probe",
		Schedule: schedule,
		Timeout:  timeout,
		Run:      p.Check,
	}
}
