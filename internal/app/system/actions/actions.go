// Package actions runs the mutating admin actions (approve, reject, toggle,
// delete) and shapes the response the page expects afterwards.
//
// Two strategies exist and are chosen per action:
//
//   - RefetchOnSuccess: the page reloads its list (and stats, where it has
//     them) from the backend and closes any open modal. Used almost
//     everywhere.
//   - LocalRemoveOnSuccess: the row is dropped from the page without a new
//     list request. Used by the single-click petition and comment approvals.
package actions

import (
	"context"
	"errors"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"go.uber.org/zap"
)

// Strategy is what happens to the page after an action succeeds.
type Strategy int

const (
	RefetchOnSuccess Strategy = iota
	LocalRemoveOnSuccess
)

func (s Strategy) String() string {
	if s == LocalRemoveOnSuccess {
		return "local-remove"
	}
	return "refetch"
}

// Action is one mutation against the backend.
type Action struct {
	ID       string
	Verb     string // approve, reject, toggle, delete
	Strategy Strategy

	// Do performs the backend call.
	Do func(ctx context.Context) error

	// Failure is the alert text when the backend gives no message.
	Failure string
	// NetworkFailure, when set, replaces Failure for transport errors
	// (no HTTP response at all).
	NetworkFailure string
}

// Outcome tells the handler how to answer.
type Outcome struct {
	OK       bool
	Refetch  bool
	RemoveID string
	Alert    string
	Err      error
}

// Dispatcher runs actions and logs failures.
type Dispatcher struct {
	log *zap.Logger
}

// NewDispatcher returns a dispatcher logging to log.
func NewDispatcher(log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{log: log}
}

// Run performs a. Nothing about the page changes before Do returns; a
// failed action never removes or refetches anything.
func (d *Dispatcher) Run(ctx context.Context, a Action) Outcome {
	if err := a.Do(ctx); err != nil {
		d.log.Warn("admin action failed",
			zap.String("verb", a.Verb),
			zap.String("id", a.ID),
			zap.Int("status", backend.StatusCode(err)),
			zap.Error(err))
		return Outcome{Alert: failureText(err, a), Err: err}
	}

	d.log.Debug("admin action done",
		zap.String("verb", a.Verb),
		zap.String("id", a.ID),
		zap.Stringer("strategy", a.Strategy))

	out := Outcome{OK: true}
	switch a.Strategy {
	case LocalRemoveOnSuccess:
		out.RemoveID = a.ID
	default:
		out.Refetch = true
	}
	return out
}

func failureText(err error, a Action) string {
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) && a.NetworkFailure != "" {
		return a.NetworkFailure
	}
	return backend.MessageOr(err, a.Failure)
}
