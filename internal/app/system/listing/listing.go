// Package listing is the fetch-and-render controller shared by every admin
// list page, plus the client-side search and sort that some pages apply to
// the rows they already hold.
package listing

import (
	"context"
	"errors"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"go.uber.org/zap"
)

// FetchFunc loads one page of T for the given parameters.
type FetchFunc[P, T any] func(ctx context.Context, params P) ([]T, error)

// State is what a list page renders: the rows, or an error string.
// A failed load always leaves Items empty.
type State[T any] struct {
	Items []T
	Error string
}

// Empty reports a successful load with no rows.
func (s State[T]) Empty() bool { return s.Error == "" && len(s.Items) == 0 }

// Controller binds a fetch function to the error text a page shows when
// the fetch fails.
type Controller[P, T any] struct {
	fetch    FetchFunc[P, T]
	fallback string
	log      *zap.Logger
	op       string
}

// New returns a controller. fallback is the page's generic error string
// ("Failed to load blogs"); op names the list in logs.
func New[P, T any](op string, fetch FetchFunc[P, T], fallback string, log *zap.Logger) *Controller[P, T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller[P, T]{fetch: fetch, fallback: fallback, log: log, op: op}
}

// Load runs the fetch once. The in-flight state is the page's htmx
// indicator; nothing is tracked here.
func (c *Controller[P, T]) Load(ctx context.Context, params P) State[T] {
	items, err := c.fetch(ctx, params)
	if err != nil {
		c.log.Warn("list load failed", zap.String("list", c.op), zap.Error(err))
		return State[T]{Error: ErrorText(err, c.fallback)}
	}
	if items == nil {
		items = []T{}
	}
	return State[T]{Items: items}
}

// ErrorText turns a load failure into the string a page shows. Backend
// {success:false,message} answers surface their message; HTTP failures and
// transport errors use the fallback.
func ErrorText(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.App && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
