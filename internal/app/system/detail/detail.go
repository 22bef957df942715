// Package detail loads a single resource for a detail page and keeps
// "not found" apart from "failed".
package detail

import (
	"context"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
)

// Result is the outcome of loading one resource. Exactly one of Item,
// NotFound or Err is set.
type Result[T any] struct {
	Item     *T
	NotFound bool
	Err      string
}

// Found reports a loaded item.
func (r Result[T]) Found() bool { return r.Item != nil }

// Load calls fetch. Only a successful answer with an empty payload is
// NotFound; every failed call, 404 included, is Err with the backend's
// message or fallback as its text.
func Load[T any](ctx context.Context, fetch func(context.Context) (*T, error), fallback string) Result[T] {
	item, err := fetch(ctx)
	switch {
	case err != nil:
		return Result[T]{Err: backend.MessageOr(err, fallback)}
	case item == nil:
		return Result[T]{NotFound: true}
	}
	return Result[T]{Item: item}
}
