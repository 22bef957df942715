package listing

import (
	"context"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/paging"
	"go.uber.org/zap"
)

// PagedFetchFunc loads one page of T and the backend's page metadata.
type PagedFetchFunc[P, T any] func(ctx context.Context, params P) ([]T, paging.Meta, error)

// PagedState is a State plus the page metadata it came with. A failed
// load has zero Meta.
type PagedState[T any] struct {
	State[T]
	Meta paging.Meta
}

type pagedCall[P any] struct {
	params P
	meta   *paging.Meta
}

// Paged is a Controller for endpoints that return pagination metadata.
type Paged[P, T any] struct {
	*Controller[pagedCall[P], T]
}

// NewPaged returns a paged controller; the arguments mean what they mean
// for New.
func NewPaged[P, T any](op string, fetch PagedFetchFunc[P, T], fallback string, log *zap.Logger) *Paged[P, T] {
	inner := func(ctx context.Context, c pagedCall[P]) ([]T, error) {
		items, meta, err := fetch(ctx, c.params)
		if err == nil {
			*c.meta = meta
		}
		return items, err
	}
	return &Paged[P, T]{New(op, inner, fallback, log)}
}

// Load runs the fetch once.
func (p *Paged[P, T]) Load(ctx context.Context, params P) PagedState[T] {
	var meta paging.Meta
	st := p.Controller.Load(ctx, pagedCall[P]{params: params, meta: &meta})
	return PagedState[T]{State: st, Meta: meta}
}
