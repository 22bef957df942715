package listing

import (
	"cmp"
	"net/url"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// fold case-folds s. A Caser keeps state, so each call builds its own.
func fold(s string) string { return cases.Fold().String(s) }

// Filter keeps the items where any of the fields contains q, compared
// case-insensitively. An empty q keeps everything.
func Filter[T any](items []T, q string, fields ...func(T) string) []T {
	q = strings.TrimSpace(q)
	if q == "" {
		return items
	}
	needle := fold(q)
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields {
			if strings.Contains(fold(f(it)), needle) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Direction is a sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortState is the column and direction a table is ordered by.
type SortState struct {
	Key string
	Dir Direction
}

// ParseSort reads ?sort=key&dir=asc|desc, falling back to def. Unknown
// keys fall back too.
func ParseSort(q url.Values, def SortState, allowed ...string) SortState {
	key := q.Get("sort")
	if key == "" || !slices.Contains(allowed, key) {
		return def
	}
	dir := Direction(q.Get("dir"))
	if dir != Desc {
		dir = Asc
	}
	return SortState{Key: key, Dir: dir}
}

// Toggle returns the state after clicking the header for key: a new column
// starts ascending, the same column flips.
func (s SortState) Toggle(key string) SortState {
	if s.Key != key {
		return SortState{Key: key, Dir: Asc}
	}
	if s.Dir == Asc {
		return SortState{Key: key, Dir: Desc}
	}
	return SortState{Key: key, Dir: Asc}
}

// Indicator is the arrow shown beside a header.
func (s SortState) Indicator(key string) string {
	if s.Key != key {
		return ""
	}
	if s.Dir == Desc {
		return "↓"
	}
	return "↑"
}

// Comparator is a three-way comparison.
type Comparator[T any] func(a, b T) int

// ByString compares a string field case-insensitively.
func ByString[T any](f func(T) string) Comparator[T] {
	return func(a, b T) int {
		return strings.Compare(fold(f(a)), fold(f(b)))
	}
}

// ByTime compares a time field.
func ByTime[T any](f func(T) time.Time) Comparator[T] {
	return func(a, b T) int { return f(a).Compare(f(b)) }
}

// ByNumber compares an ordered field.
func ByNumber[T any, N cmp.Ordered](f func(T) N) Comparator[T] {
	return func(a, b T) int { return cmp.Compare(f(a), f(b)) }
}

// SortBy returns a stably sorted copy of items using the comparator
// registered for s.Key. Items are returned unchanged for an unknown key.
func SortBy[T any](items []T, s SortState, by map[string]Comparator[T]) []T {
	c, ok := by[s.Key]
	if !ok {
		return items
	}
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		if s.Dir == Desc {
			return c(b, a)
		}
		return c(a, b)
	})
	return out
}

// RemoveByID drops the item whose id matches. It is the local removal used
// after approve/reject actions that do not refetch.
func RemoveByID[T any](items []T, id string, idOf func(T) string) []T {
	return slices.DeleteFunc(slices.Clone(items), func(it T) bool { return idOf(it) == id })
}
