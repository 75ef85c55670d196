package shared

import (
	"context"

	"github.com/google/uuid"
)

// Filter is a list query. Filters entries are equality predicates ANDed
// together; Search is a free-text match whose columns each repository picks.
// A zero PageSize means unpaged.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]any
}

// DefaultFilter is the first page of 20, newest first
func DefaultFilter() Filter {
	return Filter{Page: 1, PageSize: 20, OrderDir: "desc", Filters: map[string]any{}}
}

// With adds an equality predicate. Empty strings and nil values are
// dropped; pointers are dereferenced.
func (f Filter) With(key string, value any) Filter {
	switch v := value.(type) {
	case nil:
		return f
	case string:
		if v == "" {
			return f
		}
	case *bool:
		if v == nil {
			return f
		}
		value = *v
	case *uuid.UUID:
		if v == nil {
			return f
		}
		value = *v
	}
	filters := make(map[string]any, len(f.Filters)+1)
	for k, v := range f.Filters {
		filters[k] = v
	}
	filters[key] = value
	f.Filters = filters
	return f
}

// Unpaged drops pagination, for exports and sweeps
func (f Filter) Unpaged() Filter {
	f.Page, f.PageSize = 0, 0
	return f
}

// OptionalID parses a query parameter the binding layer already checked.
// Empty or malformed input gives nil.
func OptionalID(s string) *uuid.UUID {
	if id, err := uuid.Parse(s); err == nil {
		return &id
	}
	return nil
}

// NumberGenerator hands out the next formatted document number for a series
type NumberGenerator interface {
	Next(ctx context.Context, seriesCode string) (string, error)
}
