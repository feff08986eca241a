package filestore

import (
	"context"
	"errors"
	"fmt"
)

// Filterable File attributes.
const (
	FieldAbsolutePath = "absolutePath"
	FieldRelativePath = "relativePath"
)

// Sentinel errors returned by stores.
var (
	// ErrUnknownType indicates a query for a record type other than File.
	ErrUnknownType = errors.New("unknown record type")
	// ErrUnsupportedField indicates a filter on an attribute the store cannot match.
	ErrUnsupportedField = errors.New("unsupported filter field")
)

// Filter matches records whose Field equals Eq, or, when In is non-nil, is a
// member of In.
type Filter struct {
	Field string
	Eq    string
	In    []string
}

// Query selects records of Type matching Filter. When First is set the store
// returns at most one record.
type Query struct {
	Type   string
	Filter Filter
	First  bool
}

// Querier is the record query capability a resolver depends on. Matching
// records may be returned in any order.
type Querier interface {
	RunQuery(ctx context.Context, q Query) ([]File, error)
}

// Store is a Querier that can also be populated.
type Store interface {
	Querier
	Put(ctx context.Context, files ...File) error
	Len(ctx context.Context) (int, error)
	Close() error
}

// validate checks the query against what stores support.
func (q Query) validate() error {
	if q.Type != TypeFile {
		return fmt.Errorf("filestore: %w: %q", ErrUnknownType, q.Type)
	}
	switch q.Filter.Field {
	case FieldAbsolutePath, FieldRelativePath:
		return nil
	default:
		return fmt.Errorf("filestore: %w: %q", ErrUnsupportedField, q.Filter.Field)
	}
}

// matches reports whether f satisfies the filter.
func (flt Filter) matches(f File) bool {
	v := f.AbsolutePath
	if flt.Field == FieldRelativePath {
		v = f.RelativePath
	}
	if flt.In == nil {
		return v == flt.Eq
	}
	for _, want := range flt.In {
		if v == want {
			return true
		}
	}
	return false
}
