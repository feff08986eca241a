package filestore

import (
	"context"
	"sync"

	"github.com/tidwall/btree"
)

// MemoryStore keeps File records in a B-tree ordered by absolute path. It is
// safe for concurrent use. The zero value is ready to use.
type MemoryStore struct {
	mu    sync.RWMutex
	files btree.Map[string, File]
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Put inserts or replaces records, keyed by AbsolutePath.
func (s *MemoryStore) Put(ctx context.Context, files ...File) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range files {
		s.files.Set(f.AbsolutePath, f)
	}
	return nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.files.Len(), nil
}

// RunQuery returns the records matching q in ascending absolute-path order.
func (s *MemoryStore) RunQuery(ctx context.Context, q Query) ([]File, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if q.Filter.Field == FieldAbsolutePath {
		return s.byAbsolutePath(q), nil
	}

	var out []File
	s.files.Scan(func(_ string, f File) bool {
		if q.Filter.matches(f) {
			out = append(out, f)
			return !q.First
		}
		return true
	})
	return out, nil
}

// Close is a no-op; it satisfies Store.
func (s *MemoryStore) Close() error {
	return nil
}

// byAbsolutePath answers key lookups directly from the tree. Membership
// queries walk only the key range spanned by the candidates.
func (s *MemoryStore) byAbsolutePath(q Query) []File {
	if q.Filter.In == nil {
		f, ok := s.files.Get(q.Filter.Eq)
		if !ok {
			return nil
		}
		return []File{f}
	}
	if len(q.Filter.In) == 0 {
		return nil
	}

	want := make(map[string]bool, len(q.Filter.In))
	lo, hi := q.Filter.In[0], q.Filter.In[0]
	for _, p := range q.Filter.In {
		want[p] = true
		lo = min(lo, p)
		hi = max(hi, p)
	}

	var out []File
	s.files.Ascend(lo, func(key string, f File) bool {
		if key > hi {
			return false
		}
		if want[key] {
			out = append(out, f)
			if q.First {
				return false
			}
		}
		return true
	})
	return out
}
