// Package schema is a minimal host-side field extension registry. It stores
// the extensions a plugin registers and dispatches field resolution to them
// by name.
package schema

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/papapumpkin/filelink/internal/plugin"
	"github.com/papapumpkin/filelink/internal/resolve"
)

// Sentinel errors for registry operations.
var (
	// ErrDuplicateExtension indicates an extension name is already registered.
	ErrDuplicateExtension = errors.New("field extension already registered")
	// ErrUnknownExtension indicates a lookup for an unregistered name.
	ErrUnknownExtension = errors.New("unknown field extension")
	// ErrUnknownArg indicates a field passed an argument the extension does not declare.
	ErrUnknownArg = errors.New("unknown field extension argument")
	// ErrInvalidExtension indicates an extension without a name or resolver.
	ErrInvalidExtension = errors.New("invalid field extension")
)

// Registry implements plugin.Host. It is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	exts map[string]plugin.Extension
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{exts: make(map[string]plugin.Extension)}
}

// CreateFieldExtension registers ext. Names must be unique.
func (r *Registry) CreateFieldExtension(ext plugin.Extension) error {
	if ext.Name == "" || ext.Resolve == nil {
		return fmt.Errorf("schema: %w: %q", ErrInvalidExtension, ext.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exts[ext.Name]; ok {
		return fmt.Errorf("schema: %w: %s", ErrDuplicateExtension, ext.Name)
	}
	r.exts[ext.Name] = ext
	return nil
}

// Lookup returns the extension registered under name.
func (r *Registry) Lookup(name string) (plugin.Extension, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ext, ok := r.exts[name]
	return ext, ok
}

// Extensions returns every registered extension sorted by name.
func (r *Registry) Extensions() []plugin.Extension {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]plugin.Extension, 0, len(r.exts))
	for _, ext := range r.exts {
		out = append(out, ext)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Resolve runs the named extension on field of src. Arguments not supplied
// take their declared defaults; undeclared arguments are rejected.
func (r *Registry) Resolve(ctx context.Context, name string, src map[string]any, field string, args map[string]string) (resolve.Result, error) {
	ext, ok := r.Lookup(name)
	if !ok {
		return resolve.Result{}, fmt.Errorf("schema: %w: %s", ErrUnknownExtension, name)
	}

	full := make(map[string]string, len(ext.Args))
	for _, a := range ext.Args {
		full[a.Name] = a.Default
	}
	for k, v := range args {
		if _, declared := full[k]; !declared {
			return resolve.Result{}, fmt.Errorf("schema: %w: %s(%s:)", ErrUnknownArg, name, k)
		}
		full[k] = v
	}
	return ext.Resolve(ctx, src, field, full)
}
