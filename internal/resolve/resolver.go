// Package resolve links path strings stored on content records to File
// records. A Resolver is either bound to a base directory at construction or
// generic, taking the base directory from a per-use path argument.
package resolve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/papapumpkin/filelink/internal/dirspec"
	"github.com/papapumpkin/filelink/internal/filestore"
)

// pluginName prefixes diagnostic lines.
const pluginName = "filelink"

// Reporter receives leveled diagnostic lines.
type Reporter interface {
	Info(msg string)
	Warn(msg string)
	Success(msg string)
}

// Args are the per-use arguments of a field extension.
type Args struct {
	// Path is the base directory, relative to the root dir, for generic
	// resolvers. Ignored when the Resolver has a bound directory.
	Path string
}

// Options configure a Resolver.
type Options struct {
	// RootDir is the build root every base directory is joined onto.
	RootDir string
	// Dir is the bound base directory. Empty makes the Resolver generic.
	Dir string
	// Store answers the File lookups.
	Store filestore.Querier
	// Reporter receives verbose diagnostics. May be nil when Verbose is off.
	Reporter Reporter
	// Verbose enables per-resolution diagnostic lines.
	Verbose bool
}

// Resolver translates the path string (or list of path strings) held in a
// record field into the matching File record(s). It holds no mutable state
// and is safe for concurrent use.
type Resolver struct {
	rootDir string
	dir     string
	store   filestore.Querier
	log     Reporter
	verbose bool
}

// New returns a Resolver. When opts.Dir is set, the joined base directory
// must exist; otherwise New returns a *dirspec.ConfigError wrapping
// dirspec.ErrMissingDir.
func New(opts Options) (*Resolver, error) {
	if opts.Store == nil {
		return nil, errors.New("resolve: nil store")
	}
	if opts.Dir != "" {
		if err := checkDir(opts.RootDir, opts.Dir); err != nil {
			return nil, err
		}
	}
	return &Resolver{
		rootDir: opts.RootDir,
		dir:     opts.Dir,
		store:   opts.Store,
		log:     opts.Reporter,
		verbose: opts.Verbose && opts.Reporter != nil,
	}, nil
}

// Dir returns the bound base directory, or "" for a generic Resolver.
func (r *Resolver) Dir() string {
	return r.dir
}

// Resolve reads src[field] and returns the linked File record(s).
//
// A missing or falsy field value, a value that is neither a string nor a
// list, or a generic Resolver called without args.Path all yield an empty
// Result and no query. A generic Resolver whose base directory does not
// exist returns a *dirspec.ConfigError. Store errors are returned wrapped.
func (r *Resolver) Resolve(ctx context.Context, src map[string]any, field string, args Args) (Result, error) {
	partials, isList, ok := readPaths(src[field])
	if !ok {
		return Result{}, nil
	}

	base := r.dir
	if base == "" {
		if args.Path == "" {
			return Result{}, nil
		}
		base = args.Path
		if err := checkDir(r.rootDir, base); err != nil {
			return Result{}, err
		}
	}
	baseDir := path.Join(r.rootDir, base)

	candidates := make([]string, len(partials))
	var lookup []string
	for i, p := range partials {
		if p == nil {
			continue
		}
		candidates[i] = path.Join(baseDir, *p)
		lookup = append(lookup, candidates[i])
	}

	if len(lookup) == 0 {
		if isList {
			return Result{List: true, Files: make([]*filestore.File, len(candidates))}, nil
		}
		return Result{}, nil
	}

	r.reportCandidates(lookup)

	q := filestore.Query{
		Type:   filestore.TypeFile,
		Filter: filestore.Filter{Field: filestore.FieldAbsolutePath, In: lookup},
	}
	if !isList {
		q.Filter = filestore.Filter{Field: filestore.FieldAbsolutePath, Eq: lookup[0]}
		q.First = true
	}
	found, err := r.store.RunQuery(ctx, q)
	if err != nil {
		return Result{}, fmt.Errorf("resolve %s: %w", field, err)
	}

	r.reportMatches(found)

	byPath := make(map[string]*filestore.File, len(found))
	for i := range found {
		f := &found[i]
		if _, dup := byPath[f.AbsolutePath]; !dup {
			byPath[f.AbsolutePath] = f
		}
	}

	if !isList {
		return Result{File: byPath[lookup[0]]}, nil
	}

	files := make([]*filestore.File, len(candidates))
	for i, c := range candidates {
		if c != "" {
			files[i] = byPath[c]
		}
	}
	return Result{List: true, Files: files}, nil
}

// readPaths interprets a raw field value. It returns one entry per path slot
// (nil for list elements that are not non-empty strings), whether the value
// was a list, and false when there is nothing to resolve.
func readPaths(raw any) ([]*string, bool, bool) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil, false, false
		}
		return []*string{&v}, false, true
	case []string:
		out := make([]*string, len(v))
		for i := range v {
			if v[i] != "" {
				out[i] = &v[i]
			}
		}
		return out, true, true
	case []any:
		out := make([]*string, len(v))
		for i, elem := range v {
			if s, ok := elem.(string); ok && s != "" {
				out[i] = &s
			}
		}
		return out, true, true
	default:
		return nil, false, false
	}
}

// checkDir verifies that rootDir/dir exists on disk.
func checkDir(rootDir, dir string) error {
	if _, err := os.Stat(path.Join(rootDir, dir)); err != nil {
		return &dirspec.ConfigError{Dir: dir, Err: dirspec.ErrMissingDir}
	}
	return nil
}

func (r *Resolver) reportCandidates(paths []string) {
	if !r.verbose {
		return
	}
	r.log.Info(fmt.Sprintf("[%s] querying for %d path(s):", pluginName, len(paths)))
	for _, p := range paths {
		r.log.Info(p)
	}
}

func (r *Resolver) reportMatches(files []filestore.File) {
	if !r.verbose {
		return
	}
	r.log.Info(fmt.Sprintf("[%s] found %d node(s).", pluginName, len(files)))
	for _, f := range files {
		if f.ID != "" {
			r.log.Success("node id: " + f.ID)
			continue
		}
		data, _ := json.Marshal(f)
		r.log.Warn("invalid node: " + string(data))
	}
}
