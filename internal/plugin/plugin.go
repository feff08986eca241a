// Package plugin registers the file-link field extensions with a host
// schema. Setup runs once per build: it normalizes the dirs option, creates
// one bound extension per entry, and always registers the generic
// fileByAbsolutePath extension.
package plugin

import (
	"context"
	"fmt"

	"github.com/papapumpkin/filelink/internal/dirspec"
	"github.com/papapumpkin/filelink/internal/filestore"
	"github.com/papapumpkin/filelink/internal/resolve"
)

// Name is the plugin name used as a prefix in log lines.
const Name = "filelink"

// GenericExtension is the name of the always-registered extension that takes
// its base directory from a path argument.
const GenericExtension = "fileByAbsolutePath"

// ResolveFunc resolves field of src using the per-use arguments the schema
// attached to the field.
type ResolveFunc func(ctx context.Context, src map[string]any, field string, args map[string]string) (resolve.Result, error)

// Arg declares a field extension argument.
type Arg struct {
	Name    string
	Type    string
	Default string
}

// Extension is a named field extension offered to the host schema.
type Extension struct {
	Name    string
	Dir     string
	Args    []Arg
	Resolve ResolveFunc
}

// Host is the schema registration capability the plugin consumes.
type Host interface {
	CreateFieldExtension(ext Extension) error
}

// Options are the plugin options plus the build context Setup needs.
type Options struct {
	// Dirs is the raw dirs option: a string, a list of strings, or a table
	// of extension name to directory.
	Dirs any
	// Verbose enables resolution diagnostics outside production.
	Verbose bool
	// Production suppresses informational and verbose output.
	Production bool
	// RootDir is the build root directory.
	RootDir string
	// Store answers File lookups for every registered extension.
	Store filestore.Querier
	// Reporter receives setup and resolution diagnostics.
	Reporter resolve.Reporter
}

// Skipped records an extension that was not registered and why.
type Skipped struct {
	Name string
	Dir  string
	Err  error
}

// Report summarizes a Setup run.
type Report struct {
	Registered []Extension
	Skipped    []Skipped
}

// Setup registers field extensions with host. Configuration errors never
// abort the build: each one is reported with Reporter.Warn and recorded in
// Report.Skipped, and the remaining extensions are still registered. A dirs
// option that fails to normalize skips every bound extension but not the
// generic one.
func Setup(host Host, opts Options) Report {
	var rep Report
	verbose := opts.Verbose && !opts.Production

	entries, err := entriesFor(opts.Dirs)
	if err != nil {
		rep.skip(opts.Reporter, "", "", err)
	}

	for _, entry := range entries {
		r, err := resolve.New(resolve.Options{
			RootDir:  opts.RootDir,
			Dir:      entry.Dir,
			Store:    opts.Store,
			Reporter: opts.Reporter,
			Verbose:  verbose,
		})
		if err != nil {
			rep.skip(opts.Reporter, entry.Name, entry.Dir, err)
			continue
		}

		ext := Extension{Name: entry.Name, Dir: entry.Dir, Resolve: bind(r)}
		if err := host.CreateFieldExtension(ext); err != nil {
			rep.skip(opts.Reporter, entry.Name, entry.Dir, err)
			continue
		}
		rep.Registered = append(rep.Registered, ext)

		if !opts.Production && opts.Reporter != nil {
			opts.Reporter.Info(fmt.Sprintf("%s: Field extension created! Use @%s for %s", Name, entry.Name, entry.Dir))
		}
	}

	generic, err := resolve.New(resolve.Options{
		RootDir:  opts.RootDir,
		Store:    opts.Store,
		Reporter: opts.Reporter,
		Verbose:  verbose,
	})
	if err != nil {
		rep.skip(opts.Reporter, GenericExtension, "", err)
		return rep
	}
	ext := Extension{
		Name:    GenericExtension,
		Args:    []Arg{{Name: "path", Type: "String!", Default: ""}},
		Resolve: bind(generic),
	}
	if err := host.CreateFieldExtension(ext); err != nil {
		rep.skip(opts.Reporter, GenericExtension, "", err)
		return rep
	}
	rep.Registered = append(rep.Registered, ext)
	return rep
}

// entriesFor decodes and normalizes the raw dirs option.
func entriesFor(raw any) ([]dirspec.Entry, error) {
	spec, err := dirspec.Decode(raw)
	if err != nil {
		return nil, err
	}
	return dirspec.Normalize(spec)
}

// bind adapts a Resolver to the schema's ResolveFunc shape.
func bind(r *resolve.Resolver) ResolveFunc {
	return func(ctx context.Context, src map[string]any, field string, args map[string]string) (resolve.Result, error) {
		return r.Resolve(ctx, src, field, resolve.Args{Path: args["path"]})
	}
}

func (rep *Report) skip(log resolve.Reporter, name, dir string, err error) {
	rep.Skipped = append(rep.Skipped, Skipped{Name: name, Dir: dir, Err: err})
	if log != nil {
		log.Warn(err.Error())
	}
}
