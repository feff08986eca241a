// Package dirspec turns the user-facing dirs option into field extension
// entries. The option arrives in one of three shapes (a single path, a list
// of paths, or a table of extension name to path) and is decoded once at the
// configuration boundary into a Spec.
package dirspec

import (
	"fmt"
	"sort"
)

// Spec is a decoded dirs option. It is one of Single, List, Mapping or
// Unrecognized.
type Spec interface {
	isSpec()
}

// Single is a dirs option holding one directory path.
type Single struct {
	Path string
}

// List is a dirs option holding an ordered list of directory paths.
type List struct {
	Paths []string
}

// Mapping is a dirs option mapping explicit extension names to directories.
type Mapping struct {
	Dirs map[string]string
}

// Unrecognized is a dirs option of any other shape. It normalizes to no
// entries. Kind records the Go type that was seen, for diagnostics.
type Unrecognized struct {
	Kind string
}

func (Single) isSpec()       {}
func (List) isSpec()         {}
func (Mapping) isSpec()      {}
func (Unrecognized) isSpec() {}

// Decode converts a raw configuration value (as produced by TOML, YAML or
// viper decoding) into a Spec. Non-string list elements and non-string table
// values are dropped. An absent or empty value is a ConfigError wrapping
// ErrNoDirs.
func Decode(raw any) (Spec, error) {
	switch v := raw.(type) {
	case nil:
		return nil, &ConfigError{Err: ErrNoDirs}
	case string:
		if v == "" {
			return nil, &ConfigError{Err: ErrNoDirs}
		}
		return Single{Path: v}, nil
	case bool:
		if !v {
			return nil, &ConfigError{Err: ErrNoDirs}
		}
		return Unrecognized{Kind: "bool"}, nil
	case []string:
		paths := make([]string, len(v))
		copy(paths, v)
		return List{Paths: paths}, nil
	case []any:
		paths := make([]string, 0, len(v))
		for _, elem := range v {
			if s, ok := elem.(string); ok {
				paths = append(paths, s)
			}
		}
		return List{Paths: paths}, nil
	case map[string]string:
		dirs := make(map[string]string, len(v))
		for name, dir := range v {
			dirs[name] = dir
		}
		return Mapping{Dirs: dirs}, nil
	case map[string]any:
		dirs := make(map[string]string, len(v))
		for name, elem := range v {
			if dir, ok := elem.(string); ok {
				dirs[name] = dir
			}
		}
		return Mapping{Dirs: dirs}, nil
	default:
		return Unrecognized{Kind: fmt.Sprintf("%T", raw)}, nil
	}
}

// sortedNames returns the keys of a Mapping in ascending order.
func (m Mapping) sortedNames() []string {
	names := make([]string, 0, len(m.Dirs))
	for name := range m.Dirs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
