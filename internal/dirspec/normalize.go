package dirspec

import (
	"path"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Entry binds a field extension name to the base directory its resolver
// joins relative paths against. Entries are created once at setup and never
// mutated.
type Entry struct {
	Name string
	Dir  string
}

// Normalize expands a Spec into an ordered list of entries.
//
// Single and List entries get a derived name (see DeriveName); a List whose
// derived names collide fails before producing any output. Mapping keys are
// used verbatim and emitted in ascending key order. Unrecognized specs yield
// no entries. A nil Spec is a ConfigError wrapping ErrNoDirs.
func Normalize(spec Spec) ([]Entry, error) {
	switch s := spec.(type) {
	case nil:
		return nil, &ConfigError{Err: ErrNoDirs}
	case Single:
		name, err := DeriveName(s.Path)
		if err != nil {
			return nil, err
		}
		return []Entry{{Name: name, Dir: s.Path}}, nil
	case List:
		entries := make([]Entry, 0, len(s.Paths))
		seen := make(map[string]string, len(s.Paths))
		for _, dir := range s.Paths {
			name, err := DeriveName(dir)
			if err != nil {
				return nil, err
			}
			if prev, dup := seen[name]; dup {
				return nil, &ConfigError{Name: name, Dir: prev + ", " + dir, Err: ErrDuplicateName}
			}
			seen[name] = dir
			entries = append(entries, Entry{Name: name, Dir: dir})
		}
		return entries, nil
	case Mapping:
		entries := make([]Entry, 0, len(s.Dirs))
		for _, name := range s.sortedNames() {
			entries = append(entries, Entry{Name: name, Dir: s.Dirs[name]})
		}
		return entries, nil
	default:
		return nil, nil
	}
}

// DeriveName builds the extension name for a directory: the last path
// segment with its suffix stripped, first letter upper-cased, wrapped as
// fileBy<Name>Path. "src/images" becomes "fileByImagesPath".
func DeriveName(dir string) (string, error) {
	stem := lastSegment(dir)
	if stem == "" || stem == "." || stem == ".." || stem == "/" {
		return "", &ConfigError{Dir: dir, Err: ErrUnnamedDir}
	}
	r, size := utf8.DecodeRuneInString(stem)
	return "fileBy" + string(unicode.ToUpper(r)) + stem[size:] + "Path", nil
}

// lastSegment returns the final element of dir without its extension. A
// dot-file such as ".assets" keeps its full name.
func lastSegment(dir string) string {
	if dir == "" {
		return ""
	}
	base := path.Base(filepath.ToSlash(dir))
	ext := path.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}
