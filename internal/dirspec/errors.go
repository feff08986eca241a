package dirspec

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for directory configuration problems.
var (
	// ErrNoDirs indicates the dirs option was absent or empty.
	ErrNoDirs = errors.New("no 'dirs' passed to plugin options")
	// ErrDuplicateName indicates two directories derive the same extension name.
	ErrDuplicateName = errors.New("extension name already exists")
	// ErrUnnamedDir indicates no extension name can be derived from a directory path.
	ErrUnnamedDir = errors.New("cannot derive extension name from directory")
	// ErrMissingDir indicates a base directory does not exist on disk.
	ErrMissingDir = errors.New("directory doesn't exist")
)

// ConfigError records a configuration problem together with the extension
// name and directory it concerns, when known. It wraps one of the sentinel
// errors above so callers can match with errors.Is.
type ConfigError struct {
	Name string
	Dir  string
	Err  error
}

// Error returns a human-readable message prefixed with the plugin name.
func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("filelink: ")
	b.WriteString(e.Err.Error())
	switch {
	case e.Name != "" && e.Dir != "":
		fmt.Fprintf(&b, ": %s (%s)", e.Name, e.Dir)
	case e.Name != "":
		fmt.Fprintf(&b, ": %s", e.Name)
	case e.Dir != "":
		fmt.Fprintf(&b, ": %s", e.Dir)
	}
	return b.String()
}

// Unwrap returns the underlying sentinel error for use with errors.Is/As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
