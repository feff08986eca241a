package resolve

import "github.com/papapumpkin/filelink/internal/filestore"

// Result is the outcome of resolving one field. For a single path string,
// File holds the match (nil when none). For a list of paths, List is set and
// Files holds one slot per input path in input order, nil where the path had
// no match.
type Result struct {
	File  *filestore.File
	Files []*filestore.File
	List  bool
}

// Empty reports whether the result links to no record at all.
func (r Result) Empty() bool {
	if r.File != nil {
		return false
	}
	for _, f := range r.Files {
		if f != nil {
			return false
		}
	}
	return true
}

// Matched returns the non-nil records in order.
func (r Result) Matched() []*filestore.File {
	if !r.List {
		if r.File == nil {
			return nil
		}
		return []*filestore.File{r.File}
	}
	out := make([]*filestore.File, 0, len(r.Files))
	for _, f := range r.Files {
		if f != nil {
			out = append(out, f)
		}
	}
	return out
}
