// Package filestore holds the File records of a build's data graph and the
// query capability resolvers use to look them up by path. Two stores are
// provided: an in-memory ordered store and a SQLite-backed index.
package filestore

import (
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TypeFile is the record type tag for File records.
const TypeFile = "File"

// File is a file node in the data graph, keyed by its absolute path. Paths
// use forward slashes regardless of platform.
type File struct {
	ID                string    `json:"id"`
	AbsolutePath      string    `json:"absolutePath"`
	RelativePath      string    `json:"relativePath"`
	RelativeDirectory string    `json:"relativeDirectory"`
	SourceRoot        string    `json:"sourceRoot"`
	Base              string    `json:"base"`
	Name              string    `json:"name"`
	Ext               string    `json:"ext"`
	Size              int64     `json:"size"`
	ModTime           time.Time `json:"modifiedTime"`
}

// NewFile builds a File for the file at rel (slash-separated, relative to
// root). The ID is derived from the absolute path, so re-indexing the same
// tree yields the same IDs.
func NewFile(root, rel string, info fs.FileInfo) File {
	abs := path.Join(root, rel)
	base := path.Base(rel)
	ext := path.Ext(base)
	dir := path.Dir(rel)
	if dir == "." {
		dir = ""
	}
	f := File{
		ID:                FileID(abs),
		AbsolutePath:      abs,
		RelativePath:      rel,
		RelativeDirectory: dir,
		SourceRoot:        root,
		Base:              base,
		Name:              strings.TrimSuffix(base, ext),
		Ext:               ext,
	}
	if info != nil {
		f.Size = info.Size()
		f.ModTime = info.ModTime().UTC()
	}
	return f
}

// FileID returns the stable node ID for an absolute path.
func FileID(absPath string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+absPath)).String()
}
