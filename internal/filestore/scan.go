package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrBadPattern indicates a source glob that doublestar cannot parse.
var ErrBadPattern = errors.New("invalid source pattern")

// Scan walks root and returns a File for every regular file matching any of
// patterns (doublestar globs relative to root, e.g. "src/**/*.png"). Files
// matched by more than one pattern are returned once, in first-match order.
func Scan(ctx context.Context, root string, patterns []string) ([]File, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("filestore: resolve root %s: %w", root, err)
	}
	slashRoot := filepath.ToSlash(absRoot)
	fsys := os.DirFS(absRoot)

	seen := make(map[string]bool)
	var files []File
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("filestore: %w: %q", ErrBadPattern, pattern)
		}
		err := doublestar.GlobWalk(fsys, pattern, func(rel string, d fs.DirEntry) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if seen[rel] || !d.Type().IsRegular() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return fmt.Errorf("stat %s: %w", rel, err)
			}
			seen[rel] = true
			files = append(files, NewFile(slashRoot, rel, info))
			return nil
		}, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("filestore: scan %q: %w", pattern, err)
		}
	}
	return files, nil
}

// Index scans root and stores every matched file in s. It returns the number
// of files stored.
func Index(ctx context.Context, s Store, root string, patterns []string) (int, error) {
	files, err := Scan(ctx, root, patterns)
	if err != nil {
		return 0, err
	}
	if err := s.Put(ctx, files...); err != nil {
		return 0, err
	}
	return len(files), nil
}
