package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/papapumpkin/filelink/internal/config"
	"github.com/papapumpkin/filelink/internal/filestore"
	"github.com/papapumpkin/filelink/internal/plugin"
	"github.com/papapumpkin/filelink/internal/schema"
	"github.com/papapumpkin/filelink/internal/ui"
)

// build is a configured build root with its File store and the extensions
// registered against it.
type build struct {
	cfg      config.Config
	rootDir  string
	store    filestore.Store
	registry *schema.Registry
	report   plugin.Report
}

// openBuild loads config, opens the store (indexing it when empty), and runs
// plugin setup.
func openBuild(ctx context.Context, printer *ui.Printer) (*build, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	rootDir, err := absRoot(cfg.RootDir)
	if err != nil {
		return nil, err
	}

	store, where, err := openStore(ctx, cfg, rootDir)
	if err != nil {
		return nil, err
	}
	n, err := store.Len(ctx)
	if err != nil {
		store.Close()
		return nil, err
	}
	if n == 0 {
		count, err := filestore.Index(ctx, store, rootDir, cfg.Sources)
		if err != nil {
			store.Close()
			return nil, err
		}
		if !cfg.Production() {
			printer.Indexed(count, cfg.Store.Driver, where)
		}
	}

	registry := schema.NewRegistry()
	report := plugin.Setup(registry, plugin.Options{
		Dirs:       cfg.Dirs,
		Verbose:    cfg.Verbose,
		Production: cfg.Production(),
		RootDir:    rootDir,
		Store:      store,
		Reporter:   printer,
	})

	return &build{
		cfg:      cfg,
		rootDir:  rootDir,
		store:    store,
		registry: registry,
		report:   report,
	}, nil
}

// Close releases the store.
func (b *build) Close() error {
	return b.store.Close()
}

// absRoot resolves the configured root dir to an absolute, slash-separated
// path that exists.
func absRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving root dir %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("root dir: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root dir %s is not a directory", abs)
	}
	return filepath.ToSlash(abs), nil
}

// openStore opens the configured store. It also returns a description of
// where the store lives, for status output.
func openStore(ctx context.Context, cfg config.Config, rootDir string) (filestore.Store, string, error) {
	if cfg.Store.Driver != config.DriverSQLite {
		return filestore.NewMemoryStore(), "(in memory)", nil
	}
	dbPath := cfg.Store.Path
	if dbPath != ":memory:" {
		if !filepath.IsAbs(dbPath) {
			dbPath = filepath.Join(filepath.FromSlash(rootDir), dbPath)
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, "", fmt.Errorf("creating index directory: %w", err)
		}
	}
	s, err := filestore.NewSQLiteStore(ctx, dbPath)
	if err != nil {
		return nil, "", err
	}
	return s, dbPath, nil
}
