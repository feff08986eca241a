package filestore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// schema contains the DDL executed on every open. IF NOT EXISTS keeps it
// idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS files (
    absolute_path      TEXT PRIMARY KEY,
    id                 TEXT NOT NULL,
    relative_path      TEXT NOT NULL,
    relative_directory TEXT NOT NULL DEFAULT '',
    source_root        TEXT NOT NULL,
    base               TEXT NOT NULL,
    name               TEXT NOT NULL,
    ext                TEXT NOT NULL DEFAULT '',
    size               INTEGER NOT NULL DEFAULT 0,
    mod_time           INTEGER NOT NULL DEFAULT 0,
    indexed_at         TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS files_relative_path ON files (relative_path);
`

const fileColumns = `absolute_path, id, relative_path, relative_directory, source_root, base, name, ext, size, mod_time`

// SQLiteStore implements Store on a local SQLite database in WAL mode.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and creates the
// schema if needed. dbPath may be ":memory:".
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("filestore: open database: %w", err)
	}

	// One connection: SQLite has a single writer, and an in-memory database
	// exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("filestore: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("filestore: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("filestore: create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Put upserts records in a single transaction.
func (s *SQLiteStore) Put(ctx context.Context, files ...File) error {
	if len(files) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("filestore: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	const q = `
		INSERT INTO files (` + fileColumns + `, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(absolute_path) DO UPDATE SET
			id                 = excluded.id,
			relative_path      = excluded.relative_path,
			relative_directory = excluded.relative_directory,
			source_root        = excluded.source_root,
			base               = excluded.base,
			name               = excluded.name,
			ext                = excluded.ext,
			size               = excluded.size,
			mod_time           = excluded.mod_time,
			indexed_at         = CURRENT_TIMESTAMP`

	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return fmt.Errorf("filestore: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, f := range files {
		var mod int64
		if !f.ModTime.IsZero() {
			mod = f.ModTime.UnixNano()
		}
		if _, err := stmt.ExecContext(ctx,
			f.AbsolutePath, f.ID, f.RelativePath, f.RelativeDirectory, f.SourceRoot,
			f.Base, f.Name, f.Ext, f.Size, mod,
		); err != nil {
			return fmt.Errorf("filestore: upsert %s: %w", f.AbsolutePath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("filestore: commit: %w", err)
	}
	return nil
}

// Len returns the number of indexed records.
func (s *SQLiteStore) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM files").Scan(&n); err != nil {
		return 0, fmt.Errorf("filestore: count files: %w", err)
	}
	return n, nil
}

// RunQuery returns the records matching q. Row order is whatever SQLite
// produces.
func (s *SQLiteStore) RunQuery(ctx context.Context, q Query) ([]File, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	col := "absolute_path"
	if q.Filter.Field == FieldRelativePath {
		col = "relative_path"
	}

	var (
		where string
		args  []any
	)
	if q.Filter.In == nil {
		where = col + " = ?"
		args = []any{q.Filter.Eq}
	} else {
		if len(q.Filter.In) == 0 {
			return nil, nil
		}
		where = col + " IN (" + strings.TrimSuffix(strings.Repeat("?, ", len(q.Filter.In)), ", ") + ")"
		for _, v := range q.Filter.In {
			args = append(args, v)
		}
	}

	stmt := "SELECT " + fileColumns + " FROM files WHERE " + where
	if q.First {
		stmt += " LIMIT 1"
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("filestore: query files: %w", err)
	}
	defer rows.Close()

	var out []File
	for rows.Next() {
		var (
			f   File
			mod int64
		)
		if err := rows.Scan(
			&f.AbsolutePath, &f.ID, &f.RelativePath, &f.RelativeDirectory, &f.SourceRoot,
			&f.Base, &f.Name, &f.Ext, &f.Size, &mod,
		); err != nil {
			return nil, fmt.Errorf("filestore: scan file: %w", err)
		}
		if mod != 0 {
			f.ModTime = time.Unix(0, mod).UTC()
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("filestore: iterate files: %w", err)
	}
	return out, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
