// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records every document published from a note in a local
// SQLite database, so unchanged notes are not published twice and earlier
// documents can be found again.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/notes2docs/pkg/types"
)

const (
	dbFile = "notes2docs.db"

	defaultListLimit = 20
)

// Store manages the publication history database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens or creates the history database at dir/notes2docs.db and
// creates the schema if it does not exist.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS publications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_path TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			document_id TEXT NOT NULL,
			url TEXT NOT NULL,
			title TEXT NOT NULL,
			shared_with TEXT,
			requests INTEGER NOT NULL,
			published_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_source ON publications(source_path, content_hash)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores p and returns it with ID and PublishedAt filled in.
func (s *Store) Record(ctx context.Context, p types.Publication) (types.Publication, error) {
	if p.PublishedAt.IsZero() {
		p.PublishedAt = s.now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO publications (source_path, content_hash, document_id, url, title, shared_with, requests, published_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.SourcePath, p.ContentHash, p.DocumentID, p.URL, p.Title, p.SharedWith, p.Requests,
		p.PublishedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return types.Publication{}, fmt.Errorf("recording publication: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return types.Publication{}, fmt.Errorf("reading publication id: %w", err)
	}
	p.ID = id
	return p, nil
}

// Find returns the most recent publication of sourcePath with the given
// content hash. The second result is false when there is none.
func (s *Store) Find(ctx context.Context, sourcePath, hash string) (types.Publication, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source_path, content_hash, document_id, url, title, shared_with, requests, published_at
		 FROM publications WHERE source_path = ? AND content_hash = ?
		 ORDER BY id DESC LIMIT 1`,
		sourcePath, hash,
	)
	p, err := scanPublication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Publication{}, false, nil
	}
	if err != nil {
		return types.Publication{}, false, fmt.Errorf("finding publication: %w", err)
	}
	return p, true, nil
}

// ListOptions filters List.
type ListOptions struct {
	// SourcePath limits results to one note.
	SourcePath string
	// Limit caps the number of rows (default 20, negative for no limit).
	Limit int
}

// List returns publications newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Publication, error) {
	limit := opts.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	query := `SELECT id, source_path, content_hash, document_id, url, title, shared_with, requests, published_at
		FROM publications`
	var args []any
	if opts.SourcePath != "" {
		query += ` WHERE source_path = ?`
		args = append(args, opts.SourcePath)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing publications: %w", err)
	}
	defer rows.Close()

	out := []types.Publication{}
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning publication: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPublication(row scanner) (types.Publication, error) {
	var (
		p          types.Publication
		sharedWith sql.NullString
		published  string
	)
	if err := row.Scan(&p.ID, &p.SourcePath, &p.ContentHash, &p.DocumentID, &p.URL,
		&p.Title, &sharedWith, &p.Requests, &published); err != nil {
		return types.Publication{}, err
	}
	p.SharedWith = sharedWith.String
	t, err := time.Parse(time.RFC3339Nano, published)
	if err != nil {
		return types.Publication{}, fmt.Errorf("parsing published_at %q: %w", published, err)
	}
	p.PublishedAt = t
	return p, nil
}
