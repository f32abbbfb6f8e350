// Package store keeps a local journal of extraction runs in SQLite so
// past runs can be listed without re-reading output files.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	model       TEXT NOT NULL,
	docs_dir    TEXT NOT NULL,
	documents   INTEGER NOT NULL,
	chunks      INTEGER NOT NULL,
	item_counts TEXT NOT NULL,
	output_path TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs (started_at DESC);
`

// RunRecord is one journal entry.
type RunRecord struct {
	ID         string
	StartedAt  time.Time
	Duration   time.Duration
	Model      string
	DocsDir    string
	Documents  int
	Chunks     int
	ItemCounts map[string]int
	OutputPath string
}

// Store is the run journal, backed by a single SQLite file.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the journal database at dbPath and applies
// the schema.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying journal schema: %w", err)
	}
	return &Store{db: db, path: dbPath}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Insert journals a completed run and returns its generated ID.
func (s *Store) Insert(ctx context.Context, rec RunRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	counts, err := json.Marshal(rec.ItemCounts)
	if err != nil {
		return "", fmt.Errorf("encoding item counts: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, duration_ms, model, docs_dir, documents, chunks, item_counts, output_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.StartedAt.UTC().Format(time.RFC3339),
		rec.Duration.Milliseconds(),
		rec.Model,
		rec.DocsDir,
		rec.Documents,
		rec.Chunks,
		string(counts),
		rec.OutputPath,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}
	return rec.ID, nil
}

// ListRecent returns up to limit runs, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, duration_ms, model, docs_dir, documents, chunks, item_counts, output_path
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var recs []RunRecord
	for rows.Next() {
		var rec RunRecord
		var startedAt, counts string
		var durationMS int64
		if err := rows.Scan(
			&rec.ID, &startedAt, &durationMS, &rec.Model, &rec.DocsDir,
			&rec.Documents, &rec.Chunks, &counts, &rec.OutputPath,
		); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		rec.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		if err := json.Unmarshal([]byte(counts), &rec.ItemCounts); err != nil {
			rec.ItemCounts = map[string]int{}
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
