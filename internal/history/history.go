// Package history keeps a local SQLite record of completed benchmark runs so
// score movement between engine versions can be tracked over time.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/scoring"
)

// Run is one stored benchmark result.
type Run struct {
	ID           int64     `json:"id"`
	Document     string    `json:"document"`
	OverallScore float64   `json:"overall_score"`
	StrictScore  float64   `json:"overall_score_strict"`
	DriftScore   float64   `json:"overall_score_drift"`
	MinScore     float64   `json:"min_score"`
	PageCount    int       `json:"page_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store wraps the run-history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	var tableName string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='runs'",
	).Scan(&tableName)

	if err == sql.ErrNoRows {
		return s.initSchema()
	}
	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	return nil
}

func (s *Store) initSchema() error {
	const schema = `
CREATE TABLE runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	document TEXT NOT NULL,
	overall_score REAL NOT NULL,
	overall_score_strict REAL NOT NULL,
	overall_score_drift REAL NOT NULL,
	min_score REAL NOT NULL,
	page_count INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX idx_runs_document ON runs(document, created_at);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Record stores the summary of a completed document run. Satisfies
// benchmark.Recorder.
func (s *Store) Record(ctx context.Context, document string, score *scoring.DocumentScore) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO runs (document, overall_score, overall_score_strict, overall_score_drift, min_score, page_count)
VALUES (?, ?, ?, ?, ?, ?)`,
		document,
		score.OverallScore,
		score.OverallScoreStrict,
		score.OverallScoreDrift,
		score.MinScore,
		score.PageCount,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Recent returns the latest runs for a document, newest first. An empty
// document name returns runs across all documents.
func (s *Store) Recent(ctx context.Context, document string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
SELECT id, document, overall_score, overall_score_strict, overall_score_drift, min_score, page_count, created_at
FROM runs`
	args := []any{}
	if document != "" {
		query += " WHERE document = ?"
		args = append(args, document)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Document, &r.OverallScore, &r.StrictScore,
			&r.DriftScore, &r.MinScore, &r.PageCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
