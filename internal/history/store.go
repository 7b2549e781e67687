// Package history is the extraction audit store: one row per processed
// document, holding the outcome summary and the full result JSON, backed by
// embedded sqlite.
package history

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/creditlens/bureau-extract/internal/report"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS extractions (
	id          TEXT PRIMARY KEY,
	doc_name    TEXT NOT NULL,
	text_sha256 TEXT NOT NULL,
	score       INTEGER,
	loan_count  INTEGER NOT NULL DEFAULT 0,
	enq_count   INTEGER NOT NULL DEFAULT 0,
	dpd         TEXT NOT NULL DEFAULT '',
	error_code  TEXT NOT NULL DEFAULT '',
	result_json TEXT,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extractions_sha ON extractions(text_sha256);
`

type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Entry is one audit row.
type Entry struct {
	ID        string
	DocName   string
	TextSHA   string
	Score     int
	LoanCount int
	EnqCount  int
	DPD       string
	ErrorCode string
	CreatedAt time.Time
}

func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// TextSHA is the dedup key for a document's text content.
func TextSHA(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// RecordSuccess stores a completed extraction.
func (s *Store) RecordSuccess(ctx context.Context, id, docName, textSHA string, result *report.ExtractionResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO extractions (id, doc_name, text_sha256, score, loan_count, enq_count, dpd, error_code, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, '', ?, ?)`,
		id, docName, textSHA, result.ScoreValue(), len(result.Loans), result.EnquiryCount,
		result.DPD, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert extraction: %w", err)
	}
	s.logger.Debug("history.recorded", "id", id, "doc", docName)
	return nil
}

// RecordFailure stores a document-level failure with its error code.
func (s *Store) RecordFailure(ctx context.Context, id, docName, textSHA, errorCode string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO extractions (id, doc_name, text_sha256, score, loan_count, enq_count, dpd, error_code, result_json, created_at)
		VALUES (?, ?, ?, NULL, 0, 0, '', ?, NULL, ?)`,
		id, docName, textSHA, errorCode, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert failure: %w", err)
	}
	return nil
}

// SeenBefore reports whether a document with the same text content was
// already processed successfully.
func (s *Store) SeenBefore(ctx context.Context, textSHA string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM extractions WHERE text_sha256 = ? AND error_code = ''`, textSHA).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query history: %w", err)
	}
	return n > 0, nil
}

// Recent returns the latest entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, doc_name, text_sha256, COALESCE(score, 0), loan_count, enq_count, dpd, error_code, created_at
		FROM extractions ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.DocName, &e.TextSHA, &e.Score, &e.LoanCount, &e.EnqCount, &e.DPD, &e.ErrorCode, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
