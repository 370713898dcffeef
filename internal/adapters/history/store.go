package history

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/randomtoy/spreads-go/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS readings (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL,
	reading_id  TEXT NOT NULL UNIQUE,
	spread_id   TEXT NOT NULL,
	deck_id     TEXT NOT NULL,
	question    TEXT NOT NULL,
	summary     TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_readings_created_at ON readings (created_at DESC);
`

// Store persists completed readings in sqlite.
type Store struct {
	db *sql.DB
}

var _ ports.HistoryStore = (*Store)(nil)

// Open opens (and if needed bootstraps) the history database at path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// SaveReading inserts one completed reading. A repeated reading id is a
// conflict-free no-op so retried poll attempts never duplicate history.
func (s *Store) SaveReading(ctx context.Context, rec ports.ReadingRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO readings (session_id, reading_id, spread_id, deck_id, question, summary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (reading_id) DO NOTHING`,
		rec.SessionID, rec.ReadingID, rec.SpreadID, rec.DeckID, rec.Question, rec.Summary, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save reading: %w", err)
	}
	return nil
}

// ListReadings returns the most recent readings, newest first.
func (s *Store) ListReadings(ctx context.Context, limit int) ([]ports.ReadingRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, reading_id, spread_id, deck_id, question, summary, created_at
		FROM readings ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	defer rows.Close()

	var out []ports.ReadingRecord
	for rows.Next() {
		var rec ports.ReadingRecord
		if err := rows.Scan(&rec.SessionID, &rec.ReadingID, &rec.SpreadID, &rec.DeckID,
			&rec.Question, &rec.Summary, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	return out, nil
}
