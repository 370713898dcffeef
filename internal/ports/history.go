package ports

import (
	"context"
	"time"
)

// ReadingRecord is one completed reading kept for the user's history.
type ReadingRecord struct {
	SessionID string
	ReadingID string
	SpreadID  string
	DeckID    string
	Question  string
	Summary   string
	CreatedAt time.Time
}

// HistoryStore persists completed readings.
type HistoryStore interface {
	SaveReading(ctx context.Context, rec ReadingRecord) error
	ListReadings(ctx context.Context, limit int) ([]ReadingRecord, error)
}
