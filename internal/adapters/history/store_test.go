package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomtoy/spreads-go/internal/adapters/history"
	"github.com/randomtoy/spreads-go/internal/ports"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	s, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func record(readingID string, at time.Time) ports.ReadingRecord {
	return ports.ReadingRecord{
		SessionID: "s-1",
		ReadingID: readingID,
		SpreadID:  "three_card",
		DeckID:    "rider_waite",
		Question:  "What lies ahead?",
		Summary:   "A quiet week.",
		CreatedAt: at,
	}
}

func TestStore_SaveAndList(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveReading(ctx, record("r-1", base)))
	require.NoError(t, s.SaveReading(ctx, record("r-2", base.Add(time.Minute))))

	recs, err := s.ListReadings(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "r-2", recs[0].ReadingID, "newest first")
	assert.Equal(t, "r-1", recs[1].ReadingID)
	assert.Equal(t, "What lies ahead?", recs[0].Question)
}

func TestStore_DuplicateReadingIDIsNoOp(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveReading(ctx, record("r-1", at)))
	require.NoError(t, s.SaveReading(ctx, record("r-1", at.Add(time.Hour))))

	recs, err := s.ListReadings(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestStore_ListLimit(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := range 5 {
		require.NoError(t, s.SaveReading(ctx, record(
			string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))))
	}

	recs, err := s.ListReadings(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}
