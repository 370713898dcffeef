package decks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomtoy/spreads-go/internal/adapters/decks"
	"github.com/randomtoy/spreads-go/internal/domain"
)

// lcgRNG is a tiny deterministic generator for shuffle tests.
type lcgRNG struct{ state uint64 }

func (r *lcgRNG) Intn(n int) int {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return int((r.state >> 33) % uint64(n))
}

func TestEmbeddedStore_ShuffledDeck(t *testing.T) {
	s := decks.NewEmbeddedStore(&lcgRNG{state: 1})

	names, err := s.ShuffledDeck(context.Background(), "rider_waite")
	require.NoError(t, err)
	require.Len(t, names, 78)

	seen := map[string]bool{}
	for _, n := range names {
		assert.False(t, seen[n], "duplicate card %s", n)
		seen[n] = true
		_, err := domain.CardCode(n)
		assert.NoError(t, err, "every embedded card must map to a code")
	}
}

func TestEmbeddedStore_MajorArcana(t *testing.T) {
	s := decks.NewEmbeddedStore(&lcgRNG{state: 9})

	names, err := s.ShuffledDeck(context.Background(), "major_arcana")
	require.NoError(t, err)
	assert.Len(t, names, 22)
}

func TestEmbeddedStore_IndependentShuffles(t *testing.T) {
	s := decks.NewEmbeddedStore(&lcgRNG{state: 5})

	first, err := s.ShuffledDeck(context.Background(), "rider_waite")
	require.NoError(t, err)
	second, err := s.ShuffledDeck(context.Background(), "rider_waite")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each call is a fresh permutation")
}

func TestEmbeddedStore_UnknownDeck(t *testing.T) {
	s := decks.NewEmbeddedStore(&lcgRNG{state: 2})

	_, err := s.ShuffledDeck(context.Background(), "thoth")
	require.ErrorIs(t, err, domain.ErrUnknownDeck)
}
