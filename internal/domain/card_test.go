package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRNG always returns val % n.
type fixedRNG struct{ val int }

func (r fixedRNG) Intn(n int) int { return r.val % n }

// seqRNG is a tiny deterministic LCG for tests that want varied draws.
type seqRNG struct{ state uint64 }

func (r *seqRNG) Intn(n int) int {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return int((r.state >> 33) % uint64(n))
}

func threeCardSchema() SpreadSchema {
	return SpreadSchema{
		ID:          "three_card",
		Title:       "Past, Present, Future",
		CardCount:   3,
		DeckType:    "rider_waite",
		OpeningRule: OpenInOrder,
		Positions: []Position{
			{ID: 1, X: 0.2, Y: 0.5, Label: "Past"},
			{ID: 2, X: 0.5, Y: 0.5, Label: "Present"},
			{ID: 3, X: 0.8, Y: 0.5, Label: "Future"},
		},
		OpenOrder: []int{1, 2, 3},
	}
}

func singleCardSchema() SpreadSchema {
	return SpreadSchema{
		ID:          "card_of_day",
		Title:       "Card of the Day",
		CardCount:   1,
		DeckType:    "rider_waite",
		OpeningRule: OpenAnyOrder,
		Positions:   []Position{{ID: 1, X: 0.5, Y: 0.5, Label: "Your card"}},
	}
}

func TestDrawCards_OnePerPosition(t *testing.T) {
	schema := threeCardSchema()
	cards, err := DrawCards(schema, FullDeckNames(), &seqRNG{state: 7})
	require.NoError(t, err)
	require.Len(t, cards, 3)

	positions := map[int]bool{}
	names := map[string]bool{}
	for _, c := range cards {
		positions[c.PositionID] = true
		names[c.CardName] = true
		assert.False(t, c.IsOpen, "cards start closed")
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, positions)
	assert.Len(t, names, 3, "drawn card names must be distinct")
}

func TestDrawCards_DistinctAcrossFullDeck(t *testing.T) {
	schema := threeCardSchema()
	schema.CardCount = 10
	schema.Positions = nil
	schema.OpenOrder = nil
	for i := 1; i <= 10; i++ {
		schema.Positions = append(schema.Positions, Position{ID: i})
		schema.OpenOrder = append(schema.OpenOrder, i)
	}

	cards, err := DrawCards(schema, FullDeckNames(), &seqRNG{state: 42})
	require.NoError(t, err)

	names := map[string]bool{}
	for _, c := range cards {
		names[c.CardName] = true
	}
	assert.Len(t, names, 10)
}

func TestDrawCards_DeckTooSmall(t *testing.T) {
	schema := threeCardSchema()
	_, err := DrawCards(schema, []string{"The Fool", "The Magician"}, fixedRNG{})
	require.ErrorIs(t, err, ErrDeckTooSmall)
}

func TestDrawCards_ReversedProbability(t *testing.T) {
	schema := singleCardSchema()

	// Intn(100) == 0 is below the reversed threshold.
	cards, err := DrawCards(schema, FullDeckNames(), fixedRNG{val: 0})
	require.NoError(t, err)
	assert.True(t, cards[0].Reversed)

	// Intn(100) == 50 is above it.
	cards, err = DrawCards(schema, FullDeckNames(), fixedRNG{val: 50})
	require.NoError(t, err)
	assert.False(t, cards[0].Reversed)
}

func TestDrawCards_DoesNotMutateDeck(t *testing.T) {
	deck := FullDeckNames()
	orig := make([]string, len(deck))
	copy(orig, deck)

	_, err := DrawCards(threeCardSchema(), deck, &seqRNG{state: 3})
	require.NoError(t, err)
	assert.Equal(t, orig, deck)
}
