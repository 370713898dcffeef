package domain

import "fmt"

// reversedPercent is the chance (out of 100) that a drawn card lands reversed.
const reversedPercent = 45

// SpreadCard is one card assigned to a spread position at draw time.
// Everything except IsOpen is fixed once drawn.
type SpreadCard struct {
	PositionID int    `json:"position_id"`
	CardName   string `json:"card_name"`
	Reversed   bool   `json:"reversed"`
	IsOpen     bool   `json:"is_open"`
}

// DrawCards assigns one card per schema position from a random permutation of
// deckNames. Positions receive distinct cards; each card is independently
// reversed with a fixed probability. The deck must hold at least
// schema.CardCount names, otherwise ErrDeckTooSmall.
func DrawCards(schema SpreadSchema, deckNames []string, rng RNG) ([]SpreadCard, error) {
	if len(deckNames) < schema.CardCount {
		return nil, fmt.Errorf("%w: deck %s has %d cards, schema %s needs %d",
			ErrDeckTooSmall, schema.DeckType, len(deckNames), schema.ID, schema.CardCount)
	}

	// Fisher-Yates over index space; only the first CardCount entries are used.
	indices := make([]int, len(deckNames))
	for i := range indices {
		indices[i] = i
	}
	for i := len(indices) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		indices[i], indices[j] = indices[j], indices[i]
	}

	cards := make([]SpreadCard, schema.CardCount)
	for i, pos := range schema.Positions {
		cards[i] = SpreadCard{
			PositionID: pos.ID,
			CardName:   deckNames[indices[i]],
			Reversed:   rng.Intn(100) < reversedPercent,
		}
	}
	return cards, nil
}
