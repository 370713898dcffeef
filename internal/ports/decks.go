package ports

import "context"

// DeckSource supplies card names for a deck type, already permuted. Each call
// returns an independent shuffle; the source itself is never mutated by
// drawing.
type DeckSource interface {
	ShuffledDeck(ctx context.Context, deckType string) ([]string, error)
}
