package decks

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/randomtoy/spreads-go/internal/domain"
	"github.com/randomtoy/spreads-go/internal/ports"
)

//go:embed data/*.json
var deckFS embed.FS

// registry maps deck types to their JSON filenames inside data/.
var registry = map[string]string{
	"rider_waite":  "data/rider_waite.json",
	"major_arcana": "data/major_arcana.json",
}

// EmbeddedStore implements ports.DeckSource over embedded JSON card lists.
// Each ShuffledDeck call hands out a fresh permutation; the embedded data is
// loaded once and never mutated.
type EmbeddedStore struct {
	rng domain.RNG

	once  sync.Once
	decks map[string][]string
	err   error
}

var _ ports.DeckSource = (*EmbeddedStore)(nil)

func NewEmbeddedStore(rng domain.RNG) *EmbeddedStore {
	return &EmbeddedStore{rng: rng}
}

func (s *EmbeddedStore) init() {
	s.decks = make(map[string][]string, len(registry))
	for deckType, filename := range registry {
		raw, err := deckFS.ReadFile(filename)
		if err != nil {
			s.err = fmt.Errorf("read embedded deck %s: %w", deckType, err)
			return
		}
		var names []string
		if err := json.Unmarshal(raw, &names); err != nil {
			s.err = fmt.Errorf("parse embedded deck %s: %w", deckType, err)
			return
		}
		s.decks[deckType] = names
	}
}

// ShuffledDeck returns the deck's card names in Fisher-Yates order.
func (s *EmbeddedStore) ShuffledDeck(_ context.Context, deckType string) ([]string, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return nil, s.err
	}
	deck, ok := s.decks[deckType]
	if !ok {
		return nil, fmt.Errorf("deck %s: %w", deckType, domain.ErrUnknownDeck)
	}
	names := make([]string, len(deck))
	copy(names, deck)
	for i := len(names) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		names[i], names[j] = names[j], names[i]
	}
	return names, nil
}
