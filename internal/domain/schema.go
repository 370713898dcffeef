package domain

import "fmt"

// OpeningRule governs the order in which spread positions may be revealed.
type OpeningRule string

const (
	OpenInOrder  OpeningRule = "in_order"
	OpenAnyOrder OpeningRule = "any_order"
)

// Position is one card slot in a spread layout. X and Y are normalized
// coordinates in [0,1] used by the presentation layer.
type Position struct {
	ID    int     `yaml:"id" json:"id"`
	X     float64 `yaml:"x" json:"x"`
	Y     float64 `yaml:"y" json:"y"`
	Label string  `yaml:"label" json:"label"`
}

// SpreadSchema is the immutable description of a spread layout. Schemas come
// from the layout registry and are never mutated by a session.
type SpreadSchema struct {
	ID          string      `yaml:"id" json:"id"`
	Title       string      `yaml:"title" json:"title"`
	CardCount   int         `yaml:"card_count" json:"card_count"`
	DeckType    string      `yaml:"deck_type" json:"deck_type"`
	OpeningRule OpeningRule `yaml:"opening_rule" json:"opening_rule"`
	Positions   []Position  `yaml:"positions" json:"positions"`
	OpenOrder   []int       `yaml:"open_order" json:"open_order"`
}

// Validate checks the structural invariants of a schema: positive card count,
// position ids covering 1..CardCount exactly once, and OpenOrder being a
// permutation of the position ids when the rule is in_order.
func (s SpreadSchema) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("schema: missing id")
	}
	if s.CardCount < 1 {
		return fmt.Errorf("schema %s: card count %d must be positive", s.ID, s.CardCount)
	}
	if len(s.Positions) != s.CardCount {
		return fmt.Errorf("schema %s: %d positions for card count %d", s.ID, len(s.Positions), s.CardCount)
	}
	seen := make(map[int]bool, s.CardCount)
	for _, p := range s.Positions {
		if p.ID < 1 || p.ID > s.CardCount {
			return fmt.Errorf("schema %s: position id %d out of range 1..%d", s.ID, p.ID, s.CardCount)
		}
		if seen[p.ID] {
			return fmt.Errorf("schema %s: duplicate position id %d", s.ID, p.ID)
		}
		seen[p.ID] = true
	}
	switch s.OpeningRule {
	case OpenAnyOrder:
		return nil
	case OpenInOrder:
	default:
		return fmt.Errorf("schema %s: unknown opening rule %q", s.ID, s.OpeningRule)
	}
	if len(s.OpenOrder) != s.CardCount {
		return fmt.Errorf("schema %s: open order has %d entries for %d cards", s.ID, len(s.OpenOrder), s.CardCount)
	}
	order := make(map[int]bool, s.CardCount)
	for _, id := range s.OpenOrder {
		if !seen[id] {
			return fmt.Errorf("schema %s: open order references unknown position %d", s.ID, id)
		}
		if order[id] {
			return fmt.Errorf("schema %s: open order repeats position %d", s.ID, id)
		}
		order[id] = true
	}
	return nil
}
