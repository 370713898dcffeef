package layouts

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/randomtoy/spreads-go/internal/domain"
)

//go:embed data/*.yaml
var layoutFS embed.FS

// defaultSchema is the fallback for unknown layout ids: a single free-order
// card from the full deck.
var defaultSchema = domain.SpreadSchema{
	ID:          "card_of_day",
	Title:       "Card of the Day",
	CardCount:   1,
	DeckType:    "rider_waite",
	OpeningRule: domain.OpenAnyOrder,
	Positions:   []domain.Position{{ID: 1, X: 0.5, Y: 0.5, Label: "Your card"}},
}

// EmbeddedRegistry serves spread schemas from embedded YAML files.
type EmbeddedRegistry struct {
	once    sync.Once
	schemas map[string]domain.SpreadSchema
	order   []string
	err     error
}

func NewEmbeddedRegistry() *EmbeddedRegistry {
	return &EmbeddedRegistry{}
}

func (r *EmbeddedRegistry) init() {
	entries, err := layoutFS.ReadDir("data")
	if err != nil {
		r.err = fmt.Errorf("read layout dir: %w", err)
		return
	}
	r.schemas = make(map[string]domain.SpreadSchema, len(entries))
	for _, e := range entries {
		raw, err := layoutFS.ReadFile("data/" + e.Name())
		if err != nil {
			r.err = fmt.Errorf("read layout %s: %w", e.Name(), err)
			return
		}
		var schema domain.SpreadSchema
		if err := yaml.Unmarshal(raw, &schema); err != nil {
			r.err = fmt.Errorf("parse layout %s: %w", e.Name(), err)
			return
		}
		if err := schema.Validate(); err != nil {
			r.err = fmt.Errorf("layout %s: %w", e.Name(), err)
			return
		}
		r.schemas[schema.ID] = schema
		r.order = append(r.order, schema.ID)
	}
}

// SchemaByID returns the schema for id, or the default single-card schema
// when the id is unknown. Embedded data errors also resolve to the default;
// they are caught by the registry tests, not at lookup time.
func (r *EmbeddedRegistry) SchemaByID(id string) domain.SpreadSchema {
	r.once.Do(r.init)
	if r.err != nil {
		return defaultSchema
	}
	if s, ok := r.schemas[id]; ok {
		return s
	}
	return defaultSchema
}

// Schemas lists every embedded schema in file order.
func (r *EmbeddedRegistry) Schemas() []domain.SpreadSchema {
	r.once.Do(r.init)
	out := make([]domain.SpreadSchema, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.schemas[id])
	}
	return out
}

// Err exposes embedded data problems for startup checks.
func (r *EmbeddedRegistry) Err() error {
	r.once.Do(r.init)
	return r.err
}
