package ports

import (
	"context"
	"time"

	"github.com/randomtoy/spreads-go/internal/domain"
)

// Wire shapes for the remote readings service. Field names follow the service
// contract, not the domain model.

// ReadingCardEntry is one card of a submitted spread.
type ReadingCardEntry struct {
	PositionIndex int    `json:"position_index"`
	CardCode      string `json:"card_code"`
	Reversed      bool   `json:"reversed"`
	PositionLabel string `json:"position_label"`
	CardName      string `json:"card_name"`
}

// CreateReadingRequest submits a completed spread for interpretation.
type CreateReadingRequest struct {
	Type        string             `json:"type"`
	SpreadID    string             `json:"spread_id"`
	SpreadTitle string             `json:"spread_title"`
	DeckID      string             `json:"deck_id"`
	DeckTitle   string             `json:"deck_title"`
	Question    string             `json:"question"`
	Locale      string             `json:"locale"`
	Cards       []ReadingCardEntry `json:"cards"`
}

// CreateReadingResponse acknowledges a submission.
type CreateReadingResponse struct {
	ID     string               `json:"id"`
	Status domain.ReadingStatus `json:"status"`
}

// ReadingPositionPayload is the interpretation of a single position.
type ReadingPositionPayload struct {
	PositionIndex int    `json:"position_index"`
	Title         string `json:"title"`
	ShortText     string `json:"short_text"`
	FullText      string `json:"full_text"`
}

// ReadingPayload is the generated interpretation body.
type ReadingPayload struct {
	Summary     string                   `json:"summary"`
	GeneratedAt time.Time                `json:"generated_at"`
	Positions   []ReadingPositionPayload `json:"positions"`
}

// Reading is the poll-level view of a remote reading resource.
type Reading struct {
	ID            string               `json:"id"`
	Status        domain.ReadingStatus `json:"status"`
	OutputPayload *ReadingPayload      `json:"output_payload,omitempty"`
	SummaryText   string               `json:"summary_text,omitempty"`
	EnergySpent   int                  `json:"energy_spent,omitempty"`
	Error         string               `json:"error,omitempty"`
}

// ReadingView is the full view fetched once a reading is ready; it adds the
// account balance to the poll-level fields.
type ReadingView struct {
	Reading
	Balance int `json:"balance"`
}

// ReadingsAPI is the remote interpretation service.
type ReadingsAPI interface {
	CreateReading(ctx context.Context, req CreateReadingRequest) (CreateReadingResponse, error)
	GetReading(ctx context.Context, id string) (Reading, error)
	ViewReading(ctx context.Context, id string) (ReadingView, error)
}
