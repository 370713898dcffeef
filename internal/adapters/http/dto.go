package http

import (
	"time"

	"github.com/randomtoy/spreads-go/internal/domain"
	"github.com/randomtoy/spreads-go/internal/ports"
)

// CreateSessionRequest selects a spread layout.
type CreateSessionRequest struct {
	SpreadID string `json:"spread_id"`
}

// QuestionRequest sets the question text at the fan stage.
type QuestionRequest struct {
	Question string `json:"question"`
}

// StartRequest launches the draw and animation run.
type StartRequest struct {
	Question string `json:"question"`
}

// CardResponse is one dealt card. The name is withheld until the card has
// been opened.
type CardResponse struct {
	Position int     `json:"position"`
	Label    string  `json:"label"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Name     string  `json:"name,omitempty"`
	Reversed bool    `json:"reversed"`
	Open     bool    `json:"open"`
}

// ResultResponse is the assembled interpretation.
type ResultResponse struct {
	ReadingID   string                   `json:"reading_id"`
	Summary     string                   `json:"summary"`
	GeneratedAt time.Time                `json:"generated_at"`
	Positions   []PositionResultResponse `json:"positions"`
	EnergySpent int                      `json:"energy_spent"`
	Balance     int                      `json:"balance"`
}

type PositionResultResponse struct {
	PositionIndex int    `json:"position_index"`
	Title         string `json:"title"`
	ShortText     string `json:"short_text"`
	FullText      string `json:"full_text"`
}

// SessionResponse is the full session snapshot. Unopened cards keep their
// names hidden so the client cannot peek ahead of the opening order.
type SessionResponse struct {
	ID                string          `json:"id"`
	SpreadID          string          `json:"spread_id"`
	SpreadTitle       string          `json:"spread_title"`
	Stage             domain.Stage    `json:"stage"`
	Question          string          `json:"question"`
	Cards             []CardResponse  `json:"cards"`
	ForcedFreeOpening bool            `json:"forced_free_opening"`
	ReadingID         string          `json:"reading_id,omitempty"`
	BackendStatus     string          `json:"backend_status,omitempty"`
	LongWait          bool            `json:"long_wait"`
	Result            *ResultResponse `json:"result,omitempty"`
}

// OpenCardResponse reports the outcome of an open attempt.
type OpenCardResponse struct {
	Opened   bool         `json:"opened"`
	Warned   bool         `json:"warned"`
	Expected int          `json:"expected,omitempty"`
	AllOpen  bool         `json:"all_open"`
	Stage    domain.Stage `json:"stage"`
}

// LayoutResponse describes one available spread layout.
type LayoutResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	CardCount   int                `json:"card_count"`
	DeckType    string             `json:"deck_type"`
	OpeningRule domain.OpeningRule `json:"opening_rule"`
	Positions   []domain.Position  `json:"positions"`
}

// HistoryEntryResponse is one completed reading in the user's history.
type HistoryEntryResponse struct {
	ReadingID string    `json:"reading_id"`
	SpreadID  string    `json:"spread_id"`
	DeckID    string    `json:"deck_id"`
	Question  string    `json:"question"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func toSessionResponse(v domain.SessionView) SessionResponse {
	positions := make(map[int]domain.Position, len(v.Schema.Positions))
	for _, p := range v.Schema.Positions {
		positions[p.ID] = p
	}
	cards := make([]CardResponse, len(v.Cards))
	for i, c := range v.Cards {
		pos := positions[c.PositionID]
		cards[i] = CardResponse{
			Position: c.PositionID,
			Label:    pos.Label,
			X:        pos.X,
			Y:        pos.Y,
			Reversed: c.Reversed,
			Open:     c.IsOpen,
		}
		if c.IsOpen {
			cards[i].Name = c.CardName
		}
	}
	resp := SessionResponse{
		ID:                v.ID.String(),
		SpreadID:          v.Schema.ID,
		SpreadTitle:       v.Schema.Title,
		Stage:             v.Stage,
		Question:          v.Question,
		Cards:             cards,
		ForcedFreeOpening: v.ForcedFreeOpening,
		ReadingID:         v.ReadingID,
		BackendStatus:     string(v.BackendStatus),
		LongWait:          v.LongWait,
	}
	if v.Result != nil {
		resp.Result = toResultResponse(*v.Result)
	}
	return resp
}

func toResultResponse(r domain.ReadingResult) *ResultResponse {
	out := &ResultResponse{
		ReadingID:   r.ReadingID,
		Summary:     r.Summary,
		GeneratedAt: r.GeneratedAt,
		Positions:   make([]PositionResultResponse, len(r.Positions)),
		EnergySpent: r.EnergySpent,
		Balance:     r.Balance,
	}
	for i, p := range r.Positions {
		out.Positions[i] = PositionResultResponse{
			PositionIndex: p.PositionIndex,
			Title:         p.Title,
			ShortText:     p.ShortText,
			FullText:      p.FullText,
		}
	}
	return out
}

func toLayoutResponses(schemas []domain.SpreadSchema) []LayoutResponse {
	out := make([]LayoutResponse, len(schemas))
	for i, s := range schemas {
		out[i] = LayoutResponse{
			ID:          s.ID,
			Title:       s.Title,
			CardCount:   s.CardCount,
			DeckType:    s.DeckType,
			OpeningRule: s.OpeningRule,
			Positions:   s.Positions,
		}
	}
	return out
}

func toHistoryResponses(recs []ports.ReadingRecord) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, len(recs))
	for i, r := range recs {
		out[i] = HistoryEntryResponse{
			ReadingID: r.ReadingID,
			SpreadID:  r.SpreadID,
			DeckID:    r.DeckID,
			Question:  r.Question,
			Summary:   r.Summary,
			CreatedAt: r.CreatedAt,
		}
	}
	return out
}
