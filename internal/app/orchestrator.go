package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/randomtoy/spreads-go/internal/domain"
	"github.com/randomtoy/spreads-go/internal/ports"
)

// Deps are the collaborators an Orchestrator is wired with.
type Deps struct {
	Layouts  ports.LayoutRegistry
	Decks    ports.DeckSource
	Readings ports.ReadingsAPI
	Ads      ports.AdProvider
	History  ports.HistoryStore
	Clock    ports.Clock
	RNG      domain.RNG
	Timings  Timings
	Locale   string
	Logger   *slog.Logger
}

// Orchestrator owns spread sessions and drives them through the draw,
// animation, opening and reading protocol. Sessions are keyed by uuid so
// multiple users (and tests) coexist without shared global state.
type Orchestrator struct {
	layouts  ports.LayoutRegistry
	decks    ports.DeckSource
	readings ports.ReadingsAPI
	ads      ports.AdProvider
	history  ports.HistoryStore
	clock    ports.Clock
	rng      domain.RNG
	timings  Timings
	locale   string
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.Session
}

func NewOrchestrator(d Deps) *Orchestrator {
	if d.Clock == nil {
		d.Clock = SystemClock()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Locale == "" {
		d.Locale = "en"
	}
	return &Orchestrator{
		layouts:  d.Layouts,
		decks:    d.Decks,
		readings: d.Readings,
		ads:      d.Ads,
		history:  d.History,
		clock:    d.Clock,
		rng:      d.RNG,
		timings:  d.Timings,
		locale:   normalizeLocale(d.Locale),
		logger:   d.Logger,
		sessions: make(map[uuid.UUID]*domain.Session),
	}
}

// Layouts lists the spread schemas available for new sessions.
func (o *Orchestrator) Layouts() []domain.SpreadSchema {
	return o.layouts.Schemas()
}

// CreateSession starts a fresh session for the given layout. Unknown layout
// ids resolve to the registry's default schema.
func (o *Orchestrator) CreateSession(spreadID string) *domain.Session {
	schema := o.layouts.SchemaByID(spreadID)
	s := domain.NewSession(schema)
	o.mu.Lock()
	o.sessions[s.ID()] = s
	o.mu.Unlock()
	o.logger.Info("session created", "session_id", s.ID(), "spread_id", schema.ID)
	return s
}

// Session looks up a live session by id.
func (o *Orchestrator) Session(id uuid.UUID) (*domain.Session, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	s, ok := o.sessions[id]
	return s, ok
}

// DropSession removes a session, abandoning any in-flight animation run.
func (o *Orchestrator) DropSession(id uuid.UUID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if s, ok := o.sessions[id]; ok {
		s.Reset()
		delete(o.sessions, id)
	}
}

// SetQuestion records the question text; a no-op outside the fan stage.
func (o *Orchestrator) SetQuestion(id uuid.UUID, question string) error {
	s, ok := o.Session(id)
	if !ok {
		return fmt.Errorf("set question: %w", domain.ErrUnknownSession)
	}
	s.SetQuestion(question)
	return nil
}

// Start validates the question, draws the cards and launches the animation
// timeline. A session past the fan stage is reset first, so the new run
// supersedes any timeline still in flight.
func (o *Orchestrator) Start(ctx context.Context, id uuid.UUID, question string) error {
	s, ok := o.Session(id)
	if !ok {
		return fmt.Errorf("start: %w", domain.ErrUnknownSession)
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return fmt.Errorf("start: %w", domain.ErrEmptyQuestion)
	}

	schema := s.Schema()
	names, err := o.decks.ShuffledDeck(ctx, schema.DeckType)
	if err != nil {
		return fmt.Errorf("start: shuffled deck: %w", err)
	}
	cards, err := domain.DrawCards(schema, names, o.rng)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}

	token := s.Restart(question, cards)
	if token == 0 {
		return fmt.Errorf("start: drew %d cards for schema %s", len(cards), schema.ID)
	}

	go o.runTimeline(s, token)

	// Warm the ad inventory while the dealing animation plays. Best-effort;
	// a miss here only means a slower Show later.
	go func() {
		opts := ports.AdOptions{Placement: adPlacementReading, SessionID: s.ID().String()}
		if err := o.ads.Preload(context.Background(), opts); err != nil {
			o.logger.Debug("ad preload failed", "session_id", s.ID(), "error", err)
		}
	}()

	return nil
}

// OpenCard attempts to reveal one card of the spread.
func (o *Orchestrator) OpenCard(id uuid.UUID, positionID int) (domain.OpenOutcome, error) {
	s, ok := o.Session(id)
	if !ok {
		return domain.OpenOutcome{}, fmt.Errorf("open card: %w", domain.ErrUnknownSession)
	}
	out := s.OpenCard(positionID)
	if out.Warned {
		o.logger.Info("opening order violation",
			"session_id", id, "position", positionID, "expected", out.Expected)
	}
	return out, nil
}

// ForceFreeOpening relaxes opening-order enforcement for the session.
func (o *Orchestrator) ForceFreeOpening(id uuid.UUID) error {
	s, ok := o.Session(id)
	if !ok {
		return fmt.Errorf("force free opening: %w", domain.ErrUnknownSession)
	}
	s.ForceFreeOpening()
	return nil
}

// Reset returns the session to the fan stage, cancelling its timeline run.
func (o *Orchestrator) Reset(id uuid.UUID) error {
	s, ok := o.Session(id)
	if !ok {
		return fmt.Errorf("reset: %w", domain.ErrUnknownSession)
	}
	s.Reset()
	return nil
}

// History lists the most recent completed readings.
func (o *Orchestrator) History(ctx context.Context, limit int) ([]ports.ReadingRecord, error) {
	recs, err := o.history.ListReadings(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return recs, nil
}

func normalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		locale = locale[:i]
	}
	if locale == "" {
		return "en"
	}
	return locale
}
