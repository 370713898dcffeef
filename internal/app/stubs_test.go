package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/randomtoy/spreads-go/internal/domain"
	"github.com/randomtoy/spreads-go/internal/ports"
)

// fakeClock advances its own time on every Sleep, so phased work runs
// instantly and elapsed-time checks still see the ladder tick.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	sleeps  int
	onSleep func(n int)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.sleeps++
	n := c.sleeps
	hook := c.onSleep
	c.mu.Unlock()
	if hook != nil {
		hook(n)
	}
	return nil
}

type fixedRNG struct{ val int }

func (r fixedRNG) Intn(n int) int { return r.val % n }

type stubRegistry struct {
	schemas map[string]domain.SpreadSchema
	def     domain.SpreadSchema
}

func (r *stubRegistry) SchemaByID(id string) domain.SpreadSchema {
	if s, ok := r.schemas[id]; ok {
		return s
	}
	return r.def
}

func (r *stubRegistry) Schemas() []domain.SpreadSchema {
	out := make([]domain.SpreadSchema, 0, len(r.schemas))
	for _, s := range r.schemas {
		out = append(out, s)
	}
	return out
}

type stubDecks struct {
	names []string
	err   error
}

func (d *stubDecks) ShuffledDeck(context.Context, string) ([]string, error) {
	if d.err != nil {
		return nil, d.err
	}
	names := make([]string, len(d.names))
	copy(names, d.names)
	return names, nil
}

// stubReadings scripts the poll protocol. Get responses are consumed in
// order; the last one repeats once the script runs out.
type stubReadings struct {
	mu          sync.Mutex
	createCalls int
	createResp  ports.CreateReadingResponse
	createErr   error
	getScript   []ports.Reading
	getCalls    int
	viewResp    ports.ReadingView
	viewErr     error
}

func (r *stubReadings) CreateReading(context.Context, ports.CreateReadingRequest) (ports.CreateReadingResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.createErr != nil {
		return ports.CreateReadingResponse{}, r.createErr
	}
	return r.createResp, nil
}

func (r *stubReadings) GetReading(context.Context, string) (ports.Reading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.getCalls
	r.getCalls++
	if i >= len(r.getScript) {
		i = len(r.getScript) - 1
	}
	return r.getScript[i], nil
}

func (r *stubReadings) ViewReading(context.Context, string) (ports.ReadingView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.viewErr != nil {
		return ports.ReadingView{}, r.viewErr
	}
	return r.viewResp, nil
}

func (r *stubReadings) creates() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createCalls
}

type stubAds struct {
	mu    sync.Mutex
	shows int
	err   error
}

func (a *stubAds) Preload(context.Context, ports.AdOptions) error { return nil }

func (a *stubAds) Show(context.Context, ports.AdOptions) (ports.AdResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shows++
	if a.err != nil {
		return ports.AdResult{}, a.err
	}
	return ports.AdResult{OK: true}, nil
}

func (a *stubAds) shown() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.shows
}

type stubHistory struct {
	mu   sync.Mutex
	recs []ports.ReadingRecord
	err  error
}

func (h *stubHistory) SaveReading(_ context.Context, rec ports.ReadingRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.recs = append(h.recs, rec)
	return nil
}

func (h *stubHistory) ListReadings(context.Context, int) ([]ports.ReadingRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]ports.ReadingRecord, len(h.recs))
	copy(out, h.recs)
	return out, nil
}

func (h *stubHistory) saved() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.recs)
}

func threeCardSchema() domain.SpreadSchema {
	return domain.SpreadSchema{
		ID:          "three_card",
		Title:       "Past, Present, Future",
		CardCount:   3,
		DeckType:    "rider_waite",
		OpeningRule: domain.OpenInOrder,
		Positions: []domain.Position{
			{ID: 1, Label: "Past"},
			{ID: 2, Label: "Present"},
			{ID: 3, Label: "Future"},
		},
		OpenOrder: []int{1, 2, 3},
	}
}

type fixture struct {
	orch     *Orchestrator
	clock    *fakeClock
	readings *stubReadings
	ads      *stubAds
	history  *stubHistory
}

func newFixture() *fixture {
	clock := newFakeClock()
	readings := &stubReadings{
		createResp: ports.CreateReadingResponse{ID: "r-1", Status: domain.ReadingPending},
		getScript:  []ports.Reading{{ID: "r-1", Status: domain.ReadingProcessing}},
	}
	adsStub := &stubAds{}
	historyStub := &stubHistory{}
	schema := threeCardSchema()
	orch := NewOrchestrator(Deps{
		Layouts:  &stubRegistry{schemas: map[string]domain.SpreadSchema{schema.ID: schema}, def: schema},
		Decks:    &stubDecks{names: domain.FullDeckNames()},
		Readings: readings,
		Ads:      adsStub,
		History:  historyStub,
		Clock:    clock,
		RNG:      fixedRNG{val: 50},
		Timings:  DefaultTimings(),
		Locale:   "en-US",
		Logger:   slog.New(slog.DiscardHandler),
	})
	return &fixture{orch: orch, clock: clock, readings: readings, ads: adsStub, history: historyStub}
}
