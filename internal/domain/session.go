package domain

import (
	"sync"

	"github.com/google/uuid"
)

// Session is the mutable aggregate for one user's interaction with a chosen
// spread layout. All mutation goes through its methods; operations invoked
// outside their permitted stage are silent no-ops.
//
// Each animation run holds an epoch token handed out by BeginRun. Stage
// advances are accepted only while the token is still current, so a run
// superseded by Reset or a new BeginRun can never resurrect stage transitions.
type Session struct {
	mu sync.Mutex

	id     uuid.UUID
	schema SpreadSchema

	question          string
	stage             Stage
	cards             []SpreadCard
	forcedFreeOpening bool
	warnedEpisode     bool

	epoch uint64

	readingID     string
	backendStatus ReadingStatus
	longWait      bool
	result        *ReadingResult
}

// NewSession creates a session at the initial stage for the given schema.
func NewSession(schema SpreadSchema) *Session {
	return &Session{
		id:     uuid.New(),
		schema: schema,
		stage:  StageFan,
	}
}

func (s *Session) ID() uuid.UUID { return s.id }

// Schema returns the immutable layout this session was created for.
func (s *Session) Schema() SpreadSchema { return s.schema }

// SessionView is a consistent read snapshot of a session.
type SessionView struct {
	ID                uuid.UUID
	Schema            SpreadSchema
	Question          string
	Stage             Stage
	Cards             []SpreadCard
	ForcedFreeOpening bool
	ReadingID         string
	BackendStatus     ReadingStatus
	LongWait          bool
	Result            *ReadingResult
}

// Snapshot returns a copy of the session state. The card slice is cloned so
// observers never see a torn write.
func (s *Session) Snapshot() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	cards := make([]SpreadCard, len(s.cards))
	copy(cards, s.cards)
	var result *ReadingResult
	if s.result != nil {
		r := *s.result
		result = &r
	}
	return SessionView{
		ID:                s.id,
		Schema:            s.schema,
		Question:          s.question,
		Stage:             s.stage,
		Cards:             cards,
		ForcedFreeOpening: s.forcedFreeOpening,
		ReadingID:         s.readingID,
		BackendStatus:     s.backendStatus,
		LongWait:          s.longWait,
		Result:            result,
	}
}

// SetQuestion records the question text. Permitted only at the fan stage.
func (s *Session) SetQuestion(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageFan {
		return
	}
	s.question = q
}

// BeginRun installs the drawn cards and opens a new animation epoch,
// superseding any run still in flight. Permitted only at the fan stage; the
// returned token is zero when the call was a no-op.
func (s *Session) BeginRun(question string, cards []SpreadCard) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageFan || len(cards) != s.schema.CardCount {
		return 0
	}
	s.question = question
	s.cards = cards
	s.epoch++
	return s.epoch
}

// Restart atomically clears the session and installs a new run, whatever the
// current stage. It is the cancel-then-restart edge: the old run's token is
// invalidated and a fresh one returned in a single step, so two timelines can
// never interleave on one session. The returned token is zero only when the
// card count does not match the schema.
func (s *Session) Restart(question string, cards []SpreadCard) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(cards) != s.schema.CardCount {
		return 0
	}
	s.resetLocked()
	s.question = question
	s.cards = cards
	s.epoch++
	return s.epoch
}

// AdvanceStage moves the session to the given stage if token is still the
// current epoch and the target is the legal timeline successor of the current
// stage. It reports whether the advance was applied; a stale token is not an
// error, the run is simply over.
func (s *Session) AdvanceStage(token uint64, to Stage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == 0 || token != s.epoch {
		return false
	}
	next, ok := s.stage.Next()
	if !ok || next != to {
		return false
	}
	s.stage = to
	return true
}

// CanOpen reports whether the card at positionID may be revealed, and if not,
// which position is expected first.
func (s *Session) CanOpen(positionID int) (allowed bool, expected int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return canOpen(s.schema, s.cards, s.forcedFreeOpening, positionID)
}

// OpenOutcome describes the result of an OpenCard attempt.
type OpenOutcome struct {
	// Opened is true when the card state changed from closed to open.
	Opened bool
	// Warned is true for the first disallowed attempt of a violation episode;
	// repeats within the same episode stay silent.
	Warned bool
	// Expected names the position that must be opened instead when the
	// attempt was disallowed.
	Expected int
	// AllOpen is true once every card in the spread is open.
	AllOpen bool
	// Stage is the session stage after the attempt.
	Stage Stage
}

// OpenCard attempts to reveal the card at positionID. Permitted only at the
// interactive stages; opening the last closed card transitions the session to
// done. Re-opening an already open card is a no-op.
func (s *Session) OpenCard(positionID int) OpenOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stage.Interactive() {
		return OpenOutcome{Stage: s.stage}
	}
	allowed, expected := canOpen(s.schema, s.cards, s.forcedFreeOpening, positionID)
	if !allowed {
		warned := !s.warnedEpisode
		s.warnedEpisode = true
		return OpenOutcome{Warned: warned, Expected: expected, Stage: s.stage}
	}
	s.warnedEpisode = false
	out := OpenOutcome{}
	for i := range s.cards {
		if s.cards[i].PositionID != positionID {
			continue
		}
		if !s.cards[i].IsOpen {
			s.cards[i].IsOpen = true
			out.Opened = true
		}
		break
	}
	out.AllOpen = s.allOpenLocked()
	if out.AllOpen {
		s.stage = StageDone
	}
	out.Stage = s.stage
	return out
}

func (s *Session) allOpenLocked() bool {
	if len(s.cards) == 0 {
		return false
	}
	for _, c := range s.cards {
		if !c.IsOpen {
			return false
		}
	}
	return true
}

// ForceFreeOpening permanently relaxes opening-order enforcement for the rest
// of the session. Already opened cards are untouched.
func (s *Session) ForceFreeOpening() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forcedFreeOpening = true
}

// BindReading stores the remote reading id and its initial status. The id is
// set at most once per session; the second return is false when a reading was
// already bound.
func (s *Session) BindReading(id string, status ReadingStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readingID != "" {
		return false
	}
	s.readingID = id
	s.backendStatus = status
	return true
}

// ReadingID returns the bound remote reading id, empty when none is bound.
func (s *Session) ReadingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readingID
}

// SetBackendStatus republishes the latest remote status for observers.
func (s *Session) SetBackendStatus(status ReadingStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backendStatus = status
}

// SetLongWait flags that the reading is taking longer than usual.
func (s *Session) SetLongWait(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.longWait = v
}

// SetResult stores the assembled interpretation.
func (s *Session) SetResult(r ReadingResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = &r
}

// Reset returns the session to the fan stage and clears everything drawn,
// asked, bound or fetched. It also opens a new epoch, cancelling any
// animation run still in flight.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.question = ""
	s.stage = StageFan
	s.cards = nil
	s.forcedFreeOpening = false
	s.warnedEpisode = false
	s.readingID = ""
	s.backendStatus = ""
	s.longWait = false
	s.result = nil
	s.epoch++
}
