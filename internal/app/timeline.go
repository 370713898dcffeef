package app

import (
	"context"
	"time"

	"github.com/randomtoy/spreads-go/internal/domain"
)

// phase is one timed step of the presentation timeline. A zero stage means
// the phase only consumes time (no checkpoint).
type phase struct {
	name     string
	duration time.Duration
	advance  domain.Stage
}

func (o *Orchestrator) phases() []phase {
	t := o.timings
	return []phase{
		{name: "question_dismiss", duration: t.QuestionDismiss, advance: domain.StageCollecting},
		{name: "deck_collapse", duration: t.DeckCollapse, advance: domain.StageShuffling},
		{name: "shuffle", duration: t.Shuffle, advance: domain.StageDealing},
		{name: "lift_and_deal", duration: t.LiftAndDeal, advance: domain.StageAwaitOpen},
		{name: "reveal_hint", duration: t.RevealHint},
	}
}

// runTimeline drives the stage sequence fan -> collecting -> shuffling ->
// dealing -> await_open. The token is checked at every phase boundary; once
// it is superseded by Reset or a newer run the remaining phases are skipped
// silently. Cancellation is not an error, it is the only way a timeline ends
// early.
func (o *Orchestrator) runTimeline(s *domain.Session, token uint64) {
	ctx := context.Background()
	for _, p := range o.phases() {
		if err := o.clock.Sleep(ctx, p.duration); err != nil {
			return
		}
		if p.advance == "" {
			continue
		}
		if !s.AdvanceStage(token, p.advance) {
			o.logger.Debug("timeline superseded",
				"session_id", s.ID(), "phase", p.name)
			return
		}
	}
	o.logger.Debug("timeline complete", "session_id", s.ID())
}
