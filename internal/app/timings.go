package app

import "time"

// Timings holds the durations of the animation phases and the poll loop's
// escalation ladder.
type Timings struct {
	// Animation phases, in timeline order.
	QuestionDismiss time.Duration
	DeckCollapse    time.Duration
	Shuffle         time.Duration
	LiftAndDeal     time.Duration
	RevealHint      time.Duration

	// Poll loop.
	PollInterval time.Duration
	LongWait     time.Duration
	HardTimeout  time.Duration
}

// DefaultTimings mirrors the production presentation pacing.
func DefaultTimings() Timings {
	return Timings{
		QuestionDismiss: 400 * time.Millisecond,
		DeckCollapse:    700 * time.Millisecond,
		Shuffle:         1200 * time.Millisecond,
		LiftAndDeal:     900 * time.Millisecond,
		RevealHint:      600 * time.Millisecond,
		PollInterval:    2 * time.Second,
		LongWait:        15 * time.Second,
		HardTimeout:     30 * time.Second,
	}
}
