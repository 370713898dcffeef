package domain

// Stage is a point in the spread presentation state machine.
type Stage string

const (
	StageFan        Stage = "fan"
	StageCollecting Stage = "collecting"
	StageShuffling  Stage = "shuffling"
	StageDealing    Stage = "dealing"
	StageAwaitOpen  Stage = "await_open"
	StageDone       Stage = "done"
)

// forward is the animation-driven stage order. StageDone is reached only by
// opening the last card, never by the timeline.
var forward = map[Stage]Stage{
	StageFan:        StageCollecting,
	StageCollecting: StageShuffling,
	StageShuffling:  StageDealing,
	StageDealing:    StageAwaitOpen,
}

// Next returns the stage that follows s in the animation sequence and false
// when s has no timeline successor.
func (s Stage) Next() (Stage, bool) {
	n, ok := forward[s]
	return n, ok
}

// Interactive reports whether cards may be opened at stage s.
func (s Stage) Interactive() bool {
	return s == StageAwaitOpen || s == StageDone
}
