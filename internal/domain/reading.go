package domain

import "time"

// ReadingStatus is the lifecycle state of a remote reading resource.
type ReadingStatus string

const (
	ReadingPending    ReadingStatus = "pending"
	ReadingQueued     ReadingStatus = "queued"
	ReadingProcessing ReadingStatus = "processing"
	ReadingReady      ReadingStatus = "ready"
	ReadingError      ReadingStatus = "error"
)

// PositionReading is the interpretation text for a single spread position.
type PositionReading struct {
	PositionIndex int    `json:"position_index"`
	Title         string `json:"title"`
	ShortText     string `json:"short_text"`
	FullText      string `json:"full_text"`
}

// ReadingResult is the assembled interpretation handed back to the session
// once the remote reading reaches ready.
type ReadingResult struct {
	ReadingID   string            `json:"reading_id"`
	Summary     string            `json:"summary"`
	GeneratedAt time.Time         `json:"generated_at"`
	Positions   []PositionReading `json:"positions"`
	EnergySpent int               `json:"energy_spent"`
	Balance     int               `json:"balance"`
}
