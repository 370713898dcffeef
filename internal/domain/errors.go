package domain

import "errors"

// Local validation failures. These abort an operation before any network
// call and leave the session untouched.
var (
	ErrDeckTooSmall  = errors.New("deck has fewer cards than the spread needs")
	ErrUnknownCard   = errors.New("card name has no code mapping")
	ErrEmptyQuestion = errors.New("question must not be empty")
	ErrUnknownSchema  = errors.New("spread schema not found")
	ErrUnknownDeck    = errors.New("deck type not found")
	ErrUnknownSession = errors.New("session not found")
	ErrCardsNotDrawn = errors.New("spread cards have not been drawn")
	ErrNoReading     = errors.New("no reading bound to this session")
)

// Submission and poll failures, classified so the caller can pick the right
// recovery hint.
var (
	// ErrInsufficientEnergy means the account lacks the resource the reading
	// costs; user-actionable (top up and retry).
	ErrInsufficientEnergy = errors.New("insufficient energy for reading")
	// ErrSessionInvalid means the platform session or auth token was rejected;
	// user-actionable (restart the app).
	ErrSessionInvalid = errors.New("platform session invalid")
	// ErrReadingFailed carries a server-reported reading error; not retried
	// automatically.
	ErrReadingFailed = errors.New("reading failed")
	// ErrStillPreparing is the non-fatal hard-timeout exit of the poll loop.
	// The reading id is preserved, so a later attempt resumes polling.
	ErrStillPreparing = errors.New("reading is still being prepared")
	// ErrTransport marks connectivity-level failures, distinct from anything
	// the server reported.
	ErrTransport = errors.New("transport failure")
)
