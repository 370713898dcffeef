package ports

import (
	"context"
	"time"
)

// Clock abstracts wall time and timed waits so animation phases and poll
// intervals can run instantly under test.
type Clock interface {
	Now() time.Time
	// Sleep waits for d or until ctx is cancelled, returning ctx.Err() in the
	// latter case.
	Sleep(ctx context.Context, d time.Duration) error
}
