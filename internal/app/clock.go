package app

import (
	"context"
	"time"

	"github.com/randomtoy/spreads-go/internal/ports"
)

// systemClock is the production ports.Clock backed by real timers.
type systemClock struct{}

// SystemClock returns a clock backed by time.Now and real timers.
func SystemClock() ports.Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
