package ads

import (
	"context"

	"github.com/randomtoy/spreads-go/internal/ports"
)

// Unavailable is the AdProvider used when no ad SDK is wired in. Every call
// fails with the sdk_unavailable classification, which callers treat as a
// swallowed best-effort miss.
type Unavailable struct{}

var _ ports.AdProvider = Unavailable{}

func (Unavailable) Preload(context.Context, ports.AdOptions) error {
	return &ports.AdError{Reason: ports.AdSDKUnavailable}
}

func (Unavailable) Show(context.Context, ports.AdOptions) (ports.AdResult, error) {
	return ports.AdResult{}, &ports.AdError{Reason: ports.AdSDKUnavailable}
}
