package ports

import (
	"context"
	"fmt"
)

// AdFailureReason is the closed classification of ad provider failures.
type AdFailureReason string

const (
	AdSDKUnavailable AdFailureReason = "sdk_unavailable"
	AdNoInventory    AdFailureReason = "no_inventory"
	AdNetworkError   AdFailureReason = "network_error"
	AdGenericError   AdFailureReason = "ad_error"
)

// AdError is a classified ad provider failure.
type AdError struct {
	Reason AdFailureReason
	Detail string
}

func (e *AdError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("ad: %s", e.Reason)
	}
	return fmt.Sprintf("ad: %s: %s", e.Reason, e.Detail)
}

// AdOptions parameterize a placement request.
type AdOptions struct {
	Placement string
	SessionID string
}

// AdResult is the outcome of a shown ad.
type AdResult struct {
	OK      bool
	Payload string
}

// AdProvider is the monetization collaborator. Preload is best-effort and its
// failures are swallowed by callers; Show failures are classified AdErrors.
type AdProvider interface {
	Preload(ctx context.Context, opts AdOptions) error
	Show(ctx context.Context, opts AdOptions) (AdResult, error)
}
