package contract

import (
	"context"

	"market-analyzer/internal/dto"
)

// SignalNotifier delivers a directional signal to the configured
// channels. Implementations decide on throttling and deduplication; a
// swallowed duplicate is not an error.
type SignalNotifier interface {
	NotifySignal(ctx context.Context, alert dto.SignalAlert) error
}
