package contract

import (
	"context"
	"errors"

	"market-analyzer/internal/model"
)

// Sentinel errors reported by series providers. The analysis layer maps
// them onto the user-facing error taxonomy.
var (
	ErrNoData  = errors.New("market data unavailable")
	ErrTimeout = errors.New("market data request timed out")
)

// SeriesProvider hands out the trailing candle series for a symbol.
// Implementations must return at least samples candles or ErrNoData;
// a provider that cannot answer in time returns ErrTimeout.
type SeriesProvider interface {
	Series(ctx context.Context, symbol string, samples int) (model.PriceSeries, error)
}
