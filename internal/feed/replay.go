package feed

import (
	"context"
	"fmt"
	"sync"

	"market-analyzer/internal/contract"
	"market-analyzer/internal/model"
)

// Replay serves a recorded tape as if it were arriving live: the nth
// call sees the first start+n candles. Every symbol reads the same
// tape. Once the tape runs out, every call reports no data.
type Replay struct {
	mu     sync.Mutex
	series model.PriceSeries
	pos    int
}

// NewReplay positions the tape so the first call sees start candles.
// Start is clamped to the tape length; starting below the requested
// sample count means the early calls report no data, the same way a
// live feed behaves while history is still accumulating.
func NewReplay(series model.PriceSeries, start int) *Replay {
	if start < 1 {
		start = 1
	}
	if start > len(series) {
		start = len(series)
	}
	return &Replay{series: series, pos: start}
}

func (r *Replay) Series(ctx context.Context, symbol string, samples int) (model.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if samples <= 0 {
		return nil, fmt.Errorf("samples must be positive, got %d", samples)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.series) == 0 || r.pos > len(r.series) {
		return nil, contract.ErrNoData
	}
	window := r.series[:r.pos]
	r.pos++
	if len(window) < samples {
		return nil, contract.ErrNoData
	}
	return window.Tail(samples), nil
}

// Remaining reports how many candles are left on the tape.
func (r *Replay) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pos > len(r.series) {
		return 0
	}
	return len(r.series) - r.pos + 1
}
