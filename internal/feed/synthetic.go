package feed

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"sync"
	"time"

	"market-analyzer/internal/model"
)

const (
	// walkVolatility bounds the per-minute close change at ±0.15%.
	walkVolatility = 0.0015
	maxHistory     = 4096
)

// Synthetic simulates a market with an independent seeded random walk
// per symbol. Every Series call advances the walk by one minute, so
// repeated calls behave like a live feed discovering new candles. The
// same seed always replays the same walk.
type Synthetic struct {
	mu         sync.Mutex
	seed       int64
	basePrice  float64
	baseVolume float64
	states     map[string]*walkState
}

type walkState struct {
	rng    *rand.Rand
	series model.PriceSeries
	cursor time.Time
	price  float64
}

func NewSynthetic(seed int64, basePrice, baseVolume float64) *Synthetic {
	if basePrice <= 0 {
		basePrice = 1.0
	}
	if baseVolume <= 0 {
		baseVolume = 1000
	}
	return &Synthetic{
		seed:       seed,
		basePrice:  basePrice,
		baseVolume: baseVolume,
		states:     make(map[string]*walkState),
	}
}

func (s *Synthetic) Series(ctx context.Context, symbol string, samples int) (model.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if samples <= 0 {
		return nil, fmt.Errorf("samples must be positive, got %d", samples)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[symbol]
	if !ok {
		st = &walkState{
			rng:    rand.New(rand.NewSource(s.seed ^ symbolSeed(symbol))),
			cursor: time.Now().UTC().Truncate(time.Minute).Add(-time.Duration(samples) * time.Minute),
			price:  s.basePrice,
		}
		s.states[symbol] = st
	}

	for len(st.series) < samples {
		st.step(s.baseVolume)
	}
	st.step(s.baseVolume)

	if len(st.series) > maxHistory {
		st.series = append(model.PriceSeries(nil), st.series[len(st.series)-maxHistory:]...)
	}

	out := make(model.PriceSeries, samples)
	copy(out, st.series[len(st.series)-samples:])
	return out, nil
}

// step appends the next minute of the walk.
func (st *walkState) step(baseVolume float64) {
	open := st.price
	st.price = open * (1 + (st.rng.Float64()*2-1)*walkVolatility)
	high := math.Max(open, st.price) * (1 + st.rng.Float64()*walkVolatility/2)
	low := math.Min(open, st.price) * (1 - st.rng.Float64()*walkVolatility/2)
	st.series = append(st.series, model.Candle{
		Timestamp: st.cursor,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     st.price,
		Volume:    baseVolume * (0.5 + st.rng.Float64()),
	})
	st.cursor = st.cursor.Add(time.Minute)
}

func symbolSeed(symbol string) int64 {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	return int64(h.Sum64())
}
