package model

import (
	"fmt"
	"time"
)

// Candle is a single OHLCV sample on a fixed one-minute grid.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// PriceSeries is an ordered, fixed-frequency sequence of candles. The
// analyzer borrows it read-only; the caller owns the backing array.
// Instruments without true volume carry a constant placeholder (1.0).
type PriceSeries []Candle

// Closes returns the close prices in series order.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].Close
	}
	return out
}

// Volumes returns the volumes in series order.
func (s PriceSeries) Volumes() []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].Volume
	}
	return out
}

// Tail returns the trailing n samples, or the whole series when it is
// shorter than n.
func (s PriceSeries) Tail(n int) PriceSeries {
	if n <= 0 {
		return nil
	}
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// Validate checks the series invariants: non-empty, positive prices,
// non-negative volumes, strictly increasing timestamps, constant
// sampling interval. Gaps must be resolved by the data source before
// the series reaches the analyzer.
func (s PriceSeries) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("price series is empty")
	}
	for i := range s {
		if s[i].Close <= 0 {
			return fmt.Errorf("non-positive close at index %d", i)
		}
		if s[i].Volume < 0 {
			return fmt.Errorf("negative volume at index %d", i)
		}
	}
	if len(s) == 1 {
		return nil
	}
	interval := s[1].Timestamp.Sub(s[0].Timestamp)
	if interval <= 0 {
		return fmt.Errorf("timestamps not strictly increasing at index 1")
	}
	for i := 2; i < len(s); i++ {
		gap := s[i].Timestamp.Sub(s[i-1].Timestamp)
		if gap <= 0 {
			return fmt.Errorf("timestamps not strictly increasing at index %d", i)
		}
		if gap != interval {
			return fmt.Errorf("irregular sampling interval at index %d: got %s, want %s", i, gap, interval)
		}
	}
	return nil
}
