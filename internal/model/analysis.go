package model

import (
	"math"
	"sort"
	"time"
)

// Signal is the directional call for one timeframe.
type Signal string

const (
	SignalBuy     Signal = "BUY"
	SignalSell    Signal = "SELL"
	SignalNeutral Signal = "NEUTRAL"
)

// Label returns a human-readable label for outbound messages.
func (s Signal) Label() string {
	switch s {
	case SignalBuy:
		return "🟢 BUY"
	case SignalSell:
		return "🔴 SELL"
	case SignalNeutral:
		return "🟡 NEUTRAL"
	default:
		return string(s)
	}
}

// BollingerPosition places the last close relative to the bands.
type BollingerPosition string

const (
	BollingerOversold   BollingerPosition = "oversold"
	BollingerOverbought BollingerPosition = "overbought"
	BollingerNormal     BollingerPosition = "normal"
)

// TimeframeResult is the outcome of scoring one trailing window.
// RSI and MACD are NaN when the window was too short to compute them;
// Diagnostic is set when the window degraded to the neutral default
// because of a scoring fault.
type TimeframeResult struct {
	Signal            Signal
	PriceChangePct    float64
	ConfidencePct     float64
	ExpirationMinutes int
	RSI               float64
	MACD              float64
	BollingerPosition BollingerPosition
	Diagnostic        string
}

// NeutralTimeframeResult is the deliberate default for windows that
// cannot be scored: NEUTRAL at baseline confidence, indicators unset.
func NeutralTimeframeResult(minutes int) TimeframeResult {
	return TimeframeResult{
		Signal:            SignalNeutral,
		ConfidencePct:     50,
		ExpirationMinutes: minutes,
		RSI:               math.NaN(),
		MACD:              math.NaN(),
	}
}

// MarketAnalysis is the analyzer's top-level output: one result per
// configured window plus the latest price snapshot.
type MarketAnalysis struct {
	Symbol       string
	CurrentPrice float64
	Timeframes   map[int]TimeframeResult
	Timestamp    time.Time
}

// SortedWindows returns the analyzed window lengths in ascending order.
// Presentation layers rely on this for a stable timeframe order.
func (m *MarketAnalysis) SortedWindows() []int {
	out := make([]int, 0, len(m.Timeframes))
	for minutes := range m.Timeframes {
		out = append(out, minutes)
	}
	sort.Ints(out)
	return out
}
