package engine

import (
	"fmt"
	"math"

	"market-analyzer/internal/model"
	"market-analyzer/pkg/utils"
)

// Scoring model constants. Thresholds are part of the behavioral
// contract and must not drift.
const (
	emaFastPeriod   = 7
	emaSlowPeriod   = 21
	rsiPeriod       = 14
	bollingerPeriod = 20

	emaSpreadThresholdPct = 0.05
	signalThreshold       = 1.2
	volumeWeight          = 0.2
	baseConfidence        = 50.0
	maxConfidence         = 95.0
	confidencePerPoint    = 5.0
)

// volumeStrength maps the last-sample volume ratio onto a 0..3 weight.
func volumeStrength(ratio float64) int {
	switch {
	case ratio > 1.5:
		return 3
	case ratio > 1.2:
		return 2
	case ratio > 1.0:
		return 1
	default:
		return 0
	}
}

// decide maps a trend strength onto a signal and its confidence. The
// threshold is inclusive: a magnitude of exactly 1.2 is directional.
func decide(strength float64) (model.Signal, float64) {
	confidence := baseConfidence + math.Abs(strength)*confidencePerPoint
	confidence = math.Min(maxConfidence, math.Max(baseConfidence, confidence))
	if math.Abs(strength) >= signalThreshold {
		if strength > 0 {
			return model.SignalBuy, confidence
		}
		return model.SignalSell, confidence
	}
	return model.SignalNeutral, confidence
}

// scoreWindow scores the trailing minutes samples of series. A series
// shorter than the window yields the neutral default with no error. A
// computational fault never escapes: it degrades the window to the
// neutral default and is reported through the returned error for the
// caller's diagnostics sink.
func scoreWindow(series model.PriceSeries, minutes int) (result model.TimeframeResult, err error) {
	result = model.NeutralTimeframeResult(minutes)
	if len(series) < minutes {
		return result, nil
	}

	defer func() {
		if r := recover(); r != nil {
			result = model.NeutralTimeframeResult(minutes)
			result.Diagnostic = fmt.Sprintf("scoring fault: %v", r)
			err = fmt.Errorf("scoring %d-minute window: %v", minutes, r)
		}
	}()

	window := series.Tail(minutes)
	closes := window.Closes()
	volumes := window.Volumes()
	last := len(closes) - 1

	priceChangePct := (closes[last] - closes[0]) / closes[0] * 100

	volumeRatio := 1.0
	if avg := mean(volumes); avg > 0 {
		volumeRatio = volumes[last] / avg
	}
	volStrength := volumeStrength(volumeRatio)

	emaFast := EMA(closes, emaFastPeriod)
	emaSlow := EMA(closes, emaSlowPeriod)
	rsi := RSI(closes, rsiPeriod)
	macd, signalLine := MACD(closes)
	upper, lower := Bollinger(closes, bollingerPeriod)

	// The MACD momentum rule reads one sample back.
	if last < 1 {
		result.Diagnostic = "macd trail shorter than two samples"
		return result, fmt.Errorf("scoring %d-minute window: macd trail shorter than two samples", minutes)
	}

	var vector []int

	// EMA spread, in percent of the slow side.
	emaDiffPct := (emaFast[last] - emaSlow[last]) / emaSlow[last] * 100
	switch {
	case emaDiffPct > emaSpreadThresholdPct:
		vector = append(vector, 1)
	case emaDiffPct < -emaSpreadThresholdPct:
		vector = append(vector, -1)
	}

	// MACD against its signal line, doubled when momentum agrees. A
	// zero difference counts against the trend.
	macdDiff := macd[last] - signalLine[last]
	macdTrend := macd[last] - macd[last-1]
	if macdDiff > 0 {
		vector = append(vector, 1)
		if macdTrend > 0 {
			vector = append(vector, 1)
		}
	} else {
		vector = append(vector, -1)
		if macdTrend < 0 {
			vector = append(vector, -1)
		}
	}

	// RSI bands. A NaN RSI (short or flat window) fires nothing.
	lastRSI := rsi[last]
	switch {
	case lastRSI < 35:
		vector = append(vector, 2, 1)
	case lastRSI > 65:
		vector = append(vector, -2, -1)
	case lastRSI < 45:
		vector = append(vector, 1)
	case lastRSI > 55:
		vector = append(vector, -1)
	}

	// Bollinger band position. NaN bands (short window) read as normal.
	position := model.BollingerNormal
	switch {
	case closes[last] < lower[last]:
		vector = append(vector, 2)
		position = model.BollingerOversold
	case closes[last] > upper[last]:
		vector = append(vector, -2)
		position = model.BollingerOverbought
	}

	sum := 0
	for _, v := range vector {
		sum += v
	}
	strength := float64(sum) * (1 + float64(volStrength)*volumeWeight)
	signal, confidence := decide(strength)

	return model.TimeframeResult{
		Signal:            signal,
		PriceChangePct:    priceChangePct,
		ConfidencePct:     utils.RoundTo(confidence, 1),
		ExpirationMinutes: minutes,
		RSI:               utils.RoundTo(lastRSI, 2),
		MACD:              utils.RoundTo(macd[last], 4),
		BollingerPosition: position,
	}, nil
}
