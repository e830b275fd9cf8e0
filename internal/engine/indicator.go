package engine

import "math"

// MACD component periods, fixed by the scoring model.
const (
	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9
)

// EMA computes an exponential moving average with smoothing factor
// 2/(period+1), seeded with the first sample ("adjust=false"
// semantics). The incremental form keeps a constant series exactly
// constant, so downstream differences of two EMAs are exactly zero.
func EMA(series []float64, period int) []float64 {
	if len(series) == 0 {
		return nil
	}
	alpha := 2.0 / (float64(period) + 1.0)
	out := make([]float64, len(series))
	e := series[0]
	out[0] = e
	for i := 1; i < len(series); i++ {
		e += alpha * (series[i] - e)
		out[i] = e
	}
	return out
}

// RSI computes the relative strength index from simple rolling means of
// gains and losses over period successive differences. Positions before
// the first full window are NaN. When the average loss is zero the
// index saturates at 100 if there were any gains; a perfectly flat
// window stays NaN so no threshold rule can fire on it.
func RSI(series []float64, period int) []float64 {
	out := nanSlice(len(series))
	if period <= 0 || len(series) <= period {
		return out
	}
	gains := make([]float64, len(series))
	losses := make([]float64, len(series))
	var gainSum, lossSum float64
	for i := 1; i < len(series); i++ {
		d := series[i] - series[i-1]
		if d > 0 {
			gains[i] = d
		} else {
			losses[i] = -d
		}
		gainSum += gains[i]
		lossSum += losses[i]
		if i > period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		if i < period {
			continue
		}
		avgGain := gainSum / float64(period)
		avgLoss := lossSum / float64(period)
		switch {
		case avgLoss == 0 && avgGain > 0:
			out[i] = 100
		case avgLoss == 0:
			// flat window, undefined
		default:
			rs := avgGain / avgLoss
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out
}

// MACD returns the MACD line (fast EMA minus slow EMA) and its signal
// line (EMA of the MACD line). Both are defined from the first sample.
func MACD(series []float64) (macd, signal []float64) {
	fast := EMA(series, macdFastPeriod)
	slow := EMA(series, macdSlowPeriod)
	macd = make([]float64, len(series))
	for i := range macd {
		macd[i] = fast[i] - slow[i]
	}
	signal = EMA(macd, macdSignalPeriod)
	return macd, signal
}

// Bollinger returns the upper and lower bands: rolling mean ± 2 rolling
// sample standard deviations. Positions before the first full window
// are NaN. A constant window collapses both bands onto the mean.
func Bollinger(series []float64, period int) (upper, lower []float64) {
	upper = nanSlice(len(series))
	lower = nanSlice(len(series))
	if period <= 1 || len(series) < period {
		return upper, lower
	}
	for i := period - 1; i < len(series); i++ {
		window := series[i-period+1 : i+1]
		m := mean(window)
		var ss float64
		for _, v := range window {
			d := v - m
			ss += d * d
		}
		sd := math.Sqrt(ss / float64(period-1))
		upper[i] = m + 2*sd
		lower[i] = m - 2*sd
	}
	return upper, lower
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
