package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignal_Label(t *testing.T) {
	assert.Equal(t, "🟢 BUY", SignalBuy.Label())
	assert.Equal(t, "🔴 SELL", SignalSell.Label())
	assert.Equal(t, "🟡 NEUTRAL", SignalNeutral.Label())
	assert.Equal(t, "HOLD", Signal("HOLD").Label())
}

func TestNeutralTimeframeResult(t *testing.T) {
	got := NeutralTimeframeResult(15)
	assert.Equal(t, SignalNeutral, got.Signal)
	assert.Equal(t, 50.0, got.ConfidencePct)
	assert.Equal(t, 15, got.ExpirationMinutes)
	assert.Equal(t, 0.0, got.PriceChangePct)
	assert.True(t, math.IsNaN(got.RSI))
	assert.True(t, math.IsNaN(got.MACD))
	assert.Empty(t, got.BollingerPosition)
	assert.Empty(t, got.Diagnostic)
}

func TestMarketAnalysis_SortedWindows(t *testing.T) {
	m := &MarketAnalysis{
		Timeframes: map[int]TimeframeResult{
			30: NeutralTimeframeResult(30),
			1:  NeutralTimeframeResult(1),
			15: NeutralTimeframeResult(15),
			5:  NeutralTimeframeResult(5),
		},
	}
	assert.Equal(t, []int{1, 5, 15, 30}, m.SortedWindows())
}

func TestAnalysisError(t *testing.T) {
	inner := assert.AnError
	err := NewAnalysisError(ErrCodeTimeout, "попробуйте позже", inner)
	assert.ErrorContains(t, err, string(ErrCodeTimeout))
	assert.ErrorIs(t, err, inner)

	aerr, ok := AsAnalysisError(err)
	assert.True(t, ok)
	assert.Equal(t, ErrCodeTimeout, aerr.Code)
	assert.Equal(t, "попробуйте позже", aerr.Message)

	_, ok = AsAnalysisError(assert.AnError)
	assert.False(t, ok)

	bare := NewAnalysisError(ErrCodeNoData, "", nil)
	assert.Equal(t, string(ErrCodeNoData), bare.Error())
}
