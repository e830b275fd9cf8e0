package utils

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"market-analyzer/pkg/logger"
)

func TestRoundTo(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{v: 74.00000000000004, places: 1, want: 74.0},
		{v: 0.06481234, places: 4, want: 0.0648},
		{v: 99.999, places: 2, want: 100.0},
		{v: -0.05615, places: 4, want: -0.0562},
		{v: 0, places: 2, want: 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, RoundTo(tt.v, tt.places), 1e-12, "RoundTo(%v, %d)", tt.v, tt.places)
	}

	assert.True(t, math.IsNaN(RoundTo(math.NaN(), 2)))
	assert.True(t, math.IsInf(RoundTo(math.Inf(1), 2), 1))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "+0.4%", FormatPercentage(0.4006))
	assert.Equal(t, "-1.4%", FormatPercentage(-1.391))
	assert.Equal(t, "+0.0%", FormatPercentage(0))
}

func TestToPointer(t *testing.T) {
	v := ToPointer(1.0858)
	assert.Equal(t, 1.0858, *v)
}

func TestGoSafe_RecoversPanic(t *testing.T) {
	done := make(chan struct{})
	GoSafe(func() {
		defer close(done)
		panic("boom")
	})
	<-done
}

func TestShouldContinue(t *testing.T) {
	log, err := logger.New("info", "console")
	assert.NoError(t, err)

	assert.True(t, ShouldContinue(context.Background(), log))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, ShouldContinue(ctx, log))
}
