package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"market-analyzer/internal/locale"
	"market-analyzer/internal/model"
)

type captureSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *captureSink) Record(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *captureSink) byLevel(level string) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, ev := range s.events {
		if ev.Level == level {
			out = append(out, ev)
		}
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	a := New("EURUSD", nil, nil, nil)
	assert.Equal(t, "EURUSD", a.Symbol())
	assert.Equal(t, DefaultWindows, a.Windows())

	// The returned slice is a copy; callers cannot mutate the analyzer.
	windows := a.Windows()
	windows[0] = 999
	assert.Equal(t, DefaultWindows, a.Windows())
}

func TestNew_DropsNonPositiveWindows(t *testing.T) {
	a := New("EURUSD", []int{0, -3, 5}, nil, nil)
	assert.Equal(t, []int{5}, a.Windows())

	all := New("EURUSD", []int{0, -1}, nil, nil)
	assert.Equal(t, DefaultWindows, all.Windows())
}

func TestAnalyzer_EmptySeries(t *testing.T) {
	a := New("EURUSD", nil, locale.For("tg"), nil)

	analysis, err := a.Analyze(nil)
	assert.Nil(t, analysis)
	aerr, ok := model.AsAnalysisError(err)
	assert.True(t, ok)
	assert.Equal(t, model.ErrCodeNoData, aerr.Code)
	assert.Equal(t, locale.For("tg").Get(model.ErrCodeNoData), aerr.Message)
}

func TestAnalyzer_DegradedWindowKeepsSiblings(t *testing.T) {
	sink := &captureSink{}
	a := New("EURUSD", nil, nil, sink)

	series := risingSeries()
	analysis, err := a.Analyze(series)
	assert.NoError(t, err)
	assert.Equal(t, "EURUSD", analysis.Symbol)
	assert.Equal(t, series[len(series)-1].Close, analysis.CurrentPrice)
	assert.Len(t, analysis.Timeframes, len(DefaultWindows))

	// The 1-minute window cannot feed the MACD momentum rule and
	// degrades; every other window keeps its real score.
	degraded := analysis.Timeframes[1]
	assert.Equal(t, model.SignalNeutral, degraded.Signal)
	assert.Equal(t, 50.0, degraded.ConfidencePct)
	assert.NotEmpty(t, degraded.Diagnostic)

	breakout := analysis.Timeframes[5]
	assert.Equal(t, model.SignalBuy, breakout.Signal)
	assert.InDelta(t, 74.0, breakout.ConfidencePct, 1e-9)

	warns := sink.byLevel(LevelWarn)
	assert.Len(t, warns, 1)
	assert.Equal(t, "timeframe degraded to neutral", warns[0].Message)
	assert.Equal(t, 1, warns[0].Minutes)
	assert.Equal(t, "EURUSD", warns[0].Symbol)
	assert.Error(t, warns[0].Err)
}

func TestAnalyzer_SortedWindowOrder(t *testing.T) {
	a := New("EURUSD", []int{30, 5, 15}, nil, nil)

	analysis, err := a.Analyze(risingSeries())
	assert.NoError(t, err)
	assert.Equal(t, []int{5, 15, 30}, analysis.SortedWindows())
}

func TestAnalyzer_ClockInjection(t *testing.T) {
	fixed := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	a := New("EURUSD", []int{5}, nil, nil).WithClock(func() time.Time { return fixed })

	analysis, err := a.Analyze(risingSeries())
	assert.NoError(t, err)
	assert.Equal(t, fixed, analysis.Timestamp)
}

func TestAnalyzer_SameSeriesSameAnalysis(t *testing.T) {
	fixed := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return fixed }
	a := New("EURUSD", []int{5, 30}, nil, nil).WithClock(clock)
	b := New("EURUSD", []int{5, 30}, nil, nil).WithClock(clock)

	series := risingSeries()
	first, err1 := a.Analyze(series)
	second, err2 := b.Analyze(series)
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, first.Timeframes[30], second.Timeframes[30])
	assert.Equal(t, first.CurrentPrice, second.CurrentPrice)
}

type explodingSink struct{}

func (explodingSink) Record(ev Event) {
	if ev.Level == LevelDebug {
		panic("sink exploded")
	}
}

func TestAnalyzer_FaultBecomesGeneralError(t *testing.T) {
	a := New("EURUSD", []int{5}, locale.For("en"), explodingSink{})

	analysis, err := a.Analyze(risingSeries())
	assert.Nil(t, analysis)
	aerr, ok := model.AsAnalysisError(err)
	assert.True(t, ok)
	assert.Equal(t, model.ErrCodeGeneral, aerr.Code)
	assert.Equal(t, locale.For("en").Get(model.ErrCodeGeneral), aerr.Message)
	assert.ErrorContains(t, err, "sink exploded")
}
