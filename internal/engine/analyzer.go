// Package engine scores candle series into directional signals. It is
// deterministic and free of I/O: the same series always produces the
// same analysis, and diagnostics leave only through the injected Sink.
package engine

import (
	"fmt"
	"time"

	"market-analyzer/internal/locale"
	"market-analyzer/internal/model"
)

// DefaultWindows are the minute windows scored when none are configured.
var DefaultWindows = []int{1, 5, 15, 30}

// Analyzer scores one symbol across a fixed set of minute windows.
// Construct it once per symbol and language; Analyze is safe for
// concurrent use.
type Analyzer struct {
	symbol  string
	windows []int
	msgs    locale.Table
	sink    Sink
	now     func() time.Time
}

// New builds an Analyzer. Nil or empty windows fall back to
// DefaultWindows, non-positive windows are dropped, a nil sink discards
// diagnostics and a nil message table falls back to the default
// language.
func New(symbol string, windows []int, msgs locale.Table, sink Sink) *Analyzer {
	if len(windows) == 0 {
		windows = DefaultWindows
	}
	cleaned := make([]int, 0, len(windows))
	for _, w := range windows {
		if w > 0 {
			cleaned = append(cleaned, w)
		}
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, DefaultWindows...)
	}
	if sink == nil {
		sink = NopSink{}
	}
	if msgs == nil {
		msgs = locale.For(locale.DefaultLang)
	}
	return &Analyzer{
		symbol:  symbol,
		windows: cleaned,
		msgs:    msgs,
		sink:    sink,
		now:     time.Now,
	}
}

// WithClock replaces the timestamp source. It is meant for tests.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	if now != nil {
		a.now = now
	}
	return a
}

// Symbol returns the symbol this analyzer scores.
func (a *Analyzer) Symbol() string {
	return a.symbol
}

// Windows returns a copy of the configured minute windows.
func (a *Analyzer) Windows() []int {
	out := make([]int, len(a.windows))
	copy(out, a.windows)
	return out
}

// Analyze scores the series across every configured window. A window
// that cannot be scored degrades to the neutral default and is reported
// to the sink; only an empty series or an internal fault fails the
// whole analysis.
func (a *Analyzer) Analyze(series model.PriceSeries) (analysis *model.MarketAnalysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			faultErr := fmt.Errorf("analyzing %s: %v", a.symbol, r)
			a.sink.Record(Event{
				Level:   LevelError,
				Message: "market analysis fault",
				Symbol:  a.symbol,
				Err:     faultErr,
			})
			analysis = nil
			err = model.NewAnalysisError(model.ErrCodeGeneral, a.msgs.Get(model.ErrCodeGeneral), faultErr)
		}
	}()

	if len(series) == 0 {
		return nil, model.NewAnalysisError(model.ErrCodeNoData, a.msgs.Get(model.ErrCodeNoData), nil)
	}

	timeframes := make(map[int]model.TimeframeResult, len(a.windows))
	for _, minutes := range a.windows {
		result, werr := scoreWindow(series, minutes)
		if werr != nil {
			a.sink.Record(Event{
				Level:   LevelWarn,
				Message: "timeframe degraded to neutral",
				Symbol:  a.symbol,
				Minutes: minutes,
				Err:     werr,
			})
		}
		timeframes[minutes] = result
	}

	a.sink.Record(Event{
		Level:   LevelDebug,
		Message: "market analysis complete",
		Symbol:  a.symbol,
	})

	return &model.MarketAnalysis{
		Symbol:       a.symbol,
		CurrentPrice: series[len(series)-1].Close,
		Timeframes:   timeframes,
		Timestamp:    a.now(),
	}, nil
}
