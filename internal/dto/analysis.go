package dto

import (
	"math"
	"time"

	"market-analyzer/internal/model"
	"market-analyzer/pkg/utils"
)

// CandlePayload is one OHLCV sample in an analysis request. Timestamps
// are unix seconds.
type CandlePayload struct {
	Timestamp int64   `json:"timestamp" validate:"required"`
	Open      float64 `json:"open" validate:"gt=0"`
	High      float64 `json:"high" validate:"gt=0"`
	Low       float64 `json:"low" validate:"gt=0"`
	Close     float64 `json:"close" validate:"gt=0"`
	Volume    float64 `json:"volume" validate:"gte=0"`
}

type AnalyzeRequest struct {
	Symbol  string          `json:"symbol" validate:"required"`
	Locale  string          `json:"locale" validate:"omitempty,oneof=tg ru en"`
	Candles []CandlePayload `json:"candles" validate:"required,min=1,dive"`
}

func (r *AnalyzeRequest) ToPriceSeries() model.PriceSeries {
	series := make(model.PriceSeries, len(r.Candles))
	for i, c := range r.Candles {
		series[i] = model.Candle{
			Timestamp: time.Unix(c.Timestamp, 0).UTC(),
			Open:      c.Open,
			High:      c.High,
			Low:       c.Low,
			Close:     c.Close,
			Volume:    c.Volume,
		}
	}
	return series
}

// TimeframePayload is one scored window on the wire. RSI and MACD are
// omitted for windows too short to compute them.
type TimeframePayload struct {
	Minutes           int                     `json:"minutes"`
	Signal            model.Signal            `json:"signal"`
	PriceChangePct    float64                 `json:"price_change_pct"`
	ConfidencePct     float64                 `json:"confidence_pct"`
	ExpirationMinutes int                     `json:"expiration_minutes"`
	RSI               *float64                `json:"rsi,omitempty"`
	MACD              *float64                `json:"macd,omitempty"`
	BollingerPosition model.BollingerPosition `json:"bb_position,omitempty"`
	Diagnostic        string                  `json:"diagnostic,omitempty"`
}

type AnalysisResponse struct {
	Symbol       string             `json:"symbol"`
	CurrentPrice float64            `json:"current_price"`
	Timeframes   []TimeframePayload `json:"timeframes"`
	Timestamp    time.Time          `json:"timestamp"`
}

// NewAnalysisResponse flattens an analysis into its wire shape with
// timeframes in ascending window order.
func NewAnalysisResponse(analysis *model.MarketAnalysis) *AnalysisResponse {
	out := &AnalysisResponse{
		Symbol:       analysis.Symbol,
		CurrentPrice: analysis.CurrentPrice,
		Timeframes:   make([]TimeframePayload, 0, len(analysis.Timeframes)),
		Timestamp:    analysis.Timestamp,
	}
	for _, minutes := range analysis.SortedWindows() {
		tf := analysis.Timeframes[minutes]
		out.Timeframes = append(out.Timeframes, TimeframePayload{
			Minutes:           minutes,
			Signal:            tf.Signal,
			PriceChangePct:    tf.PriceChangePct,
			ConfidencePct:     tf.ConfidencePct,
			ExpirationMinutes: tf.ExpirationMinutes,
			RSI:               finiteOrNil(tf.RSI),
			MACD:              finiteOrNil(tf.MACD),
			BollingerPosition: tf.BollingerPosition,
			Diagnostic:        tf.Diagnostic,
		})
	}
	return out
}

// finiteOrNil drops NaN and infinite values so the payload always
// serializes to valid JSON.
func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return utils.ToPointer(v)
}

// SignalAlert is the outbound notification for one directional signal.
type SignalAlert struct {
	Symbol         string       `json:"symbol"`
	Minutes        int          `json:"minutes"`
	Signal         model.Signal `json:"signal"`
	ConfidencePct  float64      `json:"confidence_pct"`
	PriceChangePct float64      `json:"price_change_pct"`
	Price          float64      `json:"price"`
	At             time.Time    `json:"at"`
}
