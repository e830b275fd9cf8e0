package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"market-analyzer/config"
	"market-analyzer/internal/contract"
	"market-analyzer/internal/dto"
	"market-analyzer/internal/model"
	"market-analyzer/internal/monitor"
	"market-analyzer/internal/service"
	"market-analyzer/pkg/cache"
	"market-analyzer/pkg/logger"
)

type fakeProvider struct {
	series map[string]model.PriceSeries
}

func (p *fakeProvider) Series(_ context.Context, symbol string, _ int) (model.PriceSeries, error) {
	series, ok := p.series[symbol]
	if !ok {
		return nil, contract.ErrNoData
	}
	return series, nil
}

func testHandlerConfig() *config.Config {
	return &config.Config{
		API: config.API{Port: 8080, RateLimit: 100, RateBurst: 100},
		Analyzer: config.AnalyzerConfig{
			Symbols:       []string{"HTTP-EURUSD"},
			Windows:       []int{1, 5, 15, 30},
			Locale:        "en",
			WarmupSamples: 5,
		},
		Scheduler: config.SchedulerConfig{
			CronSpec:        "0 * * * * *",
			MaxConcurrency:  2,
			TimeoutDuration: 30 * time.Second,
		},
		Cache: config.CacheConfig{
			DefaultExpiration: 5 * time.Minute,
			CleanupInterval:   10 * time.Minute,
			ResultTTL:         time.Minute,
		},
		Telegram: config.TelegramConfig{
			MinAlertConfidence:        70,
			MaxAlertsPerMinute:        30,
			MaxGlobalRequestPerSecond: 30,
		},
	}
}

func newTestHandler(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := testHandlerConfig()
	log, err := logger.New("error", "console")
	assert.NoError(t, err)

	provider := &fakeProvider{series: map[string]model.PriceSeries{
		"HTTP-EURUSD": risingSeries(),
	}}
	inmemoryCache := cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval)
	services := service.NewService(cfg, log, provider, inmemoryCache, nil)

	e := echo.New()
	handler := NewHttpAPIHandler(context.Background(), cfg, log, e, goValidator.New(), services, monitor.New(cfg, log, nil))
	handler.SetupRoutes()
	return e
}

// risingSeries drifts up 0.1% per minute with a final volume spike,
// turning the 5 minute window into a BUY.
func risingSeries() model.PriceSeries {
	base := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	series := make(model.PriceSeries, 30)
	price := 100.0
	for i := range series {
		volume := 1000.0
		if i == len(series)-1 {
			volume = 2000.0
		}
		series[i] = model.Candle{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Open:      price,
			High:      price,
			Low:       price,
			Close:     price,
			Volume:    volume,
		}
		price *= 1.001
	}
	return series
}

func analyzeRequestBody(t *testing.T) []byte {
	t.Helper()

	series := risingSeries()
	req := dto.AnalyzeRequest{Symbol: "HTTP-ADHOC", Locale: "en"}
	for _, candle := range series {
		req.Candles = append(req.Candles, dto.CandlePayload{
			Timestamp: candle.Timestamp.Unix(),
			Open:      candle.Open,
			High:      candle.High,
			Low:       candle.Low,
			Close:     candle.Close,
			Volume:    candle.Volume,
		})
	}

	body, err := json.Marshal(req)
	assert.NoError(t, err)
	return body
}

func doRequest(e *echo.Echo, method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestHandler(t)

	rec := doRequest(e, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.HealthResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestStatusEndpoint(t *testing.T) {
	e := newTestHandler(t)

	rec := doRequest(e, http.MethodGet, "/status", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.StatusResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Greater(t, resp.Goroutines, 0)
	assert.NotNil(t, resp.Probe)
}

func TestAnalyzeEndpoint(t *testing.T) {
	e := newTestHandler(t)

	rec := doRequest(e, http.MethodPost, "/api/v1/analysis", analyzeRequestBody(t))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Code    int                  `json:"code"`
		Message string               `json:"message"`
		Data    dto.AnalysisResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "HTTP-ADHOC", resp.Data.Symbol)

	minutes := make([]int, 0, len(resp.Data.Timeframes))
	byMinutes := make(map[int]dto.TimeframePayload)
	for _, tf := range resp.Data.Timeframes {
		minutes = append(minutes, tf.Minutes)
		byMinutes[tf.Minutes] = tf
	}
	assert.Equal(t, []int{1, 5, 15, 30}, minutes)

	tf5 := byMinutes[5]
	assert.Equal(t, model.SignalBuy, tf5.Signal)
	assert.Equal(t, 74.0, tf5.ConfidencePct)
	assert.Nil(t, tf5.RSI) // five samples cannot fill the RSI window

	tf15 := byMinutes[15]
	assert.NotNil(t, tf15.RSI)
	assert.Equal(t, 100.0, *tf15.RSI)

	// single-sample window degrades instead of failing the request
	tf1 := byMinutes[1]
	assert.Equal(t, model.SignalNeutral, tf1.Signal)
	assert.NotEmpty(t, tf1.Diagnostic)
}

func TestAnalyzeEndpointValidation(t *testing.T) {
	e := newTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"symbol": `},
		{"missing symbol", `{"candles":[{"timestamp":1748856600,"open":1,"high":1,"low":1,"close":1,"volume":1}]}`},
		{"empty candles", `{"symbol":"EURUSD","candles":[]}`},
		{"unknown locale", `{"symbol":"EURUSD","locale":"fr","candles":[{"timestamp":1748856600,"open":1,"high":1,"low":1,"close":1,"volume":1}]}`},
		{"non-positive close", `{"symbol":"EURUSD","candles":[{"timestamp":1748856600,"open":1,"high":1,"low":1,"close":0,"volume":1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, http.MethodPost, "/api/v1/analysis", []byte(tt.body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAnalyzeEndpointRejectsIrregularSeries(t *testing.T) {
	e := newTestHandler(t)

	// second candle breaks the fixed one-minute grid
	body := `{"symbol":"EURUSD","candles":[
		{"timestamp":1748856600,"open":1,"high":1,"low":1,"close":1,"volume":1},
		{"timestamp":1748856690,"open":1,"high":1,"low":1,"close":1,"volume":1},
		{"timestamp":1748856720,"open":1,"high":1,"low":1,"close":1,"volume":1}
	]}`

	rec := doRequest(e, http.MethodPost, "/api/v1/analysis", []byte(body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLatestEndpointMiss(t *testing.T) {
	e := newTestHandler(t)

	rec := doRequest(e, http.MethodGet, "/api/v1/analysis/HTTP-MISSING", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunThenLatestEndpoint(t *testing.T) {
	e := newTestHandler(t)

	rec := doRequest(e, http.MethodPost, "/api/v1/analysis/run", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/analysis/HTTP-EURUSD", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data dto.AnalysisResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "HTTP-EURUSD", resp.Data.Symbol)
	assert.Len(t, resp.Data.Timeframes, 4)
}
