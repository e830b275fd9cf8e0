package monitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"market-analyzer/config"
	"market-analyzer/pkg/httpclient"
	"market-analyzer/pkg/logger"
)

func testMonitorConfig(probeURL string) *config.Config {
	return &config.Config{
		Monitor: config.MonitorConfig{
			Enabled:    true,
			ProbeURL:   probeURL,
			Interval:   10 * time.Millisecond,
			Timeout:    time.Second,
			MaxRetries: 2,
			RetryDelay: time.Millisecond,
		},
	}
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	assert.NoError(t, err)
	return log
}

func newTestMonitor(t *testing.T, handler http.HandlerFunc) *Monitor {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := testMonitorConfig(srv.URL)
	client := httpclient.New(srv.URL, cfg.Monitor.Timeout)
	return New(cfg, testLogger(t), client)
}

func TestMonitor_CheckRecoversWithinRetries(t *testing.T) {
	var hits int32
	m := newTestMonitor(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	assert.True(t, m.Check(context.Background()))

	status := m.Status()
	assert.True(t, status.Healthy)
	assert.Equal(t, uint64(1), status.Checks)
	assert.Equal(t, uint64(0), status.Failures)
	assert.Empty(t, status.LastError)
	assert.False(t, status.LastCheck.IsZero())
}

func TestMonitor_CheckFailsThenHeals(t *testing.T) {
	var broken atomic.Bool
	broken.Store(true)
	m := newTestMonitor(t, func(w http.ResponseWriter, r *http.Request) {
		if broken.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	assert.False(t, m.Check(context.Background()))

	status := m.Status()
	assert.False(t, status.Healthy)
	assert.Equal(t, uint64(1), status.Checks)
	assert.Equal(t, uint64(1), status.Failures)
	assert.Contains(t, status.LastError, "status 502")

	broken.Store(false)
	assert.True(t, m.Check(context.Background()))

	status = m.Status()
	assert.True(t, status.Healthy)
	assert.Equal(t, uint64(2), status.Checks)
	assert.Equal(t, uint64(1), status.Failures)
	assert.Empty(t, status.LastError)
}

func TestMonitor_StartProbesOnInterval(t *testing.T) {
	m := newTestMonitor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	m.Start(ctx)

	assert.Eventually(t, func() bool {
		return m.Status().Checks >= 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	m.Stop()
}

func TestMonitor_StartDisabledIsNoop(t *testing.T) {
	cfg := &config.Config{Monitor: config.MonitorConfig{Enabled: false}}
	m := New(cfg, testLogger(t), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m.Start(ctx)
	m.Stop()

	assert.Equal(t, uint64(0), m.Status().Checks)
}
