// Package monitor keeps an eye on outbound connectivity by probing a
// configured URL on an interval. The last known state feeds the status
// endpoint; a health flip to unhealthy raises a log alert.
package monitor

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"market-analyzer/config"
	"market-analyzer/pkg/httpclient"
	"market-analyzer/pkg/logger"
	"market-analyzer/pkg/utils"
)

// Status is a snapshot of the probe state. LastCheck is zero until the
// first probe completes.
type Status struct {
	Healthy   bool
	LastCheck time.Time
	LastError string
	Checks    uint64
	Failures  uint64
}

type Monitor struct {
	cfg    *config.Config
	log    *logger.Logger
	client httpclient.HTTPClient

	mu     sync.RWMutex
	status Status

	wg sync.WaitGroup
}

func New(cfg *config.Config, log *logger.Logger, client httpclient.HTTPClient) *Monitor {
	return &Monitor{
		cfg:    cfg,
		log:    log,
		client: client,
		status: Status{Healthy: true},
	}
}

// Start launches the probe loop. It is a no-op when the monitor is
// disabled or no probe URL is configured.
func (m *Monitor) Start(ctx context.Context) {
	if !m.cfg.Monitor.Enabled || m.cfg.Monitor.ProbeURL == "" {
		m.log.Info("Connectivity monitor disabled")
		return
	}

	m.log.Info("Connectivity monitor started",
		logger.StringField("probe_url", m.cfg.Monitor.ProbeURL),
		logger.DurationField("interval", m.cfg.Monitor.Interval),
	)

	m.wg.Add(1)
	utils.GoSafe(func() {
		defer m.wg.Done()

		ticker := time.NewTicker(m.cfg.Monitor.Interval)
		defer ticker.Stop()

		m.Check(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Check(ctx)
			}
		}
	})
}

// Check probes the endpoint once, retrying failed attempts with a
// linearly growing delay. It reports whether the probe succeeded; the
// recorded state reflects the final attempt.
func (m *Monitor) Check(ctx context.Context) bool {
	retries := m.cfg.Monitor.MaxRetries
	if retries < 1 {
		retries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		cctx, cancel := context.WithTimeout(ctx, m.cfg.Monitor.Timeout)
		resp, err := m.client.Get(cctx, "", nil, nil)
		cancel()

		switch {
		case err != nil:
			lastErr = err
		case resp.StatusCode != http.StatusOK:
			lastErr = fmt.Errorf("probe returned status %d", resp.StatusCode)
		default:
			m.record(nil)
			return true
		}

		m.log.WarnContext(ctx, "Probe attempt failed",
			logger.ErrorField(lastErr),
			logger.IntField("attempt", attempt),
		)

		if attempt == retries {
			break
		}
		select {
		case <-ctx.Done():
			m.record(ctx.Err())
			return false
		case <-time.After(m.cfg.Monitor.RetryDelay * time.Duration(attempt)):
		}
	}

	m.record(lastErr)
	return false
}

func (m *Monitor) record(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.status.Checks++
	m.status.LastCheck = time.Now()

	if err == nil {
		if !m.status.Healthy {
			m.log.Info("Probe healthy again",
				logger.IntField("failures", int(m.status.Failures)),
			)
		}
		m.status.Healthy = true
		m.status.LastError = ""
		return
	}

	m.status.Failures++
	m.status.LastError = err.Error()
	if m.status.Healthy {
		m.log.Error("Probe unhealthy", logger.ErrorField(err), logger.Alert())
	}
	m.status.Healthy = false
}

// Status returns a copy of the probe state.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Stop waits for the probe loop to exit. Cancel the context passed to
// Start first.
func (m *Monitor) Stop() {
	m.wg.Wait()
}
