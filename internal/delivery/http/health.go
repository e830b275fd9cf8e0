package http

import (
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"

	"market-analyzer/internal/dto"
	"market-analyzer/pkg/utils"
)

// Health is the liveness probe.
func (h *HttpAPIHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	})
}

// Status reports process vitals, the connectivity probe and the age of
// each cached analysis.
func (h *HttpAPIHandler) Status(c echo.Context) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	resp := dto.StatusResponse{
		Status:        "ok",
		UptimeSeconds: utils.RoundTo(time.Since(h.startedAt).Seconds(), 1),
		MemoryMB:      utils.RoundTo(float64(mem.Alloc)/1024/1024, 2),
		Goroutines:    runtime.NumGoroutine(),
	}

	if h.monitor != nil {
		probe := h.monitor.Status()
		probeStatus := dto.ProbeStatus{
			Healthy:   probe.Healthy,
			LastError: probe.LastError,
			Checks:    probe.Checks,
			Failures:  probe.Failures,
		}
		if !probe.LastCheck.IsZero() {
			probeStatus.LastCheck = utils.ToPointer(probe.LastCheck)
		}
		if !probe.Healthy {
			resp.Status = "degraded"
		}
		resp.Probe = &probeStatus
	}

	for _, symbol := range h.cfg.Analyzer.Symbols {
		if analysis, ok := h.service.AnalysisService.Latest(symbol); ok {
			resp.Analyses = append(resp.Analyses, dto.SymbolAnalysisStatus{
				Symbol:       analysis.Symbol,
				CurrentPrice: analysis.CurrentPrice,
				UpdatedAt:    analysis.Timestamp,
			})
		}
	}

	return c.JSON(http.StatusOK, resp)
}
