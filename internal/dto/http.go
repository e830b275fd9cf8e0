package dto

import (
	"net/http"
	"time"
)

type BaseResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func NewBaseResponse(code int, message string, data interface{}) *BaseResponse {
	return &BaseResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func NewBadRequestResponse(message string) *BaseResponse {
	return NewBaseResponse(http.StatusBadRequest, message, nil)
}

func NewSuccessResponse(message string, data interface{}) *BaseResponse {
	return NewBaseResponse(http.StatusOK, message, data)
}

// HealthResponse answers the liveness probe.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ProbeStatus reports the outbound connectivity monitor.
type ProbeStatus struct {
	Healthy   bool       `json:"healthy"`
	LastCheck *time.Time `json:"last_check,omitempty"`
	LastError string     `json:"last_error,omitempty"`
	Checks    uint64     `json:"checks"`
	Failures  uint64     `json:"failures"`
}

// SymbolAnalysisStatus summarizes the freshest cached analysis for one
// symbol.
type SymbolAnalysisStatus struct {
	Symbol       string    `json:"symbol"`
	CurrentPrice float64   `json:"current_price"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type StatusResponse struct {
	Status        string                 `json:"status"`
	UptimeSeconds float64                `json:"uptime_seconds"`
	MemoryMB      float64                `json:"memory_mb"`
	Goroutines    int                    `json:"goroutines"`
	Probe         *ProbeStatus           `json:"probe,omitempty"`
	Analyses      []SymbolAnalysisStatus `json:"analyses,omitempty"`
}
