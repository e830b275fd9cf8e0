package http

import (
	"context"
	"time"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"market-analyzer/config"
	"market-analyzer/internal/monitor"
	"market-analyzer/internal/service"
	"market-analyzer/pkg/logger"
	"market-analyzer/pkg/middleware"
)

type HttpAPIHandler struct {
	cfg       *config.Config
	log       *logger.Logger
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
	monitor   *monitor.Monitor
	startedAt time.Time
}

func NewHttpAPIHandler(
	ctx context.Context,
	cfg *config.Config,
	log *logger.Logger,
	echo *echo.Echo,
	validator *goValidator.Validate,
	service *service.Service,
	monitor *monitor.Monitor,
) *HttpAPIHandler {
	return &HttpAPIHandler{
		cfg:       cfg,
		log:       log,
		echo:      echo,
		validator: validator,
		service:   service,
		monitor:   monitor,
		startedAt: time.Now(),
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	h.echo.GET("/health", h.Health)
	h.echo.GET("/status", h.Status)

	base := h.echo.Group("/api", middleware.NewRateLimiterMiddleware(h.cfg.API.RateLimit, h.cfg.API.RateBurst))
	h.SetupAnalysis(base)
}
