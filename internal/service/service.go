package service

import (
	"market-analyzer/config"
	"market-analyzer/internal/contract"
	"market-analyzer/pkg/cache"
	"market-analyzer/pkg/logger"
	"market-analyzer/pkg/telegram"
)

type Service struct {
	AlertService     AlertService
	AnalysisService  AnalysisService
	SchedulerService SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	provider contract.SeriesProvider,
	inmemoryCache cache.Cache,
	telegram *telegram.Client,
) *Service {
	alertService := NewAlertService(cfg, log, telegram, inmemoryCache)
	analysisService := NewAnalysisService(cfg, log, provider, inmemoryCache, alertService)
	schedulerService := NewSchedulerService(cfg, log, analysisService)

	return &Service{
		AlertService:     alertService,
		AnalysisService:  analysisService,
		SchedulerService: schedulerService,
	}
}
