package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/robfig/cron/v3"

	"market-analyzer/config"
	"market-analyzer/pkg/logger"
	"market-analyzer/pkg/utils"
)

type SchedulerService interface {
	// Start registers the analysis run on the configured cron spec and
	// starts the runner.
	Start(ctx context.Context) error
	// Stop halts the runner and waits for an in-flight run to finish.
	Stop()
	// Execute performs one analysis run over all configured symbols.
	Execute(ctx context.Context) error
}

type schedulerService struct {
	cfg      *config.Config
	log      *logger.Logger
	analysis AnalysisService
	cron     *cron.Cron
	running  atomic.Bool
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	analysis AnalysisService,
) SchedulerService {
	parser := cron.NewParser(
		cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)
	return &schedulerService{
		cfg:      cfg,
		log:      log,
		analysis: analysis,
		cron:     cron.New(cron.WithParser(parser)),
	}
}

func (s *schedulerService) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.cfg.Scheduler.CronSpec, func() {
		// A slow run must not stack onto the next tick.
		if !s.running.CompareAndSwap(false, true) {
			s.log.WarnContext(ctx, "Previous analysis run still in progress, skipping tick")
			return
		}

		utils.GoSafe(func() {
			defer s.running.Store(false)

			runCtx, cancel := context.WithTimeout(ctx, s.cfg.Scheduler.TimeoutDuration)
			defer cancel()

			if err := s.Execute(runCtx); err != nil {
				s.log.ErrorContextWithAlert(runCtx, "Scheduled analysis run failed", logger.ErrorField(err))
			}
		})
	})
	if err != nil {
		return fmt.Errorf("failed to schedule analysis run: %w", err)
	}

	s.cron.Start()
	s.log.InfoContext(ctx, "Scheduler started",
		logger.StringField("cron_spec", s.cfg.Scheduler.CronSpec),
		logger.DurationField("timeout", s.cfg.Scheduler.TimeoutDuration),
	)
	return nil
}

func (s *schedulerService) Execute(ctx context.Context) error {
	return s.analysis.RunAll(ctx)
}

func (s *schedulerService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("Scheduler stopped")
}
