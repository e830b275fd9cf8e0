package service

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"market-analyzer/config"
	"market-analyzer/internal/contract"
	"market-analyzer/internal/dto"
	"market-analyzer/pkg/cache"
	"market-analyzer/pkg/common"
	"market-analyzer/pkg/logger"
	"market-analyzer/pkg/ratelimit"
	"market-analyzer/pkg/telegram"
)

type AlertService interface {
	contract.SignalNotifier
}

// alertService delivers directional signals to Telegram. A signal that
// already fired for the same symbol, window and direction is suppressed
// until the cooldown expires, and each symbol is throttled to the
// configured alerts per minute.
type alertService struct {
	cfg           *config.Config
	log           *logger.Logger
	telegram      *telegram.Client
	inmemoryCache cache.Cache
	limiter       *ratelimit.LimiterStore
}

func NewAlertService(
	cfg *config.Config,
	log *logger.Logger,
	telegram *telegram.Client,
	inmemoryCache cache.Cache,
) AlertService {
	perMinute := cfg.Telegram.MaxAlertsPerMinute
	if perMinute <= 0 {
		perMinute = 1
	}
	return &alertService{
		cfg:           cfg,
		log:           log,
		telegram:      telegram,
		inmemoryCache: inmemoryCache,
		limiter:       ratelimit.NewLimiterStore(rate.Limit(perMinute/60.0), 1),
	}
}

func (s *alertService) NotifySignal(ctx context.Context, alert dto.SignalAlert) error {
	if !s.cfg.Telegram.Enabled || s.telegram == nil {
		return nil
	}

	key := fmt.Sprintf(common.KEY_SIGNAL_ALERT, alert.Symbol, alert.Minutes, alert.Signal)
	if _, found := s.inmemoryCache.Get(key); found {
		s.log.DebugContext(ctx, "Signal alert suppressed by cooldown",
			logger.StringField("symbol", alert.Symbol),
			logger.IntField("minutes", alert.Minutes),
		)
		return nil
	}

	if !s.limiter.Allow(alert.Symbol) {
		s.log.DebugContext(ctx, "Signal alert rate limited",
			logger.StringField("symbol", alert.Symbol),
		)
		return nil
	}

	text := telegram.FormatSignalAlert(
		alert.Symbol,
		alert.Minutes,
		alert.Signal.Label(),
		alert.ConfidencePct,
		alert.Price,
		alert.PriceChangePct,
		alert.At,
	)
	if err := s.telegram.SendMessage(ctx, 0, text); err != nil {
		s.log.ErrorContext(ctx, "Failed to send signal alert",
			logger.ErrorField(err),
			logger.StringField("symbol", alert.Symbol),
		)
		return fmt.Errorf("failed to send signal alert: %w", err)
	}

	s.inmemoryCache.Set(key, true, s.cfg.Telegram.AlertCooldown)
	s.log.InfoContext(ctx, "Signal alert sent",
		logger.StringField("symbol", alert.Symbol),
		logger.IntField("minutes", alert.Minutes),
		logger.StringField("signal", string(alert.Signal)),
	)
	return nil
}
