package cmd

import (
	"context"
	"time"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gopkg.in/telebot.v3"

	"market-analyzer/config"
	"market-analyzer/internal/contract"
	"market-analyzer/internal/feed"
	"market-analyzer/internal/monitor"
	"market-analyzer/pkg/cache"
	"market-analyzer/pkg/httpclient"
	"market-analyzer/pkg/logger"
	"market-analyzer/pkg/telegram"
)

type AppDependency struct {
	cfg       *config.Config
	log       *logger.Logger
	validator *goValidator.Validate
	echo      *echo.Echo
	cache     cache.Cache
	provider  contract.SeriesProvider
	telegram  *telegram.Client
	monitor   *monitor.Monitor
}

func NewAppDependency(ctx context.Context) (*AppDependency, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	var logOpts []logger.Option
	if cfg.Log.AlertLevel != "" && cfg.Telegram.Enabled {
		logOpts = append(logOpts, logger.WithTelegramAlerts(logger.AlertOptions{
			BotToken: cfg.Telegram.BotToken,
			ChatID:   cfg.Telegram.ChatID,
			MinLevel: cfg.Log.AlertLevel,
		}))
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding, logOpts...)
	if err != nil {
		return nil, err
	}

	provider, err := feed.New(cfg)
	if err != nil {
		log.Error("Failed to build market data feed", zap.Error(err))
		return nil, err
	}

	var tgClient *telegram.Client
	if cfg.Telegram.Enabled {
		pref := telebot.Settings{
			Token:  cfg.Telegram.BotToken,
			Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
			OnError: func(err error, c telebot.Context) {
				log.Error("Telegram bot error", zap.Error(err))
			},
		}
		bot, err := telebot.NewBot(pref)
		if err != nil {
			log.Error("Failed to create telegram bot", zap.Error(err))
			return nil, err
		}
		tgClient = telegram.NewClient(&cfg.Telegram, log, bot)
	}

	var probeClient httpclient.HTTPClient
	if cfg.Monitor.Enabled && cfg.Monitor.ProbeURL != "" {
		probeClient = httpclient.New(cfg.Monitor.ProbeURL, cfg.Monitor.Timeout)
	}

	return &AppDependency{
		cfg:       cfg,
		log:       log,
		validator: goValidator.New(),
		echo:      echo.New(),
		cache:     cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval),
		provider:  provider,
		telegram:  tgClient,
		monitor:   monitor.New(cfg, log, probeClient),
	}, nil
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	_ = d.log.Sync()
	return nil
}
