package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"market-analyzer/config"
	"market-analyzer/internal/contract"
	"market-analyzer/internal/dto"
	"market-analyzer/internal/engine"
	"market-analyzer/internal/locale"
	"market-analyzer/internal/model"
	"market-analyzer/pkg/cache"
	"market-analyzer/pkg/common"
	"market-analyzer/pkg/logger"
	"market-analyzer/pkg/utils"
)

// AnalysisService scores symbols across the configured windows and
// keeps the latest result per symbol in the cache.
type AnalysisService interface {
	// AnalyzeSymbol pulls the trailing series from the provider, scores
	// it, caches the result and dispatches alerts for strong signals.
	AnalyzeSymbol(ctx context.Context, symbol string) (*model.MarketAnalysis, error)
	// AnalyzeSeries scores a caller-supplied series. Short windows
	// degrade to neutral; nothing is cached and no alerts fire.
	AnalyzeSeries(ctx context.Context, symbol string, lang string, series model.PriceSeries) (*model.MarketAnalysis, error)
	// RunAll analyzes every configured symbol. Individual failures are
	// logged and skipped; an error is returned only when every symbol
	// failed.
	RunAll(ctx context.Context) error
	// Latest returns the cached analysis for symbol, if any.
	Latest(symbol string) (*model.MarketAnalysis, bool)
}

type analysisService struct {
	cfg           *config.Config
	log           *logger.Logger
	provider      contract.SeriesProvider
	inmemoryCache cache.Cache
	notifier      contract.SignalNotifier

	mu        sync.Mutex
	analyzers map[string]*engine.Analyzer
}

func NewAnalysisService(
	cfg *config.Config,
	log *logger.Logger,
	provider contract.SeriesProvider,
	inmemoryCache cache.Cache,
	notifier contract.SignalNotifier,
) AnalysisService {
	return &analysisService{
		cfg:           cfg,
		log:           log,
		provider:      provider,
		inmemoryCache: inmemoryCache,
		notifier:      notifier,
		analyzers:     make(map[string]*engine.Analyzer),
	}
}

// analyzerFor returns the analyzer for a symbol and language, building
// it on first use. Analyzers are cached because their windows and
// message tables never change at runtime.
func (s *analysisService) analyzerFor(symbol, lang string) *engine.Analyzer {
	key := symbol + ":" + lang

	s.mu.Lock()
	defer s.mu.Unlock()

	if analyzer, ok := s.analyzers[key]; ok {
		return analyzer
	}

	analyzer := engine.New(symbol, s.cfg.Analyzer.Windows, locale.For(lang), newLoggerSink(s.log))
	s.analyzers[key] = analyzer
	return analyzer
}

func (s *analysisService) AnalyzeSymbol(ctx context.Context, symbol string) (*model.MarketAnalysis, error) {
	lang := s.cfg.Analyzer.Locale

	series, err := s.provider.Series(ctx, symbol, s.cfg.Analyzer.RequiredSamples())
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to fetch candle series",
			logger.ErrorField(err),
			logger.StringField("symbol", symbol),
		)
		return nil, s.mapProviderError(lang, err)
	}

	analysis, err := s.analyzerFor(symbol, lang).Analyze(series)
	if err != nil {
		return nil, err
	}

	s.inmemoryCache.Set(fmt.Sprintf(common.KEY_ANALYSIS_RESULT, symbol), analysis, s.cfg.Cache.ResultTTL)
	s.dispatchAlerts(ctx, analysis)

	return analysis, nil
}

func (s *analysisService) AnalyzeSeries(ctx context.Context, symbol string, lang string, series model.PriceSeries) (*model.MarketAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, s.mapProviderError(lang, err)
	}
	return s.analyzerFor(symbol, lang).Analyze(series)
}

func (s *analysisService) RunAll(ctx context.Context) error {
	symbols := s.cfg.Analyzer.Symbols
	if len(symbols) == 0 {
		s.log.InfoContext(ctx, "No symbols configured, nothing to analyze")
		return nil
	}

	concurrency := s.cfg.Scheduler.MaxConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	s.log.InfoContext(ctx, "Start analysis run",
		logger.IntField("symbol_count", len(symbols)),
		logger.IntField("max_concurrency", concurrency),
	)

	var (
		mu     sync.Mutex
		failed int
	)

	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	for _, symbol := range symbols {
		if !utils.ShouldContinue(ctx, s.log) {
			s.log.InfoContext(ctx, "Received stop signal, analysis run stopped")
			break
		}

		g.Go(func() error {
			if _, err := s.AnalyzeSymbol(ctx, symbol); err != nil {
				s.log.ErrorContext(ctx, "Failed to analyze symbol",
					logger.ErrorField(err),
					logger.StringField("symbol", symbol),
				)
				mu.Lock()
				failed++
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if failed == len(symbols) {
		return fmt.Errorf("all %d symbols failed to analyze", len(symbols))
	}

	s.log.InfoContext(ctx, "Analysis run completed",
		logger.IntField("symbol_count", len(symbols)),
		logger.IntField("failed_count", failed),
	)
	return nil
}

func (s *analysisService) Latest(symbol string) (*model.MarketAnalysis, bool) {
	return cache.GetFromCache[*model.MarketAnalysis](fmt.Sprintf(common.KEY_ANALYSIS_RESULT, symbol))
}

// dispatchAlerts forwards non-neutral timeframes that clear the
// confidence bar. Delivery failures are logged, never escalated; the
// analysis itself already succeeded.
func (s *analysisService) dispatchAlerts(ctx context.Context, analysis *model.MarketAnalysis) {
	for _, minutes := range analysis.SortedWindows() {
		tf := analysis.Timeframes[minutes]
		if tf.Signal == model.SignalNeutral {
			continue
		}
		if tf.ConfidencePct < s.cfg.Telegram.MinAlertConfidence {
			continue
		}

		alert := dto.SignalAlert{
			Symbol:         analysis.Symbol,
			Minutes:        minutes,
			Signal:         tf.Signal,
			ConfidencePct:  tf.ConfidencePct,
			PriceChangePct: tf.PriceChangePct,
			Price:          analysis.CurrentPrice,
			At:             analysis.Timestamp,
		}
		if err := s.notifier.NotifySignal(ctx, alert); err != nil {
			s.log.WarnContext(ctx, "Failed to deliver signal alert",
				logger.ErrorField(err),
				logger.StringField("symbol", analysis.Symbol),
				logger.IntField("minutes", minutes),
			)
		}
	}
}

// mapProviderError translates provider failures onto the user-facing
// error taxonomy, localized for lang.
func (s *analysisService) mapProviderError(lang string, err error) error {
	msgs := locale.For(lang)
	switch {
	case errors.Is(err, contract.ErrNoData):
		return model.NewAnalysisError(model.ErrCodeNoData, msgs.Get(model.ErrCodeNoData), err)
	case errors.Is(err, contract.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return model.NewAnalysisError(model.ErrCodeTimeout, msgs.Get(model.ErrCodeTimeout), err)
	default:
		return model.NewAnalysisError(model.ErrCodeGeneral, msgs.Get(model.ErrCodeGeneral), err)
	}
}
