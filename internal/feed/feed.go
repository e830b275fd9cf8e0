// Package feed provides the candle series sources behind the analysis
// service: a seeded synthetic walk for demos and tests, and a CSV tape
// replayed candle by candle.
package feed

import (
	"fmt"

	"market-analyzer/config"
	"market-analyzer/internal/contract"
)

// New builds the series provider selected by the feed configuration.
func New(cfg *config.Config) (contract.SeriesProvider, error) {
	switch cfg.Feed.Source {
	case config.FeedSourceSynthetic, "":
		return NewSynthetic(cfg.Feed.Seed, cfg.Feed.BasePrice, cfg.Feed.BaseVolume), nil
	case config.FeedSourceCSV:
		series, err := LoadCSV(cfg.Feed.CSVPath)
		if err != nil {
			return nil, err
		}
		return NewReplay(series, cfg.Analyzer.RequiredSamples()), nil
	default:
		return nil, fmt.Errorf("unknown feed source %q", cfg.Feed.Source)
	}
}
