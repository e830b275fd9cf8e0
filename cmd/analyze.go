package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"market-analyzer/internal/dto"
	"market-analyzer/internal/feed"
	"market-analyzer/internal/model"
	"market-analyzer/internal/service"
)

var (
	analyzeSymbol string
	analyzeCSV    string
	analyzeLocale string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one symbol and print the result as JSON",
	Run:   Analyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeSymbol, "symbol", "", "symbol to analyze (defaults to the first configured symbol)")
	analyzeCmd.Flags().StringVar(&analyzeCSV, "csv", "", "score candles from a CSV file instead of the configured feed")
	analyzeCmd.Flags().StringVar(&analyzeLocale, "locale", "", "language for error messages (tg, ru, en)")
}

func Analyze(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	cfg := appDep.cfg
	symbol := strings.ToUpper(analyzeSymbol)
	if symbol == "" && len(cfg.Analyzer.Symbols) > 0 {
		symbol = cfg.Analyzer.Symbols[0]
	}
	if symbol == "" {
		log.Fatal("No symbol given and none configured")
	}

	lang := analyzeLocale
	if lang == "" {
		lang = cfg.Analyzer.Locale
	}

	var series model.PriceSeries
	if analyzeCSV != "" {
		series, err = feed.LoadCSV(analyzeCSV)
		if err != nil {
			log.Fatalf("Failed to load candles: %v", err)
		}
	} else {
		series, err = appDep.provider.Series(ctx, symbol, cfg.Analyzer.RequiredSamples())
		if err != nil {
			log.Fatalf("Failed to fetch candles: %v", err)
		}
	}

	// One-shot runs never alert, so no telegram client is wired in.
	services := service.NewService(cfg, appDep.log, appDep.provider, appDep.cache, nil)

	analysis, err := services.AnalysisService.AnalyzeSeries(ctx, symbol, lang, series)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	out, err := json.MarshalIndent(dto.NewAnalysisResponse(analysis), "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode analysis: %v", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
}
