package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Feed sources understood by the feed factory.
const (
	FeedSourceSynthetic = "synthetic"
	FeedSourceCSV       = "csv"
)

type Config struct {
	Log       Logger          `mapstructure:"logger"`
	API       API             `mapstructure:"api"`
	Analyzer  AnalyzerConfig  `mapstructure:"analyzer"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Monitor   MonitorConfig   `mapstructure:"monitor"`
	Feed      FeedConfig      `mapstructure:"feed"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
	// AlertLevel mirrors log entries at or above this level to the
	// Telegram alert hook. Empty disables the hook.
	AlertLevel string `mapstructure:"alert_level"`
}

type API struct {
	Port      int     `mapstructure:"port"`
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

type AnalyzerConfig struct {
	Symbols []string `mapstructure:"symbols"`
	Windows []int    `mapstructure:"windows"`
	Locale  string   `mapstructure:"locale"`
	// WarmupSamples is the slack requested on top of the widest window
	// so the slow indicators have history to settle on.
	WarmupSamples int `mapstructure:"warmup_samples"`
}

// RequiredSamples is the candle count requested from the series
// provider: the widest configured window plus warm-up slack.
func (a AnalyzerConfig) RequiredSamples() int {
	widest := 0
	for _, w := range a.Windows {
		if w > widest {
			widest = w
		}
	}
	if widest == 0 {
		widest = 30
	}
	return widest + a.WarmupSamples
}

type SchedulerConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	CronSpec        string        `mapstructure:"cron_spec"`
	MaxConcurrency  int           `mapstructure:"max_concurrency"`
	TimeoutDuration time.Duration `mapstructure:"timeout_duration"`
}

type CacheConfig struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	ResultTTL         time.Duration `mapstructure:"result_ttl"`
}

type TelegramConfig struct {
	Enabled                   bool          `mapstructure:"enabled"`
	BotToken                  string        `mapstructure:"bot_token"`
	ChatID                    int64         `mapstructure:"chat_id"`
	TimeoutDuration           time.Duration `mapstructure:"timeout_duration"`
	MaxGlobalRequestPerSecond int           `mapstructure:"max_global_request_per_second"`
	MinAlertConfidence        float64       `mapstructure:"min_alert_confidence"`
	MaxAlertsPerMinute        float64       `mapstructure:"max_alerts_per_minute"`
	AlertCooldown             time.Duration `mapstructure:"alert_cooldown"`
}

type MonitorConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	ProbeURL   string        `mapstructure:"probe_url"`
	Interval   time.Duration `mapstructure:"interval"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

type FeedConfig struct {
	Source     string  `mapstructure:"source"`
	CSVPath    string  `mapstructure:"csv_path"`
	Seed       int64   `mapstructure:"seed"`
	BasePrice  float64 `mapstructure:"base_price"`
	BaseVolume float64 `mapstructure:"base_volume"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Println("No .env file loaded:", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.alert_level", "")

	viper.SetDefault("api.port", 8080)
	viper.SetDefault("api.rate_limit", 10.0)
	viper.SetDefault("api.rate_burst", 30)

	viper.SetDefault("analyzer.symbols", []string{"EURUSD", "GBPUSD", "XAUUSD"})
	viper.SetDefault("analyzer.windows", []int{1, 5, 15, 30})
	viper.SetDefault("analyzer.locale", "tg")
	viper.SetDefault("analyzer.warmup_samples", 5)

	viper.SetDefault("scheduler.enabled", true)
	viper.SetDefault("scheduler.cron_spec", "0 * * * * *")
	viper.SetDefault("scheduler.max_concurrency", 4)
	viper.SetDefault("scheduler.timeout_duration", "50s")

	viper.SetDefault("cache.default_expiration", "5m")
	viper.SetDefault("cache.cleanup_interval", "10m")
	viper.SetDefault("cache.result_ttl", "10m")

	viper.SetDefault("telegram.enabled", false)
	viper.SetDefault("telegram.bot_token", "")
	viper.SetDefault("telegram.chat_id", 0)
	viper.SetDefault("telegram.timeout_duration", "10s")
	viper.SetDefault("telegram.max_global_request_per_second", 30)
	viper.SetDefault("telegram.min_alert_confidence", 70.0)
	viper.SetDefault("telegram.max_alerts_per_minute", 2.0)
	viper.SetDefault("telegram.alert_cooldown", "30m")

	viper.SetDefault("monitor.enabled", false)
	viper.SetDefault("monitor.probe_url", "")
	viper.SetDefault("monitor.interval", "60s")
	viper.SetDefault("monitor.timeout", "10s")
	viper.SetDefault("monitor.max_retries", 3)
	viper.SetDefault("monitor.retry_delay", "5s")

	viper.SetDefault("feed.source", FeedSourceSynthetic)
	viper.SetDefault("feed.csv_path", "")
	viper.SetDefault("feed.seed", 42)
	viper.SetDefault("feed.base_price", 1.0850)
	viper.SetDefault("feed.base_volume", 1000.0)
}
