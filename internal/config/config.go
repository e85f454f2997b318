package config

import (
	"time"

	"golang-trading-insight/pkg/config"
)

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string        `mapstructure:"api_key"`
	BaseURL             string        `mapstructure:"base_url"`
	Model               string        `mapstructure:"model"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int           `mapstructure:"max_token_per_minute"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
	MaxRetries          int           `mapstructure:"max_retries"`
}

// Analysis holds tuning knobs for the AI analysis pipeline.
type Analysis struct {
	BulkBatchSize  int `mapstructure:"bulk_batch_size"`
	BulkMaxSymbols int `mapstructure:"bulk_max_symbols"`
}

// Market holds configuration for the market data provider and the
// cached market sentiment.
type Market struct {
	BaseURL              string        `mapstructure:"base_url"`
	SentimentCacheTTL    time.Duration `mapstructure:"sentiment_cache_ttl"`
	SentimentRefreshCron string        `mapstructure:"sentiment_refresh_cron"`
}

// News holds configuration for the market news feed.
type News struct {
	RSSBaseURL   string `mapstructure:"rss_base_url"`
	MaxHeadlines int    `mapstructure:"max_headlines"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the insight service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Redis    config.Redis    `mapstructure:"redis"`
	API      config.API      `mapstructure:"api"`
	Gemini   Gemini          `mapstructure:"gemini"`
	Analysis Analysis        `mapstructure:"analysis"`
	Market   Market          `mapstructure:"market"`
	News     News            `mapstructure:"news"`
	Telegram Telegram        `mapstructure:"telegram"`
}

// Load loads the service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Analysis.BulkBatchSize <= 0 {
		cfg.Analysis.BulkBatchSize = 5
	}
	if cfg.Analysis.BulkMaxSymbols <= 0 {
		cfg.Analysis.BulkMaxSymbols = 20
	}
	return &cfg, nil
}
