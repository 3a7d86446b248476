package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	// Agent overrides the user agent saved in the token file.
	Agent      string          `mapstructure:"agent"`
	TokensFile string          `mapstructure:"tokens_file"`
	LegacyFile string          `mapstructure:"legacy_file"`
	API        APIConfig       `mapstructure:"api"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	Notices    NoticesConfig   `mapstructure:"notices"`
	Logging    LoggingConfig   `mapstructure:"logging"`
}

// APIConfig holds NationStates API connection details
type APIConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig controls how close to the API rate limit the client may get
type RateLimitConfig struct {
	// Window is the number of requests the API allows per Pause.
	Window int           `mapstructure:"window"`
	Margin int           `mapstructure:"margin"`
	Pause  time.Duration `mapstructure:"pause"`

	// Pacing spreads requests over the window on top of the backoff sleep.
	Pacing bool `mapstructure:"pacing"`
}

// NoticesConfig controls which notices are printed after a login
type NoticesConfig struct {
	Show bool   `mapstructure:"show"`
	Hide string `mapstructure:"hide"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`

	// File receives warnings and errors; empty disables it.
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
}
