package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/nsping/nationstates"
	"github.com/s0up4200/nsping/notices"
)

// Load loads the configuration from file. Without an explicit path a missing
// settings file is fine and the defaults are used.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix("NSPING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for settings in standard locations
		v.SetConfigName("settings")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".nsping"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("agent", "")
	v.SetDefault("tokens_file", ".tokens")
	v.SetDefault("legacy_file", "nsping.json")

	// API defaults
	v.SetDefault("api.url", nationstates.DefaultBaseURL)
	v.SetDefault("api.timeout", "30s")

	// Rate limit defaults
	v.SetDefault("rate_limit.window", nationstates.DefaultWindow)
	v.SetDefault("rate_limit.margin", nationstates.DefaultMargin)
	v.SetDefault("rate_limit.pause", nationstates.DefaultPause.String())
	v.SetDefault("rate_limit.pacing", false)

	// Notice defaults
	v.SetDefault("notices.show", true)
	v.SetDefault("notices.hide", notices.DefaultExpression)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
	v.SetDefault("logging.file", "errors.log")
	v.SetDefault("logging.max_size", 8)
	v.SetDefault("logging.max_backups", 5)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.TokensFile == "" {
		return fmt.Errorf("tokens_file is required")
	}

	if cfg.API.URL == "" {
		return fmt.Errorf("api.url is required")
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}

	if cfg.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive")
	}
	if cfg.RateLimit.Margin < 0 || cfg.RateLimit.Margin > cfg.RateLimit.Window {
		return fmt.Errorf("invalid rate_limit.margin: %d (must be between 0 and %d)", cfg.RateLimit.Margin, cfg.RateLimit.Window)
	}
	if cfg.RateLimit.Pause <= 0 {
		return fmt.Errorf("rate_limit.pause must be positive")
	}

	if _, err := notices.Compile(cfg.Notices.Hide); err != nil {
		return fmt.Errorf("invalid notices.hide: %w", err)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// ResolveAgent picks the user agent: the configured one wins over the one
// saved in the token file.
func (c *Config) ResolveAgent(saved string) (string, error) {
	if agent := strings.TrimSpace(c.Agent); agent != "" {
		return agent, nil
	}
	if agent := strings.TrimSpace(saved); agent != "" {
		return agent, nil
	}
	return "", nationstates.ErrNoAgent
}
