package cmd

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/s0up4200/nsping/config"
	"github.com/s0up4200/nsping/console"
)

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	var out io.Writer = os.Stderr
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    !cfg.Color || !console.IsTerminal(os.Stderr.Fd()),
		}
	}

	// Warnings and errors are also kept in a rotating file
	if cfg.File != "" {
		file := zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
			}},
			Level: zerolog.WarnLevel,
		}
		out = zerolog.MultiLevelWriter(out, &file)
	}

	return zerolog.New(out).With().Timestamp().Logger()
}
