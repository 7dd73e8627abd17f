// Package logging provides structured logging for usersweep using zerolog.
// Console output is used when stderr is a terminal, JSON otherwise, so that
// operator sessions stay readable and redirected runs stay machine-parseable.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("store", "identity").Int("count", n).Msg("Listed users")
//
//	ctx = logging.WithStore(ctx, "documents")
//	logging.FromContext(ctx).Warn().Err(err).Msg("Delete failed")
package logging

import (
	"os"

	goisatty "github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is used until the CLI installs its configured logger.
var defaultLogger = NewLoggerFromConfig(envConfig())

// envConfig reads LOG_LEVEL, LOG_FORMAT and DEBUG for code running outside
// the CLI, such as library users and tests.
func envConfig() *Config {
	cfg := DefaultConfig()
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	switch {
	case os.Getenv("LOG_LEVEL") != "":
		cfg.Level = os.Getenv("LOG_LEVEL")
	case os.Getenv("DEBUG") != "":
		cfg.Level = "debug"
	}
	return cfg
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the default logger and zerolog's global one.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Warn starts a warning on the default logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

func isatty() bool {
	fd := os.Stderr.Fd()
	return goisatty.IsTerminal(fd) || goisatty.IsCygwinTerminal(fd)
}
