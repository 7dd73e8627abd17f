package app

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/agentstation/usersweep/pkg/logging"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error"}

// NewLogger creates the CLI logger. Level precedence, highest first:
// --log-level, -v, -q, LOG_LEVEL or log_level in the config file, info.
// An unknown level is reported once through the new logger.
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)

	fields := map[string]any{}
	if config.DocumentStore != "" {
		fields["backend"] = config.DocumentStore
	}
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: level == "debug" || level == "trace",
		Fields:    fields,
	})

	switch {
	case config.LogLevel != "" && config.LogLevel != level:
		logger.Warn().Str("requested", config.LogLevel).Str("using", level).Msg("Unknown log level")
	case config.Verbose && config.Quiet && config.LogLevel == "":
		logger.Warn().Msg("Both --verbose and --quiet given, using --quiet")
	}
	return logger
}

func determineLogLevel(config *Config) string {
	switch {
	case config.LogLevel != "":
		return knownLevel(config.LogLevel)
	case config.Quiet:
		return "warn"
	case config.Verbose:
		return "debug"
	case config.EnvLogLevel != "":
		return knownLevel(config.EnvLogLevel)
	default:
		return "info"
	}
}

// knownLevel returns level when it is one of logLevels and info otherwise.
func knownLevel(level string) string {
	if slices.Contains(logLevels, level) {
		return level
	}
	return "info"
}
