package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// envConfig holds configuration read from the environment when the shared
// library is loaded. The host has no other way to configure it.
type envConfig struct {
	LogLevel      string // HTM_LOG_LEVEL: debug, info, warn, error; empty = silent
	LogFormat     string // HTM_LOG_FORMAT: json (default) or console
	MaxInputBytes int    // HTM_MAX_INPUT_BYTES: 0 = unlimited
}

// knownEnvVars lists valid HTM_* environment variables.
// Used to detect typos and warn about unknown variables.
var knownEnvVars = map[string]bool{
	"HTM_LOG_LEVEL":       true,
	"HTM_LOG_FORMAT":      true,
	"HTM_MAX_INPUT_BYTES": true,
}

// loadEnvConfig reads configuration from environment variables.
// Invalid numeric values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		LogLevel:  strings.ToLower(strings.TrimSpace(os.Getenv("HTM_LOG_LEVEL"))),
		LogFormat: strings.ToLower(strings.TrimSpace(os.Getenv("HTM_LOG_FORMAT"))),
	}

	if limit := os.Getenv("HTM_MAX_INPUT_BYTES"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			cfg.MaxInputBytes = n
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for each unrecognized HTM_* variable.
func warnUnknownEnvVars(logger *zap.Logger) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "HTM_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				logger.Warn("unknown environment variable (typo?)", zap.String("name", name))
			}
		}
	}
}

// newLogger builds the library logger. Logs go to stderr because the host
// owns stdout. An empty level disables logging.
func newLogger(env *envConfig) (*zap.Logger, error) {
	if env.LogLevel == "" {
		return zap.NewNop(), nil
	}
	level, err := zapcore.ParseLevel(env.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("HTM_LOG_LEVEL: %w", err)
	}

	var cfg zap.Config
	switch env.LogFormat {
	case "", "json":
		cfg = zap.NewProductionConfig()
	case "console":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("HTM_LOG_FORMAT: unknown format %q (want json or console)", env.LogFormat)
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build(zap.Fields(zap.String("lib", "libhtm")))
}
