package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config contains runtime settings for a storectl process.
type Config struct {
	LogLevel string

	// TracingEnabled exports store spans to TraceOutput as pretty-printed JSON.
	TracingEnabled     bool
	TracingServiceName string

	// MetricsDump writes the Prometheus text exposition on Close.
	MetricsDump bool
	// RuntimeMetrics adds Go runtime and process collectors to the dump.
	RuntimeMetrics bool

	// Color enables styled table output.
	Color bool
}

// DefaultConfig returns a local-development configuration.
func DefaultConfig() Config {
	return Config{
		LogLevel:           "info",
		TracingServiceName: "storectl",
		Color:              true,
	}
}

// LoadConfigFromEnv loads config from environment variables.
//
// Supported vars:
// - APP_LOG_LEVEL (debug|info|warn|error)
// - APP_TRACING_ENABLED (bool)
// - APP_TRACING_SERVICE_NAME
// - APP_METRICS_DUMP (bool)
// - APP_RUNTIME_METRICS (bool)
// - APP_COLOR (bool)
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("APP_LOG_LEVEL")); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("APP_TRACING_SERVICE_NAME")); v != "" {
		cfg.TracingServiceName = v
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"APP_TRACING_ENABLED", &cfg.TracingEnabled},
		{"APP_METRICS_DUMP", &cfg.MetricsDump},
		{"APP_RUNTIME_METRICS", &cfg.RuntimeMetrics},
		{"APP_COLOR", &cfg.Color},
	}
	for _, b := range bools {
		v := strings.TrimSpace(os.Getenv(b.name))
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("app: invalid %s %q: %w", b.name, v, err)
		}
		*b.dst = parsed
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required settings are present and supported.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("app: unsupported log level %q", c.LogLevel)
	}
	if c.TracingEnabled && strings.TrimSpace(c.TracingServiceName) == "" {
		return fmt.Errorf("app: tracing service name is required when tracing is enabled")
	}
	return nil
}
