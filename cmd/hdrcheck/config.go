package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
)

// config holds the hdrcheck runtime settings.
type config struct {
	// Headers is the allowlist of field names to check. Empty means every
	// name with a registered codec.
	Headers []string
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string
	// Dev selects the developer log handler.
	Dev bool
}

func defaultConfig() config {
	return config{LogLevel: "info"}
}

// hdrcheck config.toml key mapping.
type fileConfig struct {
	Headers  []string `toml:"headers"`
	LogLevel string   `toml:"log_level"`
	Dev      bool     `toml:"dev"`
}

// loadConfig reads a TOML config with default overlay: only keys present in
// the file override the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load hdrcheck config: %w", err)
	}

	if meta.IsDefined("headers") {
		cfg.Headers = cfg.Headers[:0]
		for _, name := range raw.Headers {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Headers = append(cfg.Headers, strings.ToLower(name))
			}
		}
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}
	if meta.IsDefined("dev") {
		cfg.Dev = raw.Dev
	}

	if _, err := cfg.level(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) level() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
}

// checks reports whether the allowlist admits name (lowercase key).
func (c config) checks(name string) bool {
	if len(c.Headers) == 0 {
		return true
	}
	for _, n := range c.Headers {
		if n == name {
			return true
		}
	}
	return false
}
