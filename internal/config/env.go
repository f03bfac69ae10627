package config

import (
	"os"
	"strconv"
)

// FromEnv overlays REWIND_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("REWIND_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("REWIND_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("REWIND_TAIL_POLL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TailPollMs = n
		}
	}
	if v := os.Getenv("REWIND_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
}
