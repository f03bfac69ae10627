package config

import (
	"encoding/json"
	"os"
)

// Config is the top-level CLI configuration loaded from file/env.
type Config struct {
	LogLevel   string `json:"logLevel"`
	LogFormat  string `json:"logFormat"`
	TailPollMs int    `json:"tailPollMs"`
	Workers    int    `json:"workers"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		LogLevel:   "info",
		LogFormat:  "text",
		TailPollMs: 1000,
		Workers:    2,
	}
}

// Load reads configuration from a JSON file over the defaults. An empty
// path returns defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
