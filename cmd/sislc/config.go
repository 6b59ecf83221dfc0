package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileConfig holds defaults that flags override when set explicitly.
type fileConfig struct {
	Pretty    bool   `toml:"pretty"`
	MaxLength int    `toml:"max_length"`
	LogLevel  string `toml:"log_level"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("log_level") {
		level := strings.TrimSpace(strings.ToLower(cfg.LogLevel))
		switch level {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = level
		default:
			return fileConfig{}, fmt.Errorf("unknown log_level %q", cfg.LogLevel)
		}
	}

	if cfg.MaxLength < 0 {
		return fileConfig{}, fmt.Errorf("max_length must be non-negative, got %d", cfg.MaxLength)
	}

	return cfg, nil
}
