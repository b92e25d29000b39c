package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration. Values come from an optional
// YAML file, overridden by environment variables.
type Config struct {
	Port           int    `yaml:"port" validate:"gt=0,lte=65535"`
	DBPath         string `yaml:"dbPath" validate:"required"`
	UserAgent      string `yaml:"userAgent" validate:"required"`
	MessageRefresh int    `yaml:"messageRefreshSeconds" validate:"gte=30"` // disruption poll interval
	TestMode       bool   `yaml:"testMode"`
}

func defaults() *Config {
	return &Config{
		Port:           8080,
		DBPath:         "./gomvg.db",
		UserAgent:      "gomvg/1.0",
		MessageRefresh: 120,
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// MVG_CONFIG (or ./gomvg.yml if present), then environment variables.
func Load() (*Config, error) {
	cfg := defaults()

	path := os.Getenv("MVG_CONFIG")
	if path == "" {
		if _, err := os.Stat("gomvg.yml"); err == nil {
			path = "gomvg.yml"
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Port = envInt("MVG_PORT", cfg.Port)
	cfg.DBPath = envStr("MVG_DB_PATH", cfg.DBPath)
	cfg.UserAgent = envStr("MVG_USER_AGENT", cfg.UserAgent)
	cfg.MessageRefresh = envInt("MVG_MESSAGE_REFRESH", cfg.MessageRefresh)
	cfg.TestMode = envBool("MVG_TEST_MODE", cfg.TestMode)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
