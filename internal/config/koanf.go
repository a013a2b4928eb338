// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/supriyamulik/cet-college-predictor/internal/auth"
	"github.com/supriyamulik/cet-college-predictor/internal/chat"
	"github.com/supriyamulik/cet-college-predictor/internal/eligibility"
	"github.com/supriyamulik/cet-college-predictor/internal/gapranker"
	"github.com/supriyamulik/cet-college-predictor/internal/predictor"
	"github.com/supriyamulik/cet-college-predictor/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cet-predictor/config.yaml",
	"/etc/cet-predictor/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              5000,
			Environment:       "development",
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      60 * time.Second, // chat replies can be slow
			IdleTimeout:       2 * time.Minute,
			ShutdownTimeout:   15 * time.Second,
			RequestTimeout:    10 * time.Second,
			CORSOrigins:       []string{"http://localhost:3000", "http://localhost:5173"},
			RateLimitRequests: 120,
			RateLimitWindow:   time.Minute,
			LoginRateLimit:    10,
			LoginRateWindow:   5 * time.Minute,
		},
		Dataset: DatasetConfig{
			CutoffPath:      "data/cutoffs.csv",
			DirectoryPath:   "data/college_directory.csv",
			RefreshInterval: 0,
			Watch:           false,
			LoadTimeout:     2 * time.Minute,
		},
		Model: ModelConfig{
			ArtifactPath: "models/cutoff_model.json",
		},
		Prediction: PredictionConfig{
			Limits:            *recommend.DefaultConfig(),
			Ranking:           gapranker.DefaultConfig(),
			Midpoint:          predictor.DefaultMidpoint,
			WomenOnlyKeywords: append([]string(nil), eligibility.DefaultWomenOnlyKeywords...),
		},
		Storage: StorageConfig{
			Path:           "data/badger",
			InMemory:       false,
			GCInterval:     10 * time.Minute,
			GCDiscardRatio: 0.5,
		},
		Chat: chat.DefaultConfig(),
		Auth: auth.Config{
			Enabled:       false,
			TokenTimeout:  8 * time.Hour,
			BcryptCost:    12,
			AdminUsername: "admin",
			Lockout:       auth.DefaultLockoutConfig(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"server.cors_origins",
	"prediction.women_only_keywords",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
var envMappings = map[string]string{
	"http_host":           "server.host",
	"http_port":           "server.port",
	"environment":         "server.environment",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_requests",
	"rate_limit_window":   "server.rate_limit_window",
	"login_rate_limit":    "server.login_rate_limit",
	"login_rate_window":   "server.login_rate_window",

	"cutoff_path":              "dataset.cutoff_path",
	"directory_path":           "dataset.directory_path",
	"dataset_refresh_interval": "dataset.refresh_interval",
	"dataset_watch":            "dataset.watch",
	"model_path":               "model.artifact_path",

	"prediction_default_limit": "prediction.limits.default_limit",
	"prediction_max_limit":     "prediction.limits.max_limit",
	"prediction_max_branches":  "prediction.limits.max_branches",
	"prediction_midpoint":      "prediction.midpoint",
	"women_only_keywords":      "prediction.women_only_keywords",

	"badger_path":        "storage.path",
	"badger_in_memory":   "storage.in_memory",
	"badger_gc_interval": "storage.gc_interval",

	"gemini_api_key":           "chat.api_key",
	"gemini_model":             "chat.model",
	"chat_max_sessions":        "chat.max_sessions",
	"chat_requests_per_minute": "chat.requests_per_minute",

	"admin_enabled":      "auth.enabled",
	"jwt_secret":         "auth.jwt_secret",
	"token_timeout":      "auth.token_timeout",
	"admin_username":     "auth.admin_username",
	"admin_password":     "auth.admin_password",
	"viewer_username":    "auth.viewer_username",
	"viewer_password":    "auth.viewer_password",
	"casbin_model_path":  "authz.model_path",
	"casbin_policy_path": "authz.policy_path",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - CUTOFF_PATH -> dataset.cutoff_path
//   - GEMINI_API_KEY -> chat.api_key
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	// For unmapped keys, return empty string to skip them
	return ""
}

// WatchConfigFile calls callback whenever the file at path changes.
func WatchConfigFile(path string, callback func()) (*file.File, error) {
	provider := file.Provider(path)
	err := provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
	if err != nil {
		return nil, err
	}
	return provider, nil
}
