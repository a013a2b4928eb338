// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package config

import (
	"os"
	"time"

	"github.com/supriyamulik/cet-college-predictor/internal/auth"
	"github.com/supriyamulik/cet-college-predictor/internal/authz"
	"github.com/supriyamulik/cet-college-predictor/internal/chat"
	"github.com/supriyamulik/cet-college-predictor/internal/gapranker"
	"github.com/supriyamulik/cet-college-predictor/internal/logging"
	"github.com/supriyamulik/cet-college-predictor/internal/optionform"
	"github.com/supriyamulik/cet-college-predictor/internal/recommend"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Dataset    DatasetConfig    `koanf:"dataset"`
	Model      ModelConfig      `koanf:"model"`
	Prediction PredictionConfig `koanf:"prediction"`
	Storage    StorageConfig    `koanf:"storage"`
	Chat       chat.Config      `koanf:"chat"`
	Auth       auth.Config      `koanf:"auth"`
	Authz      authz.Config     `koanf:"authz"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Environment     string        `koanf:"environment"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// RequestTimeout bounds each handler's work.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	CORSOrigins []string `koanf:"cors_origins"`

	// Per-IP limits applied to the API routes.
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	// LoginRateLimit is login attempts per IP per LoginRateWindow.
	LoginRateLimit  int           `koanf:"login_rate_limit"`
	LoginRateWindow time.Duration `koanf:"login_rate_window"`
}

// DatasetConfig locates the cutoff table and college directory.
type DatasetConfig struct {
	CutoffPath    string `koanf:"cutoff_path"`
	DirectoryPath string `koanf:"directory_path"`

	// RefreshInterval reloads the files periodically; 0 disables it.
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	// Watch reloads when the cutoff file changes. Ignored for globs.
	Watch bool `koanf:"watch"`

	LoadTimeout time.Duration `koanf:"load_timeout"`
}

// ModelConfig locates the regression model artifact.
type ModelConfig struct {
	ArtifactPath string `koanf:"artifact_path"`
}

// PredictionConfig tunes the prediction pipeline.
type PredictionConfig struct {
	Limits  recommend.Config `koanf:"limits"`
	Ranking gapranker.Config `koanf:"ranking"`

	// Midpoint replaces rescaled predictions when the subset has zero spread.
	Midpoint float64 `koanf:"midpoint"`

	WomenOnlyKeywords []string `koanf:"women_only_keywords"`
}

// StorageConfig holds the Badger settings for option forms.
type StorageConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`

	GCInterval     time.Duration `koanf:"gc_interval"`
	GCDiscardRatio float64       `koanf:"gc_discard_ratio"`
}

// OptionForm returns the option form store settings.
func (s StorageConfig) OptionForm() optionform.Config {
	return optionform.Config{Path: s.Path, InMemory: s.InMemory}
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ToLogging converts to the logging package configuration.
func (l LoggingConfig) ToLogging() logging.Config {
	return logging.Config{
		Level:     l.Level,
		Format:    l.Format,
		Caller:    l.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	}
}

// Load loads configuration from defaults, the optional config file and the
// environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
