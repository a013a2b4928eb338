// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package config

import (
	"fmt"
	"strings"
)

// minJWTSecretLength matches the check in auth.NewJWTManager.
const minJWTSecretLength = 32

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validatePrediction(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.Chat.Validate(); err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	if err := c.validateAuth(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	if c.Server.RateLimitRequests < 0 || c.Server.LoginRateLimit < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}
	if c.Server.RateLimitRequests > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when RATE_LIMIT_REQUESTS is set")
	}
	if c.Server.LoginRateLimit > 0 && c.Server.LoginRateWindow <= 0 {
		return fmt.Errorf("LOGIN_RATE_WINDOW must be positive when LOGIN_RATE_LIMIT is set")
	}
	for _, origin := range c.Server.CORSOrigins {
		if origin == "*" && c.Server.Environment == "production" {
			return fmt.Errorf("CORS_ORIGINS must not be * in production")
		}
	}
	return nil
}

func (c *Config) validateDataset() error {
	if strings.TrimSpace(c.Dataset.CutoffPath) == "" {
		return fmt.Errorf("CUTOFF_PATH is required")
	}
	if c.Dataset.RefreshInterval < 0 {
		return fmt.Errorf("DATASET_REFRESH_INTERVAL must not be negative")
	}
	if c.Dataset.LoadTimeout <= 0 {
		return fmt.Errorf("dataset.load_timeout must be positive")
	}
	return nil
}

func (c *Config) validatePrediction() error {
	if err := c.Prediction.Limits.Validate(); err != nil {
		return fmt.Errorf("prediction limits: %w", err)
	}
	if err := c.Prediction.Ranking.Validate(); err != nil {
		return fmt.Errorf("prediction ranking: %w", err)
	}
	if c.Prediction.Midpoint < 0 || c.Prediction.Midpoint > 100 {
		return fmt.Errorf("PREDICTION_MIDPOINT must be between 0 and 100, got %g", c.Prediction.Midpoint)
	}
	return nil
}

func (c *Config) validateStorage() error {
	if !c.Storage.InMemory && strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("BADGER_PATH is required unless BADGER_IN_MEMORY is set")
	}
	if c.Storage.GCInterval < 0 {
		return fmt.Errorf("BADGER_GC_INTERVAL must not be negative")
	}
	if c.Storage.GCDiscardRatio <= 0 || c.Storage.GCDiscardRatio >= 1 {
		return fmt.Errorf("storage.gc_discard_ratio must be between 0 and 1, got %g", c.Storage.GCDiscardRatio)
	}
	return nil
}

func (c *Config) validateAuth() error {
	if !c.Auth.Enabled {
		return nil
	}
	if len(c.Auth.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters when ADMIN_ENABLED is set", minJWTSecretLength)
	}
	if c.Auth.AdminUsername == "" || c.Auth.AdminPassword == "" {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD are required when ADMIN_ENABLED is set")
	}
	if c.Auth.TokenTimeout <= 0 {
		return fmt.Errorf("TOKEN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
