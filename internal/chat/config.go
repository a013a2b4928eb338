// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package chat

import (
	"fmt"
	"time"
)

// Config holds the assistant settings. An empty APIKey puts the assistant in
// not-configured mode.
type Config struct {
	APIKey          string        `koanf:"api_key"`
	Model           string        `koanf:"model"`
	Temperature     float64       `koanf:"temperature"`
	TopP            float64       `koanf:"top_p"`
	TopK            int           `koanf:"top_k"`
	MaxOutputTokens int           `koanf:"max_output_tokens"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`

	MaxMessageLength int `koanf:"max_message_length"`
	MaxSessions      int `koanf:"max_sessions"`
	SessionMessages  int `koanf:"session_messages"` // retained per session
	HistoryMessages  int `koanf:"history_messages"` // sent to the model

	RequestsPerMinute int `koanf:"requests_per_minute"`
	Burst             int `koanf:"burst"`

	// Consecutive backend failures that open the circuit breaker.
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Model:             "models/gemini-2.5-flash",
		Temperature:       0.7,
		TopP:              0.9,
		TopK:              40,
		MaxOutputTokens:   2048,
		RequestTimeout:    30 * time.Second,
		MaxMessageLength:  1000,
		MaxSessions:       1000,
		SessionMessages:   20,
		HistoryMessages:   10,
		RequestsPerMinute: 60,
		Burst:             10,
		BreakerFailures:   5,
		BreakerTimeout:    2 * time.Minute,
	}
}

// Configured reports whether an API key is set.
func (c *Config) Configured() bool {
	return c.APIKey != ""
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("chat.model is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("chat.temperature must be between 0 and 2, got %v", c.Temperature)
	}
	if c.TopP <= 0 || c.TopP > 1 {
		return fmt.Errorf("chat.top_p must be in (0, 1], got %v", c.TopP)
	}
	if c.TopK < 1 {
		return fmt.Errorf("chat.top_k must be positive, got %d", c.TopK)
	}
	if c.MaxOutputTokens < 1 {
		return fmt.Errorf("chat.max_output_tokens must be positive, got %d", c.MaxOutputTokens)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("chat.request_timeout must be positive")
	}
	if c.MaxMessageLength < 1 {
		return fmt.Errorf("chat.max_message_length must be positive")
	}
	if c.MaxSessions < 1 {
		return fmt.Errorf("chat.max_sessions must be positive")
	}
	if c.SessionMessages < 2 {
		return fmt.Errorf("chat.session_messages must be at least 2, got %d", c.SessionMessages)
	}
	if c.HistoryMessages < 0 || c.HistoryMessages > c.SessionMessages {
		return fmt.Errorf("chat.history_messages must be between 0 and session_messages (%d), got %d",
			c.SessionMessages, c.HistoryMessages)
	}
	if c.RequestsPerMinute < 1 || c.Burst < 1 {
		return fmt.Errorf("chat.requests_per_minute and chat.burst must be positive")
	}
	if c.BreakerFailures < 1 {
		return fmt.Errorf("chat.breaker_failures must be positive")
	}
	if c.BreakerTimeout <= 0 {
		return fmt.Errorf("chat.breaker_timeout must be positive")
	}
	return nil
}
