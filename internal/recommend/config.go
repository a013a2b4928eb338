// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package recommend

import "fmt"

// Config contains the request limits of the engine.
type Config struct {
	// DefaultLimit applies when a profile carries no limit.
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit caps the requested limit.
	MaxLimit int `koanf:"max_limit"`

	// MaxBranches caps the branch fan-out of one request.
	MaxBranches int `koanf:"max_branches"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultLimit: 100,
		MaxLimit:     500,
		MaxBranches:  10,
	}
}

// Validate checks the limits.
func (c *Config) Validate() error {
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be at least 1, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit (%d) must be >= default_limit (%d)", c.MaxLimit, c.DefaultLimit)
	}
	if c.MaxBranches < 1 {
		return fmt.Errorf("max_branches must be at least 1, got %d", c.MaxBranches)
	}
	return nil
}
