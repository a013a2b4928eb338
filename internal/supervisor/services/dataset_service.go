// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DatasetRefresher reloads the dataset. Satisfied by *dataset.Store.
type DatasetRefresher interface {
	Refresh(ctx context.Context) error
}

// DatasetRefreshConfig controls when the dataset is reloaded.
type DatasetRefreshConfig struct {
	// Interval between scheduled reloads; 0 disables them.
	Interval time.Duration

	// LoadTimeout bounds a single reload.
	LoadTimeout time.Duration

	// RefreshOnStart reloads as soon as the service starts.
	RefreshOnStart bool
}

// DatasetRefreshService reloads the dataset on a schedule and whenever
// Trigger is called. Triggers arriving during a reload collapse into one
// follow-up reload.
type DatasetRefreshService struct {
	store   DatasetRefresher
	config  DatasetRefreshConfig
	trigger chan struct{}
	logger  zerolog.Logger
	name    string
}

// NewDatasetRefreshService creates the service.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewDatasetRefreshService(store DatasetRefresher, cfg DatasetRefreshConfig, logger zerolog.Logger) *DatasetRefreshService {
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 2 * time.Minute
	}
	return &DatasetRefreshService{
		store:   store,
		config:  cfg,
		trigger: make(chan struct{}, 1),
		logger:  logger.With().Str("service", "dataset-refresh").Logger(),
		name:    "dataset-refresh",
	}
}

// Trigger requests a reload without blocking.
func (s *DatasetRefreshService) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Serve implements suture.Service. Reload failures are logged, not returned:
// the store keeps the previous generation and the next tick retries.
func (s *DatasetRefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Bool("refresh_on_start", s.config.RefreshOnStart).
		Msg("Dataset refresh service starting")

	if s.config.RefreshOnStart {
		s.refresh(ctx, "startup")
	}

	var tick <-chan time.Time
	if s.config.Interval > 0 {
		ticker := time.NewTicker(s.config.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			s.refresh(ctx, "schedule")
		case <-s.trigger:
			s.refresh(ctx, "trigger")
		}
	}
}

func (s *DatasetRefreshService) refresh(ctx context.Context, reason string) {
	loadCtx, cancel := context.WithTimeout(ctx, s.config.LoadTimeout)
	defer cancel()

	start := time.Now()
	if err := s.store.Refresh(loadCtx); err != nil {
		s.logger.Warn().Err(err).Str("reason", reason).Msg("Dataset reload failed, keeping previous generation")
		return
	}
	s.logger.Debug().Str("reason", reason).Dur("duration", time.Since(start)).Msg("Dataset reloaded")
}

// String names the service in supervisor logs.
func (s *DatasetRefreshService) String() string {
	return s.name
}
