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

// PeriodicService runs task every interval until canceled. Task errors are
// logged and the schedule continues.
type PeriodicService struct {
	name     string
	interval time.Duration
	task     func(ctx context.Context) error
	logger   zerolog.Logger
}

// NewPeriodicService creates a named periodic task. A non-positive interval
// means one minute.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewPeriodicService(name string, interval time.Duration, task func(ctx context.Context) error, logger zerolog.Logger) *PeriodicService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &PeriodicService{
		name:     name,
		interval: interval,
		task:     task,
		logger:   logger.With().Str("service", name).Logger(),
	}
}

// Serve implements suture.Service.
func (s *PeriodicService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.task(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("Periodic task failed")
			}
		}
	}
}

// String names the service in supervisor logs.
func (s *PeriodicService) String() string {
	return s.name
}
