// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package services

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// ValueLogCollector runs one value-log GC pass. Satisfied by *badger.DB.
type ValueLogCollector interface {
	RunValueLogGC(discardRatio float64) error
}

// StorageGCService periodically reclaims Badger value-log space. Each tick
// repeats GC until Badger reports nothing left to rewrite.
type StorageGCService struct {
	db           ValueLogCollector
	interval     time.Duration
	discardRatio float64
	logger       zerolog.Logger
	name         string
}

// NewStorageGCService creates the service. Zero values use a 10 minute
// interval and a 0.5 discard ratio.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewStorageGCService(db ValueLogCollector, interval time.Duration, discardRatio float64, logger zerolog.Logger) *StorageGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if discardRatio <= 0 || discardRatio >= 1 {
		discardRatio = 0.5
	}
	return &StorageGCService{
		db:           db,
		interval:     interval,
		discardRatio: discardRatio,
		logger:       logger.With().Str("service", "storage-gc").Logger(),
		name:         "storage-gc",
	}
}

// Serve implements suture.Service. An in-memory database has no value log,
// so the service stops for good.
func (s *StorageGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rewrites, err := s.collect(ctx)
			if errors.Is(err, badger.ErrGCInMemoryMode) {
				s.logger.Debug().Msg("In-memory storage, value-log GC disabled")
				return suture.ErrDoNotRestart
			}
			if err != nil {
				s.logger.Warn().Err(err).Int("rewrites", rewrites).Msg("Value-log GC failed")
				continue
			}
			if rewrites > 0 {
				s.logger.Debug().Int("rewrites", rewrites).Msg("Value-log GC reclaimed space")
			}
		}
	}
}

// collect runs GC until ErrNoRewrite and returns the number of rewrites.
func (s *StorageGCService) collect(ctx context.Context) (int, error) {
	rewrites := 0
	for ctx.Err() == nil {
		err := s.db.RunValueLogGC(s.discardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return rewrites, nil
		}
		if err != nil {
			return rewrites, err
		}
		rewrites++
	}
	return rewrites, nil
}

// String names the service in supervisor logs.
func (s *StorageGCService) String() string {
	return s.name
}
