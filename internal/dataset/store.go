// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package dataset

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/supriyamulik/cet-college-predictor/internal/logging"
	"github.com/supriyamulik/cet-college-predictor/internal/metrics"
	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

var (
	// ErrNotLoaded is returned by Snapshot.Available while no load has succeeded.
	ErrNotLoaded = errors.New("dataset not loaded")

	// ErrSchema marks a source that is missing required columns.
	ErrSchema = errors.New("dataset schema invalid")
)

// Loader produces the raw rows of one dataset generation.
type Loader interface {
	Load(ctx context.Context) (*Data, error)
	Describe() string
}

// Store publishes dataset snapshots. Reads are lock-free; refreshes are
// serialized.
type Store struct {
	loader     Loader
	current    atomic.Pointer[Snapshot]
	generation atomic.Uint64
	refreshMu  sync.Mutex
	lastErr    atomic.Pointer[string]
	logger     zerolog.Logger
}

// NewStore returns a store holding an empty, not-yet-loaded snapshot. Call
// Refresh to load.
func NewStore(loader Loader) *Store {
	s := &Store{
		loader: loader,
		logger: logging.WithComponent("dataset"),
	}
	s.current.Store(emptySnapshot(loader.Describe(), ErrNotLoaded))
	return s
}

// Snapshot returns the active generation. Callers should fetch it once per
// request and keep using that value.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Refresh loads a new generation and swaps it in. On failure the previous
// good generation stays active; if there never was one, an empty snapshot
// carrying the error is installed.
func (s *Store) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := time.Now()
	data, err := s.loader.Load(ctx)
	if err != nil {
		metrics.RecordDatasetLoad(time.Since(start), 0, 0, 0, err)
		msg := err.Error()
		s.lastErr.Store(&msg)

		prev := s.current.Load()
		if prev.Generation == 0 {
			s.current.Store(emptySnapshot(s.loader.Describe(), err))
			s.logger.Error().Err(err).Str("source", s.loader.Describe()).
				Msg("Initial dataset load failed, serving empty snapshot")
		} else {
			s.logger.Error().Err(err).Uint64("generation", prev.Generation).
				Msg("Dataset refresh failed, keeping previous generation")
		}
		return fmt.Errorf("load dataset: %w", err)
	}

	snap := NewSnapshot(data)
	snap.Generation = s.generation.Add(1)
	s.current.Store(snap)
	s.lastErr.Store(nil)

	metrics.RecordDatasetLoad(time.Since(start), len(snap.Records), snap.Skipped, snap.Generation, nil)
	s.logger.Info().
		Uint64("generation", snap.Generation).
		Int("records", len(snap.Records)).
		Int("skipped", snap.Skipped).
		Int("directory", len(snap.Directory)).
		Float64("min_percentile", snap.MinPercentile).
		Float64("max_percentile", snap.MaxPercentile).
		Dur("duration", time.Since(start)).
		Msg("Dataset loaded")
	return nil
}

// Status reports the active generation and the last refresh error, if any.
func (s *Store) Status() models.DatasetStatus {
	snap := s.Snapshot()
	st := models.DatasetStatus{
		Generation:     snap.Generation,
		Source:         snap.Source,
		Records:        len(snap.Records),
		SkippedRecords: snap.Skipped,
		DirectoryRows:  len(snap.Directory),
	}
	if snap.Generation > 0 {
		st.LoadedAt = snap.LoadedAt.Format(time.RFC3339)
	}
	if msg := s.lastErr.Load(); msg != nil {
		st.LastError = *msg
	}
	return st
}
