// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/supriyamulik/cet-college-predictor/internal/dataset"
	"github.com/supriyamulik/cet-college-predictor/internal/eligibility"
	"github.com/supriyamulik/cet-college-predictor/internal/gapranker"
	"github.com/supriyamulik/cet-college-predictor/internal/logging"
	"github.com/supriyamulik/cet-college-predictor/internal/metrics"
	"github.com/supriyamulik/cet-college-predictor/internal/models"
	"github.com/supriyamulik/cet-college-predictor/internal/predictor"
)

// ErrInvalidProfile wraps every profile rejection.
var ErrInvalidProfile = errors.New("invalid applicant profile")

// Prediction outcomes for metrics.
const (
	outcomeOK          = "ok"
	outcomeEmpty       = "empty"
	outcomeInvalid     = "invalid"
	outcomeUnavailable = "unavailable"
	outcomeError       = "error"
)

// Engine coordinates the pipeline stages. It is safe for concurrent use.
type Engine struct {
	config    *Config
	logger    zerolog.Logger
	store     *dataset.Store
	filter    *eligibility.Filter
	predictor *predictor.Predictor
	ranker    *gapranker.Ranker

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// NewEngine wires the pipeline stages.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, store *dataset.Store, filter *eligibility.Filter, pred *predictor.Predictor, ranker *gapranker.Ranker, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil || filter == nil || pred == nil || ranker == nil {
		return nil, errors.New("recommend: store, filter, predictor and ranker are required")
	}
	return &Engine{
		config:    cfg,
		logger:    logger.With().Str("component", "recommend").Logger(),
		store:     store,
		filter:    filter,
		predictor: pred,
		ranker:    ranker,
	}, nil
}

// Available reports whether predictions can be served: the dataset must be
// loaded and a model must be present.
func (e *Engine) Available() error {
	if err := e.store.Snapshot().Available(); err != nil {
		return err
	}
	return e.predictor.Available()
}

// Stats returns request and error counters.
func (e *Engine) Stats() (requests, errs int64) {
	return e.requestCount.Load(), e.errorCount.Load()
}

// Predict runs the pipeline for one profile.
func (e *Engine) Predict(ctx context.Context, profile models.ApplicantProfile) (*models.PredictionResult, error) {
	start := time.Now()
	e.requestCount.Add(1)

	profile, err := e.prepareProfile(profile)
	if err != nil {
		metrics.RecordPrediction(outcomeInvalid, time.Since(start))
		return nil, err
	}

	if err := e.Available(); err != nil {
		metrics.RecordPrediction(outcomeUnavailable, time.Since(start))
		return nil, err
	}

	snap := e.store.Snapshot()
	logger := e.requestLogger(ctx, &profile, snap.Generation)

	var (
		ranked []gapranker.Candidate
		diag   models.Diagnostics
	)
	if profile.IsMultiBranch() {
		ranked, diag, err = e.runMultiBranch(ctx, snap, &profile)
	} else {
		ranked, diag, err = e.runSingle(snap, &profile)
	}
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordPrediction(outcomeError, time.Since(start))
		logger.Error().Err(err).Msg("Prediction failed")
		return nil, err
	}
	diag.Generation = snap.Generation

	predictions := buildPredictions(ranked)
	result := &models.PredictionResult{
		Predictions: predictions,
		Statistics:  Statistics(predictions),
		Diagnostics: diag,
	}

	outcome := outcomeOK
	if len(predictions) == 0 {
		outcome = outcomeEmpty
	}
	metrics.RecordPrediction(outcome, time.Since(start))
	metrics.RecordPredictionPath(string(diag.FallbackLevel), string(diag.Window), diag.SkippedRecords)

	event := logger.Info()
	if diag.SkippedRecords > 0 {
		event = logger.Warn()
	}
	event.
		Int("results", len(predictions)).
		Bool("fallback_used", diag.FallbackUsed).
		Str("fallback_level", string(diag.FallbackLevel)).
		Str("window", string(diag.Window)).
		Bool("data_absent", diag.DataAbsent).
		Int("eligible", diag.EligibleCount).
		Int("skipped", diag.SkippedRecords).
		Dur("duration", time.Since(start)).
		Msg("Prediction complete")

	return result, nil
}

// prepareProfile validates the profile and applies defaults.
//
//nolint:gocritic // hugeParam: profile passed by value so defaults never leak to the caller
func (e *Engine) prepareProfile(p models.ApplicantProfile) (models.ApplicantProfile, error) {
	if p.Rank <= 0 {
		return p, fmt.Errorf("%w: rank must be a positive integer", ErrInvalidProfile)
	}
	if math.IsNaN(p.Percentile) || p.Percentile < 0 || p.Percentile > 100 {
		return p, fmt.Errorf("%w: percentile must be between 0 and 100", ErrInvalidProfile)
	}

	p.Category = strings.TrimSpace(p.Category)
	if p.Category == "" {
		p.Category = "OPEN"
	}
	if _, err := e.filter.AllowedCodes(p.Category); err != nil {
		return p, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	switch {
	case p.Limit <= 0:
		p.Limit = e.config.DefaultLimit
	case p.Limit > e.config.MaxLimit:
		p.Limit = e.config.MaxLimit
	}

	p.City = strings.TrimSpace(p.City)
	p.Branches = uniqueBranches(p.Branches)
	if len(p.Branches) > e.config.MaxBranches {
		return p, fmt.Errorf("%w: at most %d branches per request", ErrInvalidProfile, e.config.MaxBranches)
	}
	return p, nil
}

// uniqueBranches trims, drops empties and removes case-insensitive repeats,
// keeping first-seen order.
func uniqueBranches(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, b := range in {
		b = strings.TrimSpace(b)
		key := strings.ToLower(b)
		if b == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, b)
	}
	return out
}

func (e *Engine) requestLogger(ctx context.Context, p *models.ApplicantProfile, generation uint64) zerolog.Logger {
	l := logging.Ctx(ctx).With().
		Str("component", "recommend").
		Float64("percentile", p.Percentile).
		Str("category", p.Category).
		Str("gender", string(p.Gender)).
		Str("city", p.City).
		Strs("branches", p.Branches).
		Int("limit", p.Limit).
		Uint64("generation", generation).
		Logger()
	return l
}

// runSingle is one filter -> predict -> gap -> dedup pass.
func (e *Engine) runSingle(snap *dataset.Snapshot, p *models.ApplicantProfile) ([]gapranker.Candidate, models.Diagnostics, error) {
	diag := models.Diagnostics{
		Branch:        p.Branch(),
		FallbackLevel: models.FallbackNone,
		Window:        models.WindowNone,
	}

	eligible, err := e.filter.Apply(snap.Records, p)
	if err != nil {
		return nil, diag, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	diag.FallbackLevel = eligible.Level
	diag.FallbackUsed = eligible.FallbackUsed()
	diag.DataAbsent = eligible.DataAbsent
	diag.EligibleCount = len(eligible.Records)
	if len(eligible.Records) == 0 {
		return []gapranker.Candidate{}, diag, nil
	}

	scored, skipped, err := e.predictor.Score(eligible.Records)
	diag.SkippedRecords = skipped
	if err != nil {
		return nil, diag, fmt.Errorf("score candidates: %w", err)
	}

	candidates, window := e.ranker.Rank(p.Percentile, scored)
	diag.Window = window
	diag.CandidateCount = len(candidates)

	sortCandidates(candidates)
	out := dedupe(candidates, collegeKey)
	if len(out) > p.Limit {
		out = out[:p.Limit]
	}
	return out, diag, nil
}

// runMultiBranch fans out per branch and merges the branch lists.
func (e *Engine) runMultiBranch(ctx context.Context, snap *dataset.Snapshot, p *models.ApplicantProfile) ([]gapranker.Candidate, models.Diagnostics, error) {
	diag := models.Diagnostics{
		FallbackLevel: models.FallbackNone,
		Window:        models.WindowNone,
		DataAbsent:    true,
		PerBranch:     make([]models.Diagnostics, 0, len(p.Branches)),
	}

	var merged []gapranker.Candidate
	for _, branch := range p.Branches {
		if err := ctx.Err(); err != nil {
			return nil, diag, err
		}
		sub := *p
		sub.Branches = []string{branch}

		part, d, err := e.runSingle(snap, &sub)
		if err != nil {
			return nil, diag, fmt.Errorf("branch %q: %w", branch, err)
		}
		merged = append(merged, part...)
		diag.PerBranch = append(diag.PerBranch, d)

		diag.FallbackUsed = diag.FallbackUsed || d.FallbackUsed
		if d.FallbackLevel.Severity() > diag.FallbackLevel.Severity() {
			diag.FallbackLevel = d.FallbackLevel
		}
		if windowOrder(d.Window) > windowOrder(diag.Window) {
			diag.Window = d.Window
		}
		diag.DataAbsent = diag.DataAbsent && d.DataAbsent
		diag.EligibleCount += d.EligibleCount
		diag.CandidateCount += d.CandidateCount
		diag.SkippedRecords += d.SkippedRecords
	}

	sortCandidates(merged)
	out := dedupe(merged, collegeBranchKey)
	if len(out) > p.Limit {
		out = out[:p.Limit]
	}
	return out, diag, nil
}

func windowOrder(w models.GapWindow) int {
	switch w {
	case models.WindowPrimary:
		return 1
	case models.WindowWidened1:
		return 2
	case models.WindowWidened2:
		return 3
	case models.WindowUnbounded:
		return 4
	default:
		return 0
	}
}
