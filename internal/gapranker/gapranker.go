// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

// Package gapranker scores candidates by the gap between the applicant's
// percentile and each row's predicted cutoff.
//
// Rows are admitted through gap bands (the primary pass), then through
// progressively wider windows when the primary pass is empty. Admitted rows
// get a probability from a fixed step table and a tier derived from it.
package gapranker

import (
	"errors"
	"fmt"
	"math"

	"github.com/supriyamulik/cet-college-predictor/internal/models"
	"github.com/supriyamulik/cet-college-predictor/internal/predictor"
)

// Band is an inclusive gap range [Min, Max].
type Band struct {
	Name string  `koanf:"name" json:"name"`
	Min  float64 `koanf:"min" json:"min"`
	Max  float64 `koanf:"max" json:"max"`
}

// Contains reports whether gap lies within the band.
func (b Band) Contains(gap float64) bool {
	return gap >= b.Min && gap <= b.Max
}

// Step maps every gap >= MinGap to Probability.
type Step struct {
	MinGap      float64 `koanf:"min_gap" json:"min_gap"`
	Probability float64 `koanf:"probability" json:"probability"`
}

// Config holds the tunable thresholds.
type Config struct {
	// Bands is the primary admissibility pass.
	Bands []Band `koanf:"bands"`
	// Widening windows are tried in order when the primary pass is empty;
	// the whole candidate set is used when every window is empty.
	Widening []Band `koanf:"widening"`
	// Steps must be ordered by descending MinGap.
	Steps []Step `koanf:"steps"`
	// FloorProbability applies below the last step.
	FloorProbability  float64 `koanf:"floor_probability"`
	HighThreshold     float64 `koanf:"high_threshold"`
	ModerateThreshold float64 `koanf:"moderate_threshold"`
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		Bands: []Band{
			{Name: "stretch", Min: -10, Max: -3},
			{Name: "match", Min: -2, Max: 2},
			{Name: "safety", Min: 3, Max: 6},
		},
		Widening: []Band{
			{Name: string(models.WindowWidened1), Min: -15, Max: 10},
			{Name: string(models.WindowWidened2), Min: -20, Max: 15},
		},
		Steps: []Step{
			{MinGap: 5, Probability: 90},
			{MinGap: 3, Probability: 80},
			{MinGap: 0, Probability: 70},
			{MinGap: -2, Probability: 60},
			{MinGap: -5, Probability: 50},
			{MinGap: -10, Probability: 40},
		},
		FloorProbability:  30,
		HighThreshold:     70,
		ModerateThreshold: 50,
	}
}

// Validate checks ordering constraints.
func (c *Config) Validate() error {
	if len(c.Bands) == 0 {
		return errors.New("at least one gap band is required")
	}
	for _, b := range c.Bands {
		if b.Min > b.Max {
			return fmt.Errorf("gap band %q: min %.2f > max %.2f", b.Name, b.Min, b.Max)
		}
	}
	for i, w := range c.Widening {
		if w.Min > w.Max {
			return fmt.Errorf("widening window %d: min %.2f > max %.2f", i+1, w.Min, w.Max)
		}
		if i > 0 {
			prev := c.Widening[i-1]
			if w.Min > prev.Min || w.Max < prev.Max {
				return fmt.Errorf("widening window %d does not contain window %d", i+1, i)
			}
		}
	}
	for i := 1; i < len(c.Steps); i++ {
		if c.Steps[i].MinGap >= c.Steps[i-1].MinGap {
			return fmt.Errorf("probability steps must have strictly descending min_gap (step %d)", i+1)
		}
		if c.Steps[i].Probability > c.Steps[i-1].Probability {
			return fmt.Errorf("probability steps must not increase (step %d)", i+1)
		}
	}
	if n := len(c.Steps); n > 0 && c.FloorProbability > c.Steps[n-1].Probability {
		return errors.New("floor probability exceeds the last step")
	}
	if c.HighThreshold < c.ModerateThreshold {
		return fmt.Errorf("high threshold %.2f below moderate threshold %.2f", c.HighThreshold, c.ModerateThreshold)
	}
	return nil
}

// Candidate is a scored row admitted by the ranker.
type Candidate struct {
	Record      models.CutoffRecord
	Predicted   float64
	Gap         float64
	Probability float64
	Closeness   float64
	Tier        models.Tier
}

// Ranker applies a Config. It is immutable and safe for concurrent use.
type Ranker struct {
	cfg Config
}

// New validates cfg and returns a ranker.
func New(cfg Config) (*Ranker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gap ranker config: %w", err)
	}
	return &Ranker{cfg: cfg}, nil
}

// Probability maps a gap to the step table.
func (r *Ranker) Probability(gap float64) float64 {
	for _, s := range r.cfg.Steps {
		if gap >= s.MinGap {
			return s.Probability
		}
	}
	return r.cfg.FloorProbability
}

// Tier labels a probability.
func (r *Ranker) Tier(probability float64) models.Tier {
	switch {
	case probability >= r.cfg.HighThreshold:
		return models.TierHigh
	case probability >= r.cfg.ModerateThreshold:
		return models.TierModerate
	default:
		return models.TierBackup
	}
}

// Gap is applicant percentile minus predicted cutoff.
func Gap(percentile, predicted float64) float64 {
	return percentile - predicted
}

// Closeness is the unsigned distance used for ordering.
func Closeness(percentile, predicted float64) float64 {
	return math.Abs(percentile - predicted)
}

// Rank admits and scores candidates, widening until something is admitted.
// The returned window tells which pass produced the result; WindowNone is
// returned only for empty input.
func (r *Ranker) Rank(percentile float64, scored []predictor.Scored) ([]Candidate, models.GapWindow) {
	if len(scored) == 0 {
		return []Candidate{}, models.WindowNone
	}

	if out := r.admit(percentile, scored, r.cfg.Bands); len(out) > 0 {
		return out, models.WindowPrimary
	}
	for i, w := range r.cfg.Widening {
		if out := r.admit(percentile, scored, []Band{w}); len(out) > 0 {
			return out, widenedWindow(i)
		}
	}
	return r.admit(percentile, scored, nil), models.WindowUnbounded
}

func widenedWindow(i int) models.GapWindow {
	switch i {
	case 0:
		return models.WindowWidened1
	case 1:
		return models.WindowWidened2
	default:
		return models.GapWindow(fmt.Sprintf("widened_%d", i+1))
	}
}

// admit keeps rows whose gap lies in any band; nil bands admit everything.
func (r *Ranker) admit(percentile float64, scored []predictor.Scored, bands []Band) []Candidate {
	out := []Candidate{}
	for i := range scored {
		gap := Gap(percentile, scored[i].Predicted)
		if bands != nil && !inAny(bands, gap) {
			continue
		}
		prob := r.Probability(gap)
		out = append(out, Candidate{
			Record:      scored[i].Record,
			Predicted:   scored[i].Predicted,
			Gap:         gap,
			Probability: prob,
			Closeness:   Closeness(percentile, scored[i].Predicted),
			Tier:        r.Tier(prob),
		})
	}
	return out
}

func inAny(bands []Band, gap float64) bool {
	for _, b := range bands {
		if b.Contains(gap) {
			return true
		}
	}
	return false
}
