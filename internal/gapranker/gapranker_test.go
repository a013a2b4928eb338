// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package gapranker

import (
	"testing"

	"github.com/supriyamulik/cet-college-predictor/internal/models"
	"github.com/supriyamulik/cet-college-predictor/internal/predictor"
)

func newRanker(t *testing.T) *Ranker {
	t.Helper()
	r, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func scored(predicted ...float64) []predictor.Scored {
	out := make([]predictor.Scored, len(predicted))
	for i, p := range predicted {
		out[i] = predictor.Scored{Record: models.CutoffRecord{CollegeCode: string(rune('A' + i))}, Predicted: p}
	}
	return out
}

func TestProbabilityTable(t *testing.T) {
	r := newRanker(t)
	tests := []struct {
		gap  float64
		want float64
	}{
		{12, 90}, {5, 90}, {4.99, 80}, {3, 80}, {2.5, 70}, {0, 70},
		{-0.01, 60}, {-2, 60}, {-3, 50}, {-5, 50}, {-7, 40}, {-10, 40},
		{-10.01, 30}, {-50, 30},
	}
	for _, tt := range tests {
		if got := r.Probability(tt.gap); got != tt.want {
			t.Errorf("Probability(%v) = %v, want %v", tt.gap, got, tt.want)
		}
	}
}

func TestTierBoundaries(t *testing.T) {
	r := newRanker(t)
	tests := []struct {
		prob float64
		want models.Tier
	}{
		{90, models.TierHigh},
		{70, models.TierHigh},
		{69.99, models.TierModerate},
		{50, models.TierModerate},
		{49.99, models.TierBackup},
		{30, models.TierBackup},
	}
	for _, tt := range tests {
		if got := r.Tier(tt.prob); got != tt.want {
			t.Errorf("Tier(%v) = %s, want %s", tt.prob, got, tt.want)
		}
	}
}

func TestRankWindows(t *testing.T) {
	r := newRanker(t)
	tests := []struct {
		name       string
		percentile float64
		predicted  []float64
		wantWindow models.GapWindow
		wantCount  int
	}{
		{"primary bands", 80, []float64{80, 85, 76, 70, 60, 82.5}, models.WindowPrimary, 3},
		{"band gap excluded", 80, []float64{82.5, 77.5}, models.WindowWidened1, 2},
		{"widened once", 80, []float64{93, 40}, models.WindowWidened1, 1},
		{"widened twice", 80, []float64{99, 40}, models.WindowWidened2, 1},
		{"unbounded", 50, []float64{0, 100}, models.WindowUnbounded, 2},
		{"empty input", 50, nil, models.WindowNone, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, window := r.Rank(tt.percentile, scored(tt.predicted...))
			if window != tt.wantWindow {
				t.Errorf("window = %s, want %s", window, tt.wantWindow)
			}
			if len(got) != tt.wantCount {
				t.Errorf("admitted %d, want %d", len(got), tt.wantCount)
			}
		})
	}
}

func TestRankFields(t *testing.T) {
	r := newRanker(t)
	got, _ := r.Rank(90, scored(94))
	if len(got) != 1 {
		t.Fatalf("admitted %d", len(got))
	}
	c := got[0]
	if c.Gap != -4 || c.Closeness != 4 || c.Probability != 50 || c.Tier != models.TierModerate {
		t.Errorf("candidate = %+v", c)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no bands", func(c *Config) { c.Bands = nil }},
		{"inverted band", func(c *Config) { c.Bands[0] = Band{Min: 3, Max: -3} }},
		{"narrowing window", func(c *Config) { c.Widening[1] = Band{Min: -5, Max: 5} }},
		{"ascending steps", func(c *Config) { c.Steps[1].MinGap = 10 }},
		{"increasing probability", func(c *Config) { c.Steps[1].Probability = 95 }},
		{"floor above last step", func(c *Config) { c.FloorProbability = 45 }},
		{"tiers inverted", func(c *Config) { c.HighThreshold = 40 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := New(cfg); err == nil {
				t.Error("New() accepted an invalid config")
			}
		})
	}
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}
