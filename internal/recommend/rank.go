// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/supriyamulik/cet-college-predictor/internal/gapranker"
	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

// sortCandidates orders by closeness asc, closing percentile desc, type
// weight desc, then identity fields for a total order.
func sortCandidates(c []gapranker.Candidate) {
	sort.SliceStable(c, func(i, j int) bool {
		a, b := &c[i], &c[j]
		if a.Closeness != b.Closeness {
			return a.Closeness < b.Closeness
		}
		if a.Record.ClosingPercentile != b.Record.ClosingPercentile {
			return a.Record.ClosingPercentile > b.Record.ClosingPercentile
		}
		if a.Record.TypeWeight != b.Record.TypeWeight {
			return a.Record.TypeWeight > b.Record.TypeWeight
		}
		if a.Record.CollegeCode != b.Record.CollegeCode {
			return a.Record.CollegeCode < b.Record.CollegeCode
		}
		if a.Record.BranchName != b.Record.BranchName {
			return a.Record.BranchName < b.Record.BranchName
		}
		if a.Record.Category != b.Record.Category {
			return a.Record.Category < b.Record.Category
		}
		return a.Record.Year > b.Record.Year
	})
}

// collegeKey identifies a college: its code, or its name when the code is missing.
func collegeKey(r *models.CutoffRecord) string {
	if r.CollegeCode != "" {
		return r.CollegeCode
	}
	return "name:" + strings.ToLower(r.CollegeName)
}

func collegeBranchKey(r *models.CutoffRecord) string {
	return collegeKey(r) + "|" + strings.ToLower(r.BranchName)
}

// dedupe keeps the first candidate per key; input must already be sorted.
func dedupe(sorted []gapranker.Candidate, key func(*models.CutoffRecord) string) []gapranker.Candidate {
	seen := make(map[string]struct{}, len(sorted))
	out := make([]gapranker.Candidate, 0, len(sorted))
	for i := range sorted {
		k := key(&sorted[i].Record)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, sorted[i])
	}
	return out
}

// buildPredictions assigns dense 1-based ranks and rounds to two decimals.
func buildPredictions(ranked []gapranker.Candidate) []models.Prediction {
	out := make([]models.Prediction, len(ranked))
	for i := range ranked {
		c := &ranked[i]
		round := c.Record.Round
		if round == 0 {
			round = 1
		}
		out[i] = models.Prediction{
			Rank:                 i + 1,
			CollegeCode:          c.Record.CollegeCode,
			CollegeName:          c.Record.CollegeName,
			Branch:               c.Record.BranchName,
			City:                 c.Record.City,
			Type:                 c.Record.Type,
			PredictedCutoff:      round2(c.Predicted),
			HistoricalCutoff:     round2(c.Record.ClosingPercentile),
			CutoffRank:           c.Record.ClosingRank,
			AdmissionProbability: round2(c.Probability),
			PercentileGap:        round2(c.Gap),
			Closeness:            round2(c.Closeness),
			Tier:                 c.Tier,
			QuotaCategory:        c.Record.Category,
			Year:                 c.Record.Year,
			Round:                round,
			TypeWeight:           c.Record.TypeWeight,
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
