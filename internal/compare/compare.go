// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

// Package compare answers historical lookups over the cutoff table: per-college
// year series, rank trends, catalog listings and cross-college intersections.
// It shares the normalization tables with the prediction pipeline but not its
// scoring.
package compare

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/supriyamulik/cet-college-predictor/internal/dataset"
	"github.com/supriyamulik/cet-college-predictor/internal/models"
	"github.com/supriyamulik/cet-college-predictor/internal/normalize"
)

// TrendThresholdPercent is the relative rank change that counts as a trend.
const TrendThresholdPercent = 5.0

// Engine reads from the current dataset snapshot on every call.
type Engine struct {
	store *dataset.Store
	maps  *normalize.Maps
}

// NewEngine returns a comparison engine.
func NewEngine(store *dataset.Store, maps *normalize.Maps) *Engine {
	if maps == nil {
		maps = normalize.Default()
	}
	return &Engine{store: store, maps: maps}
}

// snapshot returns the active snapshot or the reason it cannot be used.
func (e *Engine) snapshot() (*dataset.Snapshot, error) {
	snap := e.store.Snapshot()
	if err := snap.Available(); err != nil {
		return nil, err
	}
	return snap, nil
}

// CollegeData returns every year of one college/branch/category, oldest first.
// The branch matches case-insensitively or by normalized group; the category
// must match exactly after upper-casing.
func (e *Engine) CollegeData(code, branch, category string) ([]models.CollegeYearRecord, error) {
	snap, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	return e.collegeData(snap, code, branch, category), nil
}

func (e *Engine) collegeData(snap *dataset.Snapshot, code, branch, category string) []models.CollegeYearRecord {
	code = strings.TrimSpace(code)
	category = strings.ToUpper(strings.TrimSpace(category))
	match := e.branchMatcher(branch)
	url := snap.CollegeURL(code)

	out := []models.CollegeYearRecord{}
	for i := range snap.Records {
		r := &snap.Records[i]
		if r.CollegeCode != code || r.Category != category || !match(r.BranchName) {
			continue
		}
		out = append(out, e.annotate(r, url))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return yearLess(out[i].Year, out[j].Year)
	})
	return out
}

// Compare runs CollegeData for each code.
func (e *Engine) Compare(codes []string, branch, category string) (map[string][]models.CollegeYearRecord, error) {
	snap, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]models.CollegeYearRecord, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		out[code] = e.collegeData(snap, code, branch, category)
	}
	return out, nil
}

// TrendAnalysis compares the first and last closing rank of the series.
// A larger rank number later means the seat became easier to get.
func (e *Engine) TrendAnalysis(code, branch, category string) (models.TrendAnalysis, error) {
	data, err := e.CollegeData(code, branch, category)
	if err != nil {
		return models.TrendAnalysis{}, err
	}
	return Trend(data), nil
}

// Trend classifies a year series that is already sorted oldest first.
func Trend(data []models.CollegeYearRecord) models.TrendAnalysis {
	if len(data) < 2 {
		return models.TrendAnalysis{
			Trend:          models.TrendInsufficientData,
			YearsAvailable: len(data),
			Message:        "Need at least 2 years of data for trend analysis",
		}
	}

	var ranks []int
	for i := range data {
		if data[i].HasRank() {
			ranks = append(ranks, data[i].ClosingRank)
		}
	}
	if len(ranks) < 2 {
		return models.TrendAnalysis{
			Trend:          models.TrendNoRankData,
			YearsAvailable: len(data),
			Message:        "No rank data available",
		}
	}

	first, last := ranks[0], ranks[len(ranks)-1]
	change := last - first
	pct := float64(change) * 100 / float64(first)

	trend := models.TrendStable
	switch {
	case pct >= TrendThresholdPercent:
		trend = models.TrendDecreasingCompetition
	case pct <= -TrendThresholdPercent:
		trend = models.TrendIncreasingCompetition
	}

	return models.TrendAnalysis{
		Trend:             trend,
		YearsAvailable:    len(data),
		FirstYear:         data[0].Year,
		LastYear:          data[len(data)-1].Year,
		FirstRank:         first,
		LastRank:          last,
		RankChange:        change,
		RankChangePercent: math.Round(pct*100) / 100,
		AllYearsData:      data,
	}
}

func (e *Engine) annotate(r *models.CutoffRecord, url string) models.CollegeYearRecord {
	return models.CollegeYearRecord{
		CutoffRecord:       *r,
		BranchNormalized:   e.maps.Branch(r.BranchName),
		CategoryNormalized: e.maps.Category(r.Category),
		TypeNormalized:     e.maps.Type(r.Type),
		CollegeURL:         url,
	}
}

// branchMatcher matches a branch name case-insensitively or by group.
func (e *Engine) branchMatcher(branch string) func(string) bool {
	lower := strings.ToLower(strings.TrimSpace(branch))
	group := e.maps.Branch(branch)
	return func(name string) bool {
		return strings.ToLower(strings.TrimSpace(name)) == lower || e.maps.Branch(name) == group
	}
}

// yearLess orders numeric years numerically and anything else lexically.
func yearLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}
