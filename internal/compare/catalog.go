// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package compare

import (
	"sort"
	"strings"

	"github.com/supriyamulik/cet-college-predictor/internal/dataset"
	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

// AvailableBranches lists the raw branch names offered by the given colleges,
// or by every college when codes is empty.
func (e *Engine) AvailableBranches(codes []string) ([]string, error) {
	snap, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	return collect(snap, codeSet(codes), nil, func(r *models.CutoffRecord) string { return r.BranchName }), nil
}

// AvailableCategories lists category codes for the given colleges, narrowed
// to one branch when branch is non-empty.
func (e *Engine) AvailableCategories(codes []string, branch string) ([]string, error) {
	snap, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	var match func(string) bool
	if strings.TrimSpace(branch) != "" {
		match = e.branchMatcher(branch)
	}
	return collect(snap, codeSet(codes), match, func(r *models.CutoffRecord) string { return r.Category }), nil
}

// CommonBranches lists branches offered by every one of the colleges.
func (e *Engine) CommonBranches(codes []string) ([]string, error) {
	return e.intersect(codes, func(code string) ([]string, error) {
		return e.AvailableBranches([]string{code})
	})
}

// CommonCategories lists categories offered by every one of the colleges.
func (e *Engine) CommonCategories(codes []string, branch string) ([]string, error) {
	return e.intersect(codes, func(code string) ([]string, error) {
		return e.AvailableCategories([]string{code}, branch)
	})
}

func (e *Engine) intersect(codes []string, list func(string) ([]string, error)) ([]string, error) {
	if _, err := e.snapshot(); err != nil {
		return nil, err
	}
	out := []string{}
	for i, code := range codes {
		values, err := list(code)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			out = values
			continue
		}
		keep := make(map[string]struct{}, len(values))
		for _, v := range values {
			keep[v] = struct{}{}
		}
		filtered := out[:0:0]
		for _, v := range out {
			if _, ok := keep[v]; ok {
				filtered = append(filtered, v)
			}
		}
		out = filtered
	}
	return out, nil
}

// Cities lists every city in the table.
func (e *Engine) Cities() ([]string, error) {
	snap, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Filters().Cities, nil
}

// Types lists the normalized institution type groups.
func (e *Engine) Types() []string {
	return e.maps.TypeNames()
}

// CategoryInfo describes a category code.
func (e *Engine) CategoryInfo(code string) models.CategoryInfo {
	return e.maps.Info(code)
}

// CollegeStats aggregates all rows of one college. The boolean is false when
// the college is unknown.
func (e *Engine) CollegeStats(code string) (models.CollegeStats, bool, error) {
	snap, err := e.snapshot()
	if err != nil {
		return models.CollegeStats{}, false, err
	}
	code = strings.TrimSpace(code)

	var rows []*models.CutoffRecord
	for i := range snap.Records {
		if snap.Records[i].CollegeCode == code {
			rows = append(rows, &snap.Records[i])
		}
	}
	if len(rows) == 0 {
		return models.CollegeStats{}, false, nil
	}

	latest := rows[0]
	branches := newOrderedSet()
	normalized := newOrderedSet()
	categories := newOrderedSet()
	years := newOrderedSet()
	var (
		rankSum, rankN   int
		rankMin, rankMax int
		pctSum           float64
	)
	for _, r := range rows {
		if yearLess(latest.Year, r.Year) {
			latest = r
		}
		branches.add(r.BranchName)
		normalized.add(e.maps.Branch(r.BranchName))
		categories.add(r.Category)
		years.add(r.Year)
		pctSum += r.ClosingPercentile
		if r.HasRank() {
			if rankN == 0 || r.ClosingRank < rankMin {
				rankMin = r.ClosingRank
			}
			if r.ClosingRank > rankMax {
				rankMax = r.ClosingRank
			}
			rankSum += r.ClosingRank
			rankN++
		}
	}

	yearList := years.values()
	sort.SliceStable(yearList, func(i, j int) bool { return yearLess(yearList[i], yearList[j]) })
	normList := normalized.values()
	sort.Strings(normList)

	avgPct := pctSum / float64(len(rows))
	stats := models.CollegeStats{
		CollegeCode:                 code,
		CollegeName:                 latest.CollegeName,
		City:                        latest.City,
		Type:                        latest.Type,
		TypeNormalized:              e.maps.Type(latest.Type),
		CollegeURL:                  snap.CollegeURL(code),
		TotalBranches:               len(branches.values()),
		AvailableBranches:           branches.values(),
		AvailableBranchesNormalized: normList,
		AvailableCategories:         categories.values(),
		YearsOfData:                 yearList,
		AvgClosingPercentile:        &avgPct,
	}
	if rankN > 0 {
		avg := rankSum / rankN
		stats.AvgClosingRank = &avg
		stats.MinClosingRank = &rankMin
		stats.MaxClosingRank = &rankMax
	}
	return stats, true, nil
}

// ListColleges returns one summary per college from the latest year of the
// rows matching city (substring) and type (normalized group).
func (e *Engine) ListColleges(city, institutionType string) ([]models.CollegeSummary, error) {
	return e.SearchColleges("", city, institutionType)
}

// SearchColleges is ListColleges narrowed to names containing query.
func (e *Engine) SearchColleges(query, city, institutionType string) ([]models.CollegeSummary, error) {
	snap, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	c := strings.ToLower(strings.TrimSpace(city))
	t := strings.TrimSpace(institutionType)

	var matched []*models.CutoffRecord
	latestYear := ""
	for i := range snap.Records {
		r := &snap.Records[i]
		if q != "" && !strings.Contains(strings.ToLower(r.CollegeName), q) {
			continue
		}
		if c != "" && !strings.Contains(strings.ToLower(r.City), c) {
			continue
		}
		if t != "" && e.maps.Type(r.Type) != t {
			continue
		}
		matched = append(matched, r)
		if latestYear == "" || yearLess(latestYear, r.Year) {
			latestYear = r.Year
		}
	}

	out := []models.CollegeSummary{}
	seen := make(map[string]struct{})
	for _, r := range matched {
		if r.Year != latestYear {
			continue
		}
		if _, dup := seen[r.CollegeCode]; dup {
			continue
		}
		seen[r.CollegeCode] = struct{}{}
		out = append(out, models.CollegeSummary{
			CollegeCode:    r.CollegeCode,
			CollegeName:    r.CollegeName,
			City:           r.City,
			Type:           r.Type,
			TypeNormalized: e.maps.Type(r.Type),
			CollegeURL:     snap.CollegeURL(r.CollegeCode),
			Year:           r.Year,
		})
	}
	return out, nil
}

func codeSet(codes []string) map[string]struct{} {
	if len(codes) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[strings.TrimSpace(c)] = struct{}{}
	}
	return set
}

// collect returns sorted unique non-empty values of field over the rows of
// the given colleges (all when codes is nil) that pass branch.
func collect(snap *dataset.Snapshot, codes map[string]struct{}, branch func(string) bool, field func(*models.CutoffRecord) string) []string {
	set := make(map[string]struct{})
	for i := range snap.Records {
		r := &snap.Records[i]
		if codes != nil {
			if _, ok := codes[r.CollegeCode]; !ok {
				continue
			}
		}
		if branch != nil && !branch(r.BranchName) {
			continue
		}
		if v := field(r); v != "" {
			set[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{}), items: []string{}}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func (s *orderedSet) values() []string {
	return s.items
}
