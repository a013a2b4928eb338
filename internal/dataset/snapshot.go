// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package dataset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/supriyamulik/cet-college-predictor/internal/models"
	"github.com/supriyamulik/cet-college-predictor/internal/normalize"
)

// NormalizedFallback is used for every row when the table has a single
// distinct closing percentile.
const NormalizedFallback = 0.5

const (
	infoListLimit   = 20
	searchLimit     = 20
	SearchColleges  = "college"
	SearchBranches  = "branch"
	SearchCities    = "city"
	defaultSearchBy = SearchColleges
)

// Data is what a Loader hands to the Store.
type Data struct {
	Records   []models.CutoffRecord
	Directory []models.DirectoryEntry
	Skipped   int
	Source    string
}

// Snapshot is one immutable generation of the dataset. Nothing in it may be
// modified after it is published.
type Snapshot struct {
	Records       []models.CutoffRecord
	MinPercentile float64
	MaxPercentile float64
	Branches      []string
	Cities        []string
	Categories    []string
	Directory     []models.DirectoryEntry
	CollegeURLs   map[string]string
	Generation    uint64
	LoadedAt      time.Time
	Source        string
	Skipped       int
	LoadErr       error
}

// NewSnapshot derives features and lookup lists from data. Records are
// copied, so the caller may reuse its slice.
func NewSnapshot(data *Data) *Snapshot {
	s := &Snapshot{
		Records:     make([]models.CutoffRecord, len(data.Records)),
		Directory:   data.Directory,
		CollegeURLs: make(map[string]string, len(data.Directory)),
		Source:      data.Source,
		Skipped:     data.Skipped,
		LoadedAt:    time.Now().UTC(),
	}
	copy(s.Records, data.Records)

	for _, d := range data.Directory {
		if d.CollegeCode != "" && d.URL != "" {
			s.CollegeURLs[d.CollegeCode] = d.URL
		}
	}

	if len(s.Records) == 0 {
		return s
	}

	s.MinPercentile, s.MaxPercentile = s.Records[0].ClosingPercentile, s.Records[0].ClosingPercentile
	branches := make(map[string]struct{})
	cities := make(map[string]struct{})
	categories := make(map[string]struct{})
	for i := range s.Records {
		r := &s.Records[i]
		if r.ClosingPercentile < s.MinPercentile {
			s.MinPercentile = r.ClosingPercentile
		}
		if r.ClosingPercentile > s.MaxPercentile {
			s.MaxPercentile = r.ClosingPercentile
		}
		addNonEmpty(branches, r.BranchName)
		addNonEmpty(cities, r.City)
		addNonEmpty(categories, r.Category)
	}

	span := s.MaxPercentile - s.MinPercentile
	for i := range s.Records {
		r := &s.Records[i]
		r.TypeWeight = normalize.TypeWeight(r.Type)
		if span > 0 {
			r.CNormalized = (r.ClosingPercentile - s.MinPercentile) / span
		} else {
			r.CNormalized = NormalizedFallback
		}
	}

	s.Branches = sortedKeys(branches)
	s.Cities = sortedKeys(cities)
	s.Categories = sortedKeys(categories)
	return s
}

func emptySnapshot(source string, loadErr error) *Snapshot {
	return &Snapshot{
		CollegeURLs: map[string]string{},
		Source:      source,
		LoadedAt:    time.Now().UTC(),
		LoadErr:     loadErr,
	}
}

// Available returns nil when the snapshot came from a successful load.
func (s *Snapshot) Available() error {
	switch {
	case s.LoadErr == nil:
		return nil
	case errors.Is(s.LoadErr, ErrNotLoaded):
		return s.LoadErr
	default:
		return fmt.Errorf("%w: %w", ErrNotLoaded, s.LoadErr)
	}
}

// Empty reports whether the snapshot has no usable rows.
func (s *Snapshot) Empty() bool {
	return len(s.Records) == 0
}

// CollegeURL returns the website for a college code, or "".
func (s *Snapshot) CollegeURL(code string) string {
	return s.CollegeURLs[code]
}

// Info summarizes the snapshot.
func (s *Snapshot) Info() models.DatasetInfo {
	colleges := make(map[string]struct{})
	for i := range s.Records {
		colleges[s.Records[i].CollegeCode] = struct{}{}
	}
	return models.DatasetInfo{
		TotalRecords:        len(s.Records),
		TotalColleges:       len(colleges),
		TotalBranches:       len(s.Branches),
		TotalCities:         len(s.Cities),
		AvailableBranches:   head(s.Branches, infoListLimit),
		AvailableCities:     head(s.Cities, infoListLimit),
		AvailableCategories: nonNil(s.Categories),
		MinPercentile:       s.MinPercentile,
		MaxPercentile:       s.MaxPercentile,
		Generation:          s.Generation,
	}
}

// Filters lists every branch, city and category in the snapshot.
func (s *Snapshot) Filters() models.FilterOptions {
	return models.FilterOptions{
		Branches:   nonNil(s.Branches),
		Cities:     nonNil(s.Cities),
		Categories: nonNil(s.Categories),
	}
}

// Search does a case-insensitive substring lookup over college names,
// branches or cities, capped at 20 results. An unknown kind searches colleges.
func (s *Snapshot) Search(query, kind string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []string{}
	if q == "" {
		return out
	}
	if kind == "" {
		kind = defaultSearchBy
	}

	switch kind {
	case SearchBranches:
		return matchList(s.Branches, q)
	case SearchCities:
		return matchList(s.Cities, q)
	}

	seen := make(map[string]struct{})
	for i := range s.Records {
		name := s.Records[i].CollegeName
		if _, ok := seen[name]; ok {
			continue
		}
		if strings.Contains(strings.ToLower(name), q) {
			seen[name] = struct{}{}
			out = append(out, name)
			if len(out) == searchLimit {
				break
			}
		}
	}
	return out
}

func matchList(values []string, q string) []string {
	out := []string{}
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), q) {
			out = append(out, v)
			if len(out) == searchLimit {
				break
			}
		}
	}
	return out
}

func addNonEmpty(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func head(values []string, n int) []string {
	if len(values) > n {
		values = values[:n]
	}
	return nonNil(values)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
