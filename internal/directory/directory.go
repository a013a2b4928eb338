// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

// Package directory serves the college directory (code, name, city, website)
// loaded alongside the cutoff table, and copies directory rows into option
// forms.
package directory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/supriyamulik/cet-college-predictor/internal/dataset"
	"github.com/supriyamulik/cet-college-predictor/internal/models"
	"github.com/supriyamulik/cet-college-predictor/internal/normalize"
	"github.com/supriyamulik/cet-college-predictor/internal/optionform"
)

// CityAll disables the city filter.
const CityAll = "ALL"

// Defaults for entries added straight from the directory.
const (
	DefaultBranch         = "Computer Engineering"
	DefaultQuotaCategory  = "OPEN"
	DefaultSearchCategory = "GOPENS"
	DefaultUserID         = "default"
)

var (
	// ErrNotLoaded is returned when no directory rows are available.
	ErrNotLoaded = errors.New("college directory not loaded")

	// ErrCollegeNotFound is returned when a code is not in the directory.
	ErrCollegeNotFound = errors.New("college not found in directory")
)

// Listing is the full directory with its city list.
type Listing struct {
	Colleges []models.DirectoryEntry `json:"colleges"`
	Total    int                     `json:"total"`
	Cities   []string                `json:"cities"`
}

// AddOptions override the defaults of an entry added from the directory.
// Zero values keep the default.
type AddOptions struct {
	Branch               string   `json:"branch"`
	QuotaCategory        string   `json:"quota_category"`
	SearchCategory       string   `json:"search_category"`
	Type                 string   `json:"type"`
	HistoricalCutoff     *float64 `json:"historical_cutoff"`
	PredictedCutoff      *float64 `json:"predicted_cutoff"`
	AdmissionProbability *float64 `json:"admission_probability"`
}

// Service reads the directory from the active dataset snapshot.
type Service struct {
	store *dataset.Store
	forms *optionform.Store
	maps  *normalize.Maps
	now   func() time.Time
}

// NewService wires the directory to its dataset and option form store.
func NewService(store *dataset.Store, forms *optionform.Store, maps *normalize.Maps) *Service {
	if maps == nil {
		maps = normalize.Default()
	}
	return &Service{
		store: store,
		forms: forms,
		maps:  maps,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) entries() (*dataset.Snapshot, error) {
	snap := s.store.Snapshot()
	if len(snap.Directory) == 0 {
		if err := snap.Available(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotLoaded, err)
		}
		return nil, ErrNotLoaded
	}
	return snap, nil
}

// List returns every directory row in file order plus the sorted city list.
func (s *Service) List() (*Listing, error) {
	snap, err := s.entries()
	if err != nil {
		return nil, err
	}
	colleges := append([]models.DirectoryEntry(nil), snap.Directory...)
	return &Listing{Colleges: colleges, Total: len(colleges), Cities: cities(colleges)}, nil
}

// Filter narrows the directory by exact city (CityAll or "" for any) and a
// case-insensitive substring of the name or code.
func (s *Service) Filter(city, search string) (*Listing, error) {
	snap, err := s.entries()
	if err != nil {
		return nil, err
	}
	city = strings.TrimSpace(city)
	query := strings.ToLower(strings.TrimSpace(search))

	out := []models.DirectoryEntry{}
	for _, e := range snap.Directory {
		if city != "" && !strings.EqualFold(city, CityAll) && e.City != city {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(e.CollegeName), query) &&
			!strings.Contains(strings.ToLower(e.CollegeCode), query) {
			continue
		}
		out = append(out, e)
	}
	return &Listing{Colleges: out, Total: len(out), Cities: cities(snap.Directory)}, nil
}

// Stats summarizes coverage of the directory.
func (s *Service) Stats() (models.DirectoryStats, error) {
	snap, err := s.entries()
	if err != nil {
		return models.DirectoryStats{}, err
	}
	return computeStats(snap.Directory), nil
}

func computeStats(entries []models.DirectoryEntry) models.DirectoryStats {
	withSite := 0
	for _, e := range entries {
		if e.URL != "" {
			withSite++
		}
	}
	stats := models.DirectoryStats{
		TotalColleges:       len(entries),
		TotalCities:         len(cities(entries)),
		CollegesWithWebsite: withSite,
		WebsiteCoverage:     "0%",
	}
	if len(entries) > 0 {
		stats.WebsiteCoverage = fmt.Sprintf("%.1f%%", float64(withSite)*100/float64(len(entries)))
	}
	return stats
}

// AddToForm appends the directory college to the user's option form. The
// institution type and historical cutoff come from the latest matching
// cutoff row when one exists.
func (s *Service) AddToForm(ctx context.Context, userID, code string, opts AddOptions) (*models.OptionForm, *models.OptionFormEntry, error) {
	if userID == "" {
		userID = DefaultUserID
	}
	snap, err := s.entries()
	if err != nil {
		return nil, nil, err
	}

	code = strings.TrimSpace(code)
	var found *models.DirectoryEntry
	for i := range snap.Directory {
		if snap.Directory[i].CollegeCode == code {
			found = &snap.Directory[i]
			break
		}
	}
	if found == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrCollegeNotFound, code)
	}

	entry := s.buildEntry(snap, found, opts)
	form, err := s.forms.Append(ctx, userID, entry)
	if err != nil {
		return nil, nil, err
	}
	return form, &entry, nil
}

func (s *Service) buildEntry(snap *dataset.Snapshot, d *models.DirectoryEntry, opts AddOptions) models.OptionFormEntry {
	now := s.now()
	entry := models.OptionFormEntry{
		CollegeCode:        d.CollegeCode,
		CollegeName:        d.CollegeName,
		Branch:             firstNonEmpty(opts.Branch, DefaultBranch),
		BranchCode:         d.CollegeCode + "_COMP_" + strconv.FormatInt(now.Unix(), 10),
		City:               d.City,
		Type:               firstNonEmpty(opts.Type, normalize.Unknown),
		QuotaCategory:      firstNonEmpty(strings.ToUpper(opts.QuotaCategory), DefaultQuotaCategory),
		SearchCategory:     firstNonEmpty(strings.ToUpper(opts.SearchCategory), DefaultSearchCategory),
		AddedFromDirectory: true,
		AddedAt:            now,
	}

	if latest := s.latestCutoff(snap, entry.CollegeCode, entry.Branch, entry.SearchCategory); latest != nil {
		if opts.Type == "" && latest.Type != "" {
			entry.Type = latest.Type
		}
		entry.HistoricalCutoff = latest.ClosingPercentile
	}
	if opts.HistoricalCutoff != nil {
		entry.HistoricalCutoff = *opts.HistoricalCutoff
	}
	if opts.PredictedCutoff != nil {
		entry.PredictedCutoff = *opts.PredictedCutoff
	}
	if opts.AdmissionProbability != nil {
		entry.AdmissionProbability = *opts.AdmissionProbability
	}
	return entry
}

// latestCutoff picks the newest row for code whose branch normalizes to the
// same group as branch and whose category equals category.
func (s *Service) latestCutoff(snap *dataset.Snapshot, code, branch, category string) *models.CutoffRecord {
	want := s.maps.Branch(branch)
	var best *models.CutoffRecord
	for i := range snap.Records {
		r := &snap.Records[i]
		if r.CollegeCode != code || r.Category != category {
			continue
		}
		if s.maps.Branch(r.BranchName) != want {
			continue
		}
		if best == nil || newer(r, best) {
			best = r
		}
	}
	return best
}

func newer(a, b *models.CutoffRecord) bool {
	ay, aerr := strconv.Atoi(a.Year)
	by, berr := strconv.Atoi(b.Year)
	if aerr == nil && berr == nil && ay != by {
		return ay > by
	}
	if a.Year != b.Year {
		return a.Year > b.Year
	}
	return a.Round > b.Round
}

func cities(entries []models.DirectoryEntry) []string {
	set := make(map[string]struct{})
	for _, e := range entries {
		if e.City != "" {
			set[e.City] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
