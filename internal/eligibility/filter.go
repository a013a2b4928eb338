// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

// Package eligibility narrows the cutoff table to the rows an applicant may
// compete for. Narrowing happens in three stages (category codes, gender
// exclusions and the optional city/branch text filters) and relaxes in a
// fixed order when a combination matches nothing.
package eligibility

import (
	"errors"
	"fmt"
	"strings"

	"github.com/supriyamulik/cet-college-predictor/internal/models"
	"github.com/supriyamulik/cet-college-predictor/internal/normalize"
)

// ErrUnknownCategory is returned for a category that is neither a group name
// nor a known category code.
var ErrUnknownCategory = errors.New("unknown category")

// DefaultWomenOnlyKeywords mark institutions that admit only women.
var DefaultWomenOnlyKeywords = []string{"women", "woman", "mahila", "girls", "ladies"}

// Filter applies eligibility rules. It holds no per-request state and is safe
// for concurrent use.
type Filter struct {
	maps     *normalize.Maps
	keywords []string
}

// New returns a filter. An empty keyword list falls back to
// DefaultWomenOnlyKeywords.
func New(maps *normalize.Maps, womenOnlyKeywords []string) *Filter {
	if maps == nil {
		maps = normalize.Default()
	}
	if len(womenOnlyKeywords) == 0 {
		womenOnlyKeywords = DefaultWomenOnlyKeywords
	}
	kw := make([]string, 0, len(womenOnlyKeywords))
	for _, k := range womenOnlyKeywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			kw = append(kw, k)
		}
	}
	return &Filter{maps: maps, keywords: kw}
}

// Result is the eligible set plus how it was obtained.
type Result struct {
	Records []models.CutoffRecord
	Level   models.FallbackLevel
	// DataAbsent is set when even the gender-only view is empty, meaning
	// the table has nothing this applicant could ever see.
	DataAbsent bool
}

// FallbackUsed reports whether any narrowing was relaxed.
func (r *Result) FallbackUsed() bool {
	return r.Level != models.FallbackNone
}

// criteria is a resolved profile.
type criteria struct {
	allowed map[string]struct{}
	male    bool
	city    string
	branch  string
}

// Apply returns the strictest non-empty eligible set, relaxing first the
// city/branch filters and then the category filter. The profile's single
// branch (if any) is used as the branch filter.
func (f *Filter) Apply(records []models.CutoffRecord, profile *models.ApplicantProfile) (Result, error) {
	c, err := f.resolve(profile)
	if err != nil {
		return Result{}, err
	}

	levels := []models.FallbackLevel{models.FallbackNone}
	if c.city != "" || c.branch != "" {
		levels = append(levels, models.FallbackCategoryGender)
	}
	levels = append(levels, models.FallbackGenderOnly)

	for _, level := range levels {
		out := f.collect(records, c, level)
		if len(out) > 0 {
			return Result{Records: out, Level: level}, nil
		}
	}
	return Result{Records: []models.CutoffRecord{}, Level: models.FallbackGenderOnly, DataAbsent: true}, nil
}

// Eligible returns the eligible set at one fixed relaxation level, without
// falling back further.
func (f *Filter) Eligible(records []models.CutoffRecord, profile *models.ApplicantProfile, level models.FallbackLevel) ([]models.CutoffRecord, error) {
	c, err := f.resolve(profile)
	if err != nil {
		return nil, err
	}
	return f.collect(records, c, level), nil
}

// AllowedCodes lists the category codes open to an applicant of the given
// category: OPEN codes plus the codes of the applicant's own group.
func (f *Filter) AllowedCodes(category string) (map[string]struct{}, error) {
	if strings.TrimSpace(category) == "" {
		category = normalize.GroupOpen
	}
	group, ok := f.maps.ResolveCategoryGroup(category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	open, _ := f.maps.ResolveCategoryGroup(normalize.GroupOpen)

	allowed := make(map[string]struct{}, len(open.Codes)+len(group.Codes))
	for _, code := range open.Codes {
		allowed[code] = struct{}{}
	}
	for _, code := range group.Codes {
		allowed[code] = struct{}{}
	}
	return allowed, nil
}

// IsWomenOnlyInstitution reports whether a college name carries one of the
// women-only keywords.
func (f *Filter) IsWomenOnlyInstitution(collegeName string) bool {
	name := strings.ToLower(collegeName)
	for _, k := range f.keywords {
		if strings.Contains(name, k) {
			return true
		}
	}
	return false
}

func (f *Filter) resolve(profile *models.ApplicantProfile) (criteria, error) {
	allowed, err := f.AllowedCodes(profile.Category)
	if err != nil {
		return criteria{}, err
	}
	return criteria{
		allowed: allowed,
		male:    profile.Gender == models.GenderMale,
		city:    strings.ToLower(strings.TrimSpace(profile.City)),
		branch:  strings.ToLower(strings.TrimSpace(profile.Branch())),
	}, nil
}

func (f *Filter) collect(records []models.CutoffRecord, c criteria, level models.FallbackLevel) []models.CutoffRecord {
	out := []models.CutoffRecord{}
	for i := range records {
		r := &records[i]
		if !f.genderAllows(r, c) {
			continue
		}
		if level.Severity() < models.FallbackGenderOnly.Severity() {
			if _, ok := c.allowed[r.Category]; !ok {
				continue
			}
		}
		if level == models.FallbackNone {
			if c.city != "" && !strings.Contains(strings.ToLower(r.City), c.city) {
				continue
			}
			if c.branch != "" && !strings.Contains(strings.ToLower(r.BranchName), c.branch) {
				continue
			}
		}
		out = append(out, *r)
	}
	return out
}

// genderAllows holds at every relaxation level.
func (f *Filter) genderAllows(r *models.CutoffRecord, c criteria) bool {
	if !c.male {
		return true
	}
	if f.maps.IsGenderRestricted(r.Category) {
		return false
	}
	return !f.IsWomenOnlyInstitution(r.CollegeName)
}
