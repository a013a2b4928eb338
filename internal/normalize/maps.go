// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

// Package normalize canonicalizes free-text category codes, branch names and
// institution types into fixed groups, and maps institution types to the
// weights fed to the cutoff model.
//
// The tables are built once and never mutated, so a *Maps is safe for
// concurrent use without locking.
package normalize

import (
	"slices"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

// Maps holds the reverse lookups built from the group tables.
type Maps struct {
	categoryByCode map[string]string
	categoryByName map[string]*CategoryGroup
	branchExact    map[string]string
	typeExact      map[string]string
	typeNames      []string
}

var (
	defaultMaps     *Maps
	defaultMapsOnce sync.Once
)

// Default returns the process-wide tables.
func Default() *Maps {
	defaultMapsOnce.Do(func() {
		defaultMaps = build()
	})
	return defaultMaps
}

func build() *Maps {
	m := &Maps{
		categoryByCode: make(map[string]string),
		categoryByName: make(map[string]*CategoryGroup, len(categoryGroups)),
		branchExact:    make(map[string]string),
		typeExact:      make(map[string]string),
	}
	for i := range categoryGroups {
		g := &categoryGroups[i]
		m.categoryByName[g.Name] = g
		for _, code := range g.Codes {
			m.categoryByCode[code] = g.Name
		}
	}
	for _, g := range branchGroups {
		for _, v := range g.Variants {
			key := strings.ToLower(v)
			if _, dup := m.branchExact[key]; !dup {
				m.branchExact[key] = g.Name
			}
		}
	}
	for _, g := range typeGroups {
		m.typeNames = append(m.typeNames, g.Name)
		for _, v := range g.Variants {
			key := strings.ToLower(v)
			if _, dup := m.typeExact[key]; !dup {
				m.typeExact[key] = g.Name
			}
		}
	}
	sort.Strings(m.typeNames)
	return m
}

// Category maps a quota code to its group. Group names map to themselves;
// anything else passes through upper-cased.
func (m *Maps) Category(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		return Unknown
	}
	if g, ok := m.categoryByCode[c]; ok {
		return g
	}
	return c
}

// ResolveCategoryGroup resolves a group name or a specific code to a known group.
func (m *Maps) ResolveCategoryGroup(input string) (CategoryGroup, bool) {
	c := strings.ToUpper(strings.TrimSpace(input))
	if g, ok := m.categoryByName[c]; ok {
		return *g, true
	}
	if name, ok := m.categoryByCode[c]; ok {
		return *m.categoryByName[name], true
	}
	return CategoryGroup{}, false
}

// CategoryGroups returns the groups in declaration order.
func (m *Maps) CategoryGroups() []CategoryGroup {
	out := make([]CategoryGroup, len(categoryGroups))
	copy(out, categoryGroups)
	return out
}

// IsGenderRestricted reports whether code is a ladies-only seat. Codes in a
// gender-neutral group never are.
func (m *Maps) IsGenderRestricted(code string) bool {
	c := strings.ToUpper(strings.TrimSpace(code))
	if g, ok := m.categoryByCode[c]; ok && m.categoryByName[g].GenderNeutral {
		return false
	}
	return strings.HasPrefix(c, "L")
}

// Branch maps a branch name to its canonical group: exact variant match
// first, then the first group whose variant occurs in the name (see
// variantMatches), else the input.
func (m *Maps) Branch(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Unknown
	}
	lower := strings.ToLower(trimmed)
	if g, ok := m.branchExact[lower]; ok {
		return g
	}
	tokens := tokenize(lower)
	for _, g := range branchGroups {
		for _, v := range g.Variants {
			if variantMatches(lower, tokens, v) {
				return g.Name
			}
		}
	}
	return name
}

// Type maps an institution type to one of the four type groups, using the
// same exact-then-substring rule as Branch.
func (m *Maps) Type(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Unknown
	}
	lower := strings.ToLower(trimmed)
	if g, ok := m.typeExact[lower]; ok {
		return g
	}
	tokens := tokenize(lower)
	for _, g := range typeGroups {
		for _, v := range g.Variants {
			if variantMatches(lower, tokens, v) {
				return g.Name
			}
		}
	}
	return name
}

// shortVariantLen is the longest variant that must match whole words. "EE"
// and "IT" would otherwise hit "engineering" and "architecture".
const shortVariantLen = 4

// variantMatches reports whether variant v occurs in lower: as a substring
// for long variants, as a contiguous run of whole tokens for short ones.
func variantMatches(lower string, tokens []string, v string) bool {
	v = strings.ToLower(v)
	if len(v) > shortVariantLen {
		return strings.Contains(lower, v)
	}
	want := tokenize(v)
	if len(want) == 0 {
		return false
	}
	for i := 0; i+len(want) <= len(tokens); i++ {
		if slices.Equal(tokens[i:i+len(want)], want) {
			return true
		}
	}
	return false
}

// tokenize splits s into runs of letters and digits.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// TypeNames returns the type group names, sorted.
func (m *Maps) TypeNames() []string {
	out := make([]string, len(m.typeNames))
	copy(out, m.typeNames)
	return out
}

// Info returns display information for a code or group name.
func (m *Maps) Info(code string) models.CategoryInfo {
	info := models.CategoryInfo{Code: strings.ToUpper(strings.TrimSpace(code))}
	info.Group = m.Category(code)
	if g, ok := m.categoryByName[info.Group]; ok {
		info.DisplayName = g.DisplayName
		info.Description = g.Description
		return info
	}
	info.DisplayName = code
	return info
}

// TypeWeight returns the model weight for a raw institution type.
func TypeWeight(institutionType string) float64 {
	if w, ok := typeWeights[strings.TrimSpace(institutionType)]; ok {
		return w
	}
	return DefaultTypeWeight
}
