// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package dataset

import (
	"fmt"
	"strings"
)

// Cutoff table columns.
const (
	ColCollegeCode       = "college_code"
	ColCollegeName       = "college_name"
	ColCity              = "city"
	ColType              = "type"
	ColBranchName        = "branch_name"
	ColCategory          = "category"
	ColClosingPercentile = "closing_percentile"
	ColYear              = "year"
	ColClosingRank       = "closing_rank"
	ColRound             = "round"
)

// RequiredColumns must all be present in the cutoff source.
var RequiredColumns = []string{
	ColCollegeCode, ColCollegeName, ColCity, ColType,
	ColBranchName, ColCategory, ColClosingPercentile, ColYear,
}

// OptionalColumns are read when present and treated as NULL otherwise.
var OptionalColumns = []string{ColClosingRank, ColRound}

// Schema maps canonical column names to the names actually used by a source.
type Schema struct {
	columns map[string]string
}

// ValidateSchema matches source column names case-insensitively (surrounding
// whitespace ignored) and fails with every missing required column listed.
func ValidateSchema(sourceColumns []string) (*Schema, error) {
	byKey := make(map[string]string, len(sourceColumns))
	for _, c := range sourceColumns {
		key := strings.ToLower(strings.TrimSpace(c))
		if _, dup := byKey[key]; !dup {
			byKey[key] = c
		}
	}

	s := &Schema{columns: make(map[string]string)}
	var missing []string
	for _, col := range RequiredColumns {
		actual, ok := byKey[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		s.columns[col] = actual
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns %s (found %s)",
			ErrSchema, strings.Join(missing, ", "), strings.Join(sourceColumns, ", "))
	}
	for _, col := range OptionalColumns {
		if actual, ok := byKey[col]; ok {
			s.columns[col] = actual
		}
	}
	return s, nil
}

// Has reports whether the source provides col.
func (s *Schema) Has(col string) bool {
	_, ok := s.columns[col]
	return ok
}

// Ident returns the quoted source identifier for col.
func (s *Schema) Ident(col string) string {
	return quoteIdent(s.columns[col])
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
