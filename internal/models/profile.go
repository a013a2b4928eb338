// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package models

import "strings"

// Gender of the applicant. The zero value means unspecified.
type Gender string

const (
	GenderUnspecified Gender = ""
	GenderMale        Gender = "Male"
	GenderFemale      Gender = "Female"
)

// ParseGender accepts case-insensitive male/female (and m/f); anything else is unspecified.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale
	case "female", "f":
		return GenderFemale
	default:
		return GenderUnspecified
	}
}

// ApplicantProfile describes one prediction request.
type ApplicantProfile struct {
	Rank       int
	Percentile float64
	Category   string // group name (OBC) or a specific code (GOBCS); defaults to OPEN
	Gender     Gender
	City       string
	Branches   []string // zero or one entry means a single-branch query
	Limit      int
}

// IsMultiBranch reports whether the request fans out per branch.
func (p *ApplicantProfile) IsMultiBranch() bool {
	return len(p.Branches) > 1
}

// Branch returns the single branch filter, or "".
func (p *ApplicantProfile) Branch() string {
	if len(p.Branches) == 1 {
		return p.Branches[0]
	}
	return ""
}
