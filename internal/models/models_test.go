// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package models

import "testing"

func TestParseGender(t *testing.T) {
	tests := []struct {
		in   string
		want Gender
	}{
		{"Male", GenderMale},
		{"male", GenderMale},
		{" M ", GenderMale},
		{"FEMALE", GenderFemale},
		{"f", GenderFemale},
		{"", GenderUnspecified},
		{"other", GenderUnspecified},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseGender(tt.in); got != tt.want {
				t.Errorf("ParseGender(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplicantProfileBranches(t *testing.T) {
	single := ApplicantProfile{Branches: []string{"Computer Engineering"}}
	if single.IsMultiBranch() {
		t.Error("one branch is not multi-branch")
	}
	if single.Branch() != "Computer Engineering" {
		t.Errorf("Branch() = %q", single.Branch())
	}

	multi := ApplicantProfile{Branches: []string{"Civil", "Mechanical"}}
	if !multi.IsMultiBranch() {
		t.Error("two branches should be multi-branch")
	}
	if multi.Branch() != "" {
		t.Errorf("multi-branch Branch() = %q, want empty", multi.Branch())
	}
}

func TestFallbackSeverity(t *testing.T) {
	if !(FallbackNone.Severity() < FallbackCategoryGender.Severity() &&
		FallbackCategoryGender.Severity() < FallbackGenderOnly.Severity()) {
		t.Error("fallback severities must be strictly increasing")
	}
}

func TestCutoffRecordHasRank(t *testing.T) {
	r := CutoffRecord{}
	if r.HasRank() {
		t.Error("zero rank should report absent")
	}
	r.ClosingRank = 4120
	if !r.HasRank() {
		t.Error("positive rank should report present")
	}
}
