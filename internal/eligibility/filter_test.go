// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package eligibility

import (
	"errors"
	"testing"

	"github.com/supriyamulik/cet-college-predictor/internal/models"
	"github.com/supriyamulik/cet-college-predictor/internal/normalize"
)

func fixture() []models.CutoffRecord {
	return []models.CutoffRecord{
		{CollegeCode: "1", CollegeName: "Government College of Engineering", City: "Pune", BranchName: "Computer Engineering", Category: "GOPENS", ClosingPercentile: 99},
		{CollegeCode: "1", CollegeName: "Government College of Engineering", City: "Pune", BranchName: "Computer Engineering", Category: "LOPENS", ClosingPercentile: 98},
		{CollegeCode: "1", CollegeName: "Government College of Engineering", City: "Pune", BranchName: "Computer Engineering", Category: "GOBCS", ClosingPercentile: 97},
		{CollegeCode: "2", CollegeName: "Cummins College of Engineering for Women", City: "Pune", BranchName: "Mechanical Engineering", Category: "GOPENS", ClosingPercentile: 95},
		{CollegeCode: "3", CollegeName: "Sant Gadge Baba Mahila Institute", City: "Amravati", BranchName: "Civil Engineering", Category: "GOPENS", ClosingPercentile: 80},
		{CollegeCode: "4", CollegeName: "Walchand Institute", City: "Sangli", BranchName: "Civil Engineering", Category: "GSCS", ClosingPercentile: 70},
		{CollegeCode: "4", CollegeName: "Walchand Institute", City: "Sangli", BranchName: "Civil Engineering", Category: "DEFOPENS", ClosingPercentile: 72},
		{CollegeCode: "5", CollegeName: "Rural Polytechnic", City: "Nagpur", BranchName: "Electrical Engineering", Category: "LSCS", ClosingPercentile: 60},
	}
}

func codes(recs []models.CutoffRecord) map[string]int {
	out := map[string]int{}
	for _, r := range recs {
		out[r.CollegeCode+"/"+r.Category]++
	}
	return out
}

func TestAllowedCodes(t *testing.T) {
	f := New(normalize.Default(), nil)

	tests := []struct {
		category string
		include  []string
		exclude  []string
		wantErr  bool
	}{
		{"", []string{"GOPENS", "LOPENS"}, []string{"GOBCS"}, false},
		{"OPEN", []string{"GOPENS"}, []string{"GSCS"}, false},
		{"obc", []string{"GOPENS", "GOBCS", "LOBCS"}, []string{"GSCS"}, false},
		{"GSCS", []string{"GOPENS", "GSCS", "LSCH"}, []string{"GOBCS"}, false},
		{"martian", nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got, err := f.AllowedCodes(tt.category)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownCategory) {
					t.Fatalf("err = %v, want ErrUnknownCategory", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("AllowedCodes() error = %v", err)
			}
			for _, c := range tt.include {
				if _, ok := got[c]; !ok {
					t.Errorf("%s missing", c)
				}
			}
			for _, c := range tt.exclude {
				if _, ok := got[c]; ok {
					t.Errorf("%s should not be allowed", c)
				}
			}
		})
	}
}

func TestMaleExclusions(t *testing.T) {
	f := New(normalize.Default(), nil)
	p := &models.ApplicantProfile{Category: "OPEN", Gender: models.GenderMale}

	res, err := f.Apply(fixture(), p)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if res.FallbackUsed() {
		t.Errorf("unexpected fallback %s", res.Level)
	}
	for _, r := range res.Records {
		if normalize.Default().IsGenderRestricted(r.Category) {
			t.Errorf("male applicant sees restricted code %s", r.Category)
		}
		if f.IsWomenOnlyInstitution(r.CollegeName) {
			t.Errorf("male applicant sees women-only institution %s", r.CollegeName)
		}
	}
	if got := codes(res.Records); got["1/GOPENS"] != 1 || len(got) != 1 {
		t.Errorf("eligible = %v, want only 1/GOPENS", got)
	}
}

func TestFemaleSupersetOfMale(t *testing.T) {
	f := New(normalize.Default(), nil)
	levels := []models.FallbackLevel{models.FallbackNone, models.FallbackCategoryGender, models.FallbackGenderOnly}
	for _, category := range []string{"OPEN", "SC", "OBC", "DEF"} {
		for _, city := range []string{"", "pune", "sangli"} {
			for _, level := range levels {
				male := &models.ApplicantProfile{Category: category, City: city, Gender: models.GenderMale}
				female := &models.ApplicantProfile{Category: category, City: city, Gender: models.GenderFemale}

				m, err := f.Eligible(fixture(), male, level)
				if err != nil {
					t.Fatal(err)
				}
				fe, err := f.Eligible(fixture(), female, level)
				if err != nil {
					t.Fatal(err)
				}
				femaleSet := codes(fe)
				for k := range codes(m) {
					if _, ok := femaleSet[k]; !ok {
						t.Errorf("%s/%s/%s: %s eligible for male but not female", category, city, level, k)
					}
				}
			}
		}
	}
}

func TestGenderNeutralQuota(t *testing.T) {
	f := New(normalize.Default(), nil)
	p := &models.ApplicantProfile{Category: "DEF", Gender: models.GenderMale, City: "Sangli"}
	res, err := f.Apply(fixture(), p)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := codes(res.Records); got["4/DEFOPENS"] != 1 {
		t.Errorf("defence quota row missing for male applicant: %v", got)
	}
}

func TestFallbackLevels(t *testing.T) {
	f := New(normalize.Default(), nil)

	tests := []struct {
		name      string
		records   []models.CutoffRecord
		profile   models.ApplicantProfile
		wantLevel models.FallbackLevel
		wantCount int
	}{
		{
			name:      "strict match",
			profile:   models.ApplicantProfile{Category: "OPEN", City: "pune", Branches: []string{"computer"}},
			wantLevel: models.FallbackNone,
			wantCount: 2,
		},
		{
			name:      "city and branch dropped",
			profile:   models.ApplicantProfile{Category: "OPEN", City: "Mumbai", Branches: []string{"computer"}, Gender: models.GenderMale},
			wantLevel: models.FallbackCategoryGender,
			wantCount: 1,
		},
		{
			name:      "category dropped",
			records:   fixture()[5:],
			profile:   models.ApplicantProfile{Category: "OBC", Gender: models.GenderMale},
			wantLevel: models.FallbackGenderOnly,
			wantCount: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := tt.records
			if records == nil {
				records = fixture()
			}
			res, err := f.Apply(records, &tt.profile)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if res.Level != tt.wantLevel {
				t.Errorf("Level = %s, want %s", res.Level, tt.wantLevel)
			}
			if len(res.Records) != tt.wantCount {
				t.Errorf("records = %d, want %d: %v", len(res.Records), tt.wantCount, codes(res.Records))
			}
			if res.DataAbsent {
				t.Error("DataAbsent set for a non-empty result")
			}
		})
	}
}

func TestDataAbsent(t *testing.T) {
	f := New(normalize.Default(), nil)
	res, err := f.Apply(nil, &models.ApplicantProfile{Category: "OPEN"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !res.DataAbsent || res.Records == nil || len(res.Records) != 0 {
		t.Errorf("Apply(nil) = %+v", res)
	}
}

func TestCustomKeywords(t *testing.T) {
	f := New(normalize.Default(), []string{"  Kanya "})
	if !f.IsWomenOnlyInstitution("Kanya Engineering College") {
		t.Error("custom keyword not applied")
	}
	if f.IsWomenOnlyInstitution("College for Women") {
		t.Error("default keywords should be replaced")
	}
}
