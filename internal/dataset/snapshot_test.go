// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package dataset

import (
	"errors"
	"math"
	"testing"

	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

func sampleRecords() []models.CutoffRecord {
	return []models.CutoffRecord{
		{CollegeCode: "1001", CollegeName: "Alpha Institute", City: "Pune", Type: "Government", BranchName: "Computer Engineering", Category: "GOPENS", Year: "2023", ClosingPercentile: 99.0},
		{CollegeCode: "1002", CollegeName: "Beta College", City: "Mumbai", Type: "Private (Unaided)", BranchName: "Mechanical Engineering", Category: "GOBCS", Year: "2023", ClosingPercentile: 80.0},
		{CollegeCode: "1003", CollegeName: "Gamma Engineering", City: "Pune", Type: "Unheard Of", BranchName: "Civil Engineering", Category: "LOPENS", Year: "2023", ClosingPercentile: 60.0},
	}
}

func TestNewSnapshotDerivesFeatures(t *testing.T) {
	snap := NewSnapshot(&Data{Records: sampleRecords()})

	if snap.MinPercentile != 60 || snap.MaxPercentile != 99 {
		t.Fatalf("min/max = %v/%v, want 60/99", snap.MinPercentile, snap.MaxPercentile)
	}

	tests := []struct {
		code       string
		wantNorm   float64
		wantWeight float64
	}{
		{"1001", 1.0, 1.00},
		{"1002", 20.0 / 39.0, 0.60},
		{"1003", 0.0, 0.60},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			var rec *models.CutoffRecord
			for i := range snap.Records {
				if snap.Records[i].CollegeCode == tt.code {
					rec = &snap.Records[i]
				}
			}
			if rec == nil {
				t.Fatalf("record %s missing", tt.code)
			}
			if math.Abs(rec.CNormalized-tt.wantNorm) > 1e-9 {
				t.Errorf("CNormalized = %v, want %v", rec.CNormalized, tt.wantNorm)
			}
			if rec.TypeWeight != tt.wantWeight {
				t.Errorf("TypeWeight = %v, want %v", rec.TypeWeight, tt.wantWeight)
			}
		})
	}
}

func TestNewSnapshotConstantPercentile(t *testing.T) {
	recs := sampleRecords()
	for i := range recs {
		recs[i].ClosingPercentile = 85
	}
	snap := NewSnapshot(&Data{Records: recs})
	for _, r := range snap.Records {
		if r.CNormalized != NormalizedFallback {
			t.Errorf("CNormalized = %v, want %v", r.CNormalized, NormalizedFallback)
		}
	}
}

func TestNewSnapshotCopiesRecords(t *testing.T) {
	recs := sampleRecords()
	snap := NewSnapshot(&Data{Records: recs})
	recs[0].CollegeName = "changed"
	if snap.Records[0].CollegeName == "changed" {
		t.Error("snapshot shares the caller's slice")
	}
}

func TestSnapshotListsAndSearch(t *testing.T) {
	snap := NewSnapshot(&Data{
		Records: sampleRecords(),
		Directory: []models.DirectoryEntry{
			{CollegeCode: "1001", CollegeName: "Alpha Institute", URL: "https://alpha.example"},
		},
	})

	if got := snap.Filters().Cities; len(got) != 2 || got[0] != "Mumbai" || got[1] != "Pune" {
		t.Errorf("Cities = %v", got)
	}
	if got := snap.Filters().Categories; len(got) != 3 || got[0] != "GOBCS" {
		t.Errorf("Categories = %v", got)
	}
	if got := snap.CollegeURL("1001"); got != "https://alpha.example" {
		t.Errorf("CollegeURL = %q", got)
	}

	tests := []struct {
		name  string
		query string
		kind  string
		want  int
	}{
		{"college default", "engineering", "", 1},
		{"branch", "engineering", SearchBranches, 3},
		{"city case-insensitive", "PUN", SearchCities, 1},
		{"empty query", "  ", SearchColleges, 0},
		{"no match", "zzz", SearchColleges, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snap.Search(tt.query, tt.kind)
			if got == nil {
				t.Fatal("Search returned nil")
			}
			if len(got) != tt.want {
				t.Errorf("Search(%q, %q) = %v, want %d results", tt.query, tt.kind, got, tt.want)
			}
		})
	}
}

func TestSnapshotInfoLimits(t *testing.T) {
	var recs []models.CutoffRecord
	for i := 0; i < 30; i++ {
		recs = append(recs, models.CutoffRecord{
			CollegeCode:       string(rune('A' + i)),
			CollegeName:       "College " + string(rune('A'+i)),
			City:              "City " + string(rune('A'+i)),
			BranchName:        "Branch " + string(rune('A'+i)),
			Category:          "GOPENS",
			ClosingPercentile: float64(50 + i),
		})
	}
	info := NewSnapshot(&Data{Records: recs}).Info()
	if info.TotalRecords != 30 || info.TotalBranches != 30 || info.TotalCities != 30 {
		t.Errorf("totals = %+v", info)
	}
	if len(info.AvailableBranches) != infoListLimit || len(info.AvailableCities) != infoListLimit {
		t.Errorf("lists not capped: %d branches, %d cities", len(info.AvailableBranches), len(info.AvailableCities))
	}
	if len(info.AvailableCategories) != 1 {
		t.Errorf("categories = %v", info.AvailableCategories)
	}
}

func TestSnapshotInfoCountsCollegesByCode(t *testing.T) {
	recs := []models.CutoffRecord{
		{CollegeCode: "6006", CollegeName: "College of Engineering Pune", City: "Pune", BranchName: "Civil Engineering", Category: "GOPENS", Year: "2021", ClosingPercentile: 95},
		{CollegeCode: "6006", CollegeName: "COEP Technological University", City: "Pune", BranchName: "Civil Engineering", Category: "GOPENS", Year: "2023", ClosingPercentile: 96},
		{CollegeCode: "3012", CollegeName: "VJTI Mumbai", City: "Mumbai", BranchName: "Civil Engineering", Category: "GOPENS", Year: "2023", ClosingPercentile: 97},
	}
	if got := NewSnapshot(&Data{Records: recs}).Info().TotalColleges; got != 2 {
		t.Errorf("TotalColleges = %d, want 2 (renamed college counted once)", got)
	}
}

func TestEmptySnapshotAvailability(t *testing.T) {
	cause := errors.New("file missing")
	snap := emptySnapshot("x.csv", cause)
	err := snap.Available()
	if !errors.Is(err, ErrNotLoaded) || !errors.Is(err, cause) {
		t.Errorf("Available() = %v, want ErrNotLoaded wrapping cause", err)
	}
	if !snap.Empty() {
		t.Error("empty snapshot reports rows")
	}
	if got := snap.Filters(); got.Branches == nil || got.Cities == nil || got.Categories == nil {
		t.Error("Filters returned nil lists")
	}
}
