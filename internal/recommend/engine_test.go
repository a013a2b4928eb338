// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package recommend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/supriyamulik/cet-college-predictor/internal/dataset"
	"github.com/supriyamulik/cet-college-predictor/internal/eligibility"
	"github.com/supriyamulik/cet-college-predictor/internal/gapranker"
	"github.com/supriyamulik/cet-college-predictor/internal/logging"
	"github.com/supriyamulik/cet-college-predictor/internal/models"
	"github.com/supriyamulik/cet-college-predictor/internal/normalize"
	"github.com/supriyamulik/cet-college-predictor/internal/predictor"
)

// catalog builds 8 colleges x 2 branches x 2 categories x 2 years.
func catalog() []models.CutoffRecord {
	branches := []string{"Computer Engineering", "Mechanical Engineering"}
	types := []string{"Government", "Private (Unaided)", "Autonomous / Private", "Deemed University"}
	var out []models.CutoffRecord
	for c := 1; c <= 8; c++ {
		for b, branch := range branches {
			for _, cat := range []string{"GOPENS", "GOBCS"} {
				for y, year := range []string{"2022", "2023"} {
					out = append(out, models.CutoffRecord{
						CollegeCode:       fmt.Sprintf("%04d", 1000+c),
						CollegeName:       fmt.Sprintf("College %d", c),
						City:              []string{"Pune", "Nagpur"}[c%2],
						Type:              types[c%len(types)],
						BranchName:        branch,
						Category:          cat,
						Year:              year,
						ClosingRank:       1000 * c,
						ClosingPercentile: 70 + float64(c)*3 + float64(b) + float64(y)*0.5,
						Round:             1,
					})
				}
			}
		}
	}
	return out
}

func newEngine(t *testing.T, records []models.CutoffRecord, model predictor.Model) *Engine {
	t.Helper()
	ranker, err := gapranker.New(gapranker.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(
		DefaultConfig(),
		dataset.NewStaticStore(records, nil),
		eligibility.New(normalize.Default(), nil),
		predictor.New(model, predictor.DefaultMidpoint),
		ranker,
		logging.NewTestLogger(io.Discard),
	)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func linear() predictor.Model {
	return &predictor.LinearModel{CNormalized: 1, TypeWeight: 0.01}
}

func TestPredictRejectsInvalidProfiles(t *testing.T) {
	e := newEngine(t, catalog(), linear())
	tests := []struct {
		name    string
		profile models.ApplicantProfile
	}{
		{"zero rank", models.ApplicantProfile{Rank: 0, Percentile: 90}},
		{"percentile above 100", models.ApplicantProfile{Rank: 10, Percentile: 100.5}},
		{"negative percentile", models.ApplicantProfile{Rank: 10, Percentile: -1}},
		{"unknown category", models.ApplicantProfile{Rank: 10, Percentile: 90, Category: "XYZ"}},
		{"too many branches", models.ApplicantProfile{Rank: 10, Percentile: 90, Branches: strings.Split("a,b,c,d,e,f,g,h,i,j,k", ",")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.Predict(context.Background(), tt.profile); !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("Predict() error = %v, want ErrInvalidProfile", err)
			}
		})
	}
}

func TestPredictUnavailable(t *testing.T) {
	e := newEngine(t, catalog(), nil)
	_, err := e.Predict(context.Background(), models.ApplicantProfile{Rank: 10, Percentile: 90})
	if !errors.Is(err, predictor.ErrModelUnavailable) {
		t.Errorf("Predict() error = %v, want ErrModelUnavailable", err)
	}

	ranker, _ := gapranker.New(gapranker.DefaultConfig())
	unloaded, err := NewEngine(nil, dataset.NewStore(&dataset.StaticLoader{}), eligibility.New(nil, nil),
		predictor.New(linear(), 0), ranker, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := unloaded.Predict(context.Background(), models.ApplicantProfile{Rank: 10, Percentile: 90}); !errors.Is(err, dataset.ErrNotLoaded) {
		t.Errorf("Predict() error = %v, want ErrNotLoaded", err)
	}
}

func TestPredictIdempotent(t *testing.T) {
	e := newEngine(t, catalog(), linear())
	p := models.ApplicantProfile{Rank: 4000, Percentile: 85, Category: "OBC", Branches: []string{"Computer", "Mechanical"}}

	first, err := e.Predict(context.Background(), p)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	second, err := e.Predict(context.Background(), p)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical requests produced different results")
	}
	if len(first.Predictions) == 0 {
		t.Error("expected predictions")
	}
}

func TestPredictSingleBranchDedupByCollege(t *testing.T) {
	e := newEngine(t, catalog(), linear())
	res, err := e.Predict(context.Background(), models.ApplicantProfile{Rank: 4000, Percentile: 80, Category: "OPEN"})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	seen := map[string]bool{}
	for i, p := range res.Predictions {
		if seen[p.CollegeCode] {
			t.Errorf("college %s appears twice", p.CollegeCode)
		}
		seen[p.CollegeCode] = true
		if p.Rank != i+1 {
			t.Errorf("rank %d at position %d", p.Rank, i)
		}
		if i > 0 && p.Closeness < res.Predictions[i-1].Closeness {
			t.Errorf("closeness not ascending at %d", i)
		}
		if p.PredictedCutoff < 0 || p.PredictedCutoff > 100 {
			t.Errorf("predicted cutoff %v out of range", p.PredictedCutoff)
		}
	}
}

func TestPredictMultiBranchMerge(t *testing.T) {
	e := newEngine(t, catalog(), linear())
	p := models.ApplicantProfile{
		Rank: 4000, Percentile: 80, Category: "OPEN",
		Branches: []string{"Computer", "Mechanical", " computer "},
		Limit:    5,
	}
	res, err := e.Predict(context.Background(), p)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(res.Predictions) == 0 || len(res.Predictions) > 5 {
		t.Fatalf("got %d predictions, want 1..5", len(res.Predictions))
	}
	if got := len(res.Diagnostics.PerBranch); got != 2 {
		t.Errorf("per-branch diagnostics = %d, want 2 (duplicate branch dropped)", got)
	}

	seen := map[string]bool{}
	for i, pr := range res.Predictions {
		key := pr.CollegeCode + "|" + pr.Branch
		if seen[key] {
			t.Errorf("(college, branch) %s appears twice", key)
		}
		seen[key] = true
		if pr.Rank != i+1 {
			t.Errorf("rank %d at position %d", pr.Rank, i)
		}
		if i > 0 {
			prev := res.Predictions[i-1]
			if pr.Closeness < prev.Closeness {
				t.Errorf("merged list not sorted at %d", i)
			}
		}
	}
}

func TestPredictMaleExclusionScenario(t *testing.T) {
	records := []models.CutoffRecord{
		{CollegeCode: "1", CollegeName: "Alpha Government College", City: "Pune", Type: "Government", BranchName: "Computer Engineering", Category: "GOPENS", Year: "2023", ClosingPercentile: 99.5},
		{CollegeCode: "2", CollegeName: "Beta Institute", City: "Pune", Type: "Government", BranchName: "Computer Engineering", Category: "GOPENS", Year: "2023", ClosingPercentile: 98.9},
		{CollegeCode: "3", CollegeName: "Vidya College of Engineering for Women", City: "Pune", Type: "Government", BranchName: "Computer Engineering", Category: "GOPENS", Year: "2023", ClosingPercentile: 99.2},
		{CollegeCode: "4", CollegeName: "Delta Institute", City: "Pune", Type: "Government", BranchName: "Computer Engineering", Category: "LOPENS", Year: "2023", ClosingPercentile: 99.3},
		{CollegeCode: "5", CollegeName: "Epsilon Institute", City: "Pune", Type: "Government", BranchName: "Computer Engineering", Category: "GOPENS", Year: "2023", ClosingPercentile: 60},
	}
	e := newEngine(t, records, linear())

	res, err := e.Predict(context.Background(), models.ApplicantProfile{Rank: 5000, Percentile: 99.0, Category: "OPEN", Gender: models.GenderMale})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(res.Predictions) == 0 {
		t.Fatal("expected predictions")
	}
	for _, p := range res.Predictions {
		if p.CollegeCode == "3" || p.CollegeCode == "4" {
			t.Errorf("male applicant received %s (%s)", p.CollegeName, p.QuotaCategory)
		}
	}
}

func TestPredictZeroVarianceMidpoint(t *testing.T) {
	var records []models.CutoffRecord
	for i := 1; i <= 3; i++ {
		records = append(records, models.CutoffRecord{
			CollegeCode: fmt.Sprint(i), CollegeName: fmt.Sprintf("College %d", i), City: "Pune",
			Type: "Government", BranchName: "Civil Engineering", Category: "GOPENS", Year: "2023",
			ClosingPercentile: 75,
		})
	}
	e := newEngine(t, records, linear())

	res, err := e.Predict(context.Background(), models.ApplicantProfile{Rank: 100, Percentile: 50})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(res.Predictions) != 3 {
		t.Fatalf("got %d predictions, want 3", len(res.Predictions))
	}
	for _, p := range res.Predictions {
		if p.PredictedCutoff != 50.0 {
			t.Errorf("PredictedCutoff = %v, want 50", p.PredictedCutoff)
		}
	}
	if res.Diagnostics.Window != models.WindowPrimary {
		t.Errorf("window = %s", res.Diagnostics.Window)
	}
}

func TestPredictStrictFilterFallback(t *testing.T) {
	e := newEngine(t, catalog(), linear())
	res, err := e.Predict(context.Background(), models.ApplicantProfile{
		Rank: 50, Percentile: 99.98, Category: "OPEN", Gender: models.GenderMale,
		City: "Mumbai", Branches: []string{"Computer"},
	})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(res.Predictions) == 0 {
		t.Fatal("fallback returned no predictions")
	}
	d := res.Diagnostics
	if !d.FallbackUsed || d.FallbackLevel != models.FallbackCategoryGender {
		t.Errorf("diagnostics = %+v, want category_gender fallback", d)
	}
	if d.DataAbsent {
		t.Error("DataAbsent set although rows exist")
	}
	if d.Generation != 1 {
		t.Errorf("generation = %d, want 1", d.Generation)
	}
}

func TestPredictSkipsFailingRecords(t *testing.T) {
	model := predictor.ModelFunc(func(c, w float64) (float64, error) {
		if w == normalize.TypeWeight("Deemed University") {
			return 0, errors.New("unsupported")
		}
		return c, nil
	})
	e := newEngine(t, catalog(), model)
	res, err := e.Predict(context.Background(), models.ApplicantProfile{Rank: 100, Percentile: 80})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if res.Diagnostics.SkippedRecords == 0 {
		t.Error("skipped records not reported")
	}

	failing := predictor.ModelFunc(func(float64, float64) (float64, error) { return 0, errors.New("down") })
	e = newEngine(t, catalog(), failing)
	if _, err := e.Predict(context.Background(), models.ApplicantProfile{Rank: 100, Percentile: 80}); !errors.Is(err, predictor.ErrAllRecordsFailed) {
		t.Errorf("Predict() error = %v, want ErrAllRecordsFailed", err)
	}
}

func TestPredictCanceledMultiBranch(t *testing.T) {
	e := newEngine(t, catalog(), linear())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Predict(ctx, models.ApplicantProfile{Rank: 1, Percentile: 90, Branches: []string{"Computer", "Mechanical"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Predict() error = %v, want context.Canceled", err)
	}
}
