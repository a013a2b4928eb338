// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package optionform

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := OpenDB(Config{InMemory: true})
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

func entry(name string) models.OptionFormEntry {
	return models.OptionFormEntry{
		CollegeCode: "1", CollegeName: name, Branch: "Computer Engineering", City: "Pune",
		Type: "Government", QuotaCategory: "GOPENS", HistoricalCutoff: 99.1, PredictedCutoff: 97.25, AdmissionProbability: 70,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, "user-1", []models.OptionFormEntry{entry("A"), entry("B")})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.TotalColleges != 2 {
		t.Errorf("TotalColleges = %d", saved.TotalColleges)
	}

	loaded, err := s.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded.Colleges) != 2 || loaded.Colleges[1].CollegeName != "B" {
		t.Errorf("Load() = %+v", loaded)
	}
}

func TestLoadUnknownUser(t *testing.T) {
	s := newTestStore(t)
	form, err := s.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if form.Colleges == nil || len(form.Colleges) != 0 || form.UserID != "nobody" {
		t.Errorf("Load(unknown) = %+v", form)
	}
}

func TestAppendAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Append(ctx, "u", entry("First")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	form, err := s.Append(ctx, "u", entry("Second"))
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if form.TotalColleges != 2 || form.Colleges[0].CollegeName != "First" {
		t.Errorf("form = %+v", form)
	}
	if form.Colleges[1].AddedAt.IsZero() {
		t.Error("AddedAt not stamped")
	}

	if err := s.Delete(ctx, "u"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, "u"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() = %v, want ErrNotFound", err)
	}
}

func TestLimitsAndValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	many := make([]models.OptionFormEntry, MaxEntries+1)
	if _, err := s.Save(ctx, "u", many); !errors.Is(err, ErrTooManyEntries) {
		t.Errorf("Save() over limit = %v", err)
	}

	for _, id := range []string{"", " padded", "a:b", strings.Repeat("x", 200)} {
		if _, err := s.Load(ctx, id); !errors.Is(err, ErrInvalidUserID) {
			t.Errorf("Load(%q) = %v, want ErrInvalidUserID", id, err)
		}
	}
}

func TestExportCSV(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	e := entry("College, With Comma")
	if _, err := s.Save(ctx, "u", []models.OptionFormEntry{e}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	n, err := s.ExportCSV(ctx, "u", &buf)
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	if n != 1 {
		t.Errorf("exported %d rows", n)
	}
	want := "Priority,College Name,Branch,City,Type,Category,Historical Cutoff,Predicted Cutoff,Admission Probability\n" +
		"1,\"College, With Comma\",Computer Engineering,Pune,Government,GOPENS,99.1,97.25,70\n"
	if buf.String() != want {
		t.Errorf("csv =\n%s\nwant\n%s", buf.String(), want)
	}
}
