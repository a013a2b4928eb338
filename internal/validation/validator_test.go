// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package validation

import (
	"strings"
	"testing"
)

type profileRequest struct {
	Rank       int      `json:"rank" validate:"gt=0"`
	Percentile float64  `json:"percentile" validate:"gte=0,lte=100"`
	Category   string   `json:"category" validate:"omitempty,category"`
	Gender     string   `json:"gender" validate:"omitempty,oneof=Male Female"`
	Branches   []string `json:"branches" validate:"max=3"`
	Note       string   `json:"note" validate:"max=5"`
	Internal   string   `json:"-"`
}

func validProfile() profileRequest {
	return profileRequest{Rank: 1200, Percentile: 97.5, Category: "OBC", Gender: "Female"}
}

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*profileRequest)
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{name: "valid", mutate: func(*profileRequest) {}},
		{name: "quota code category", mutate: func(p *profileRequest) { p.Category = "gobcs" }},
		{name: "empty optional fields", mutate: func(p *profileRequest) { p.Category, p.Gender = "", "" }},
		{
			name:      "zero rank",
			mutate:    func(p *profileRequest) { p.Rank = 0 },
			wantField: "rank", wantTag: "gt", wantMsg: "rank must be greater than 0",
		},
		{
			name:      "percentile above 100",
			mutate:    func(p *profileRequest) { p.Percentile = 100.5 },
			wantField: "percentile", wantTag: "lte", wantMsg: "percentile must be less than or equal to 100",
		},
		{
			name:      "unknown category",
			mutate:    func(p *profileRequest) { p.Category = "XYZ" },
			wantField: "category", wantTag: "category", wantMsg: "category is not a known reservation category",
		},
		{
			name:      "bad gender",
			mutate:    func(p *profileRequest) { p.Gender = "Other" },
			wantField: "gender", wantTag: "oneof", wantMsg: "gender must be one of: Male Female",
		},
		{
			name:      "too many branches",
			mutate:    func(p *profileRequest) { p.Branches = []string{"a", "b", "c", "d"} },
			wantField: "branches", wantTag: "max", wantMsg: "branches must be at most 3 items",
		},
		{
			name:      "long string",
			mutate:    func(p *profileRequest) { p.Note = "too long" },
			wantField: "note", wantTag: "max", wantMsg: "note must be at most 5 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validProfile()
			tt.mutate(&req)

			verr := ValidateStruct(&req)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("unexpected validation error: %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("expected validation error, got nil")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("field/tag = %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Run("single error", func(t *testing.T) {
		req := validProfile()
		req.Rank = -4

		apiErr := ValidateStruct(&req).ToAPIError()
		if apiErr.Code != ErrorCode {
			t.Errorf("Code = %q, want %q", apiErr.Code, ErrorCode)
		}
		if apiErr.Details["field"] != "rank" {
			t.Errorf("Details[field] = %v, want rank", apiErr.Details["field"])
		}
		if apiErr.Details["value"] != -4 {
			t.Errorf("Details[value] = %v, want -4", apiErr.Details["value"])
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		req := validProfile()
		req.Rank = 0
		req.Percentile = -1

		apiErr := ValidateStruct(&req).ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok || len(fields) != 2 {
			t.Fatalf("Details[fields] = %v", apiErr.Details["fields"])
		}
		if !strings.Contains(apiErr.Message, "rank") || !strings.Contains(apiErr.Message, "percentile") {
			t.Errorf("Message = %q, want both fields named", apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Code != ErrorCode || apiErr.Message != "Validation failed" {
			t.Errorf("ToAPIError() = %+v", apiErr)
		}
	})
}

func TestValidateStruct_NonStruct(t *testing.T) {
	verr := ValidateStruct("not a struct")
	if verr == nil {
		t.Fatal("expected error for non-struct input")
	}
	if verr.Errors()[0].Field() != "unknown" {
		t.Errorf("Field() = %q, want unknown", verr.Errors()[0].Field())
	}
}

func TestCategoryTagRegistered(t *testing.T) {
	v := GetValidator()
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"OBC", false},
		{"GOBCS", false},
		{"open", false},
		{"NOTACATEGORY", true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := v.Var(tt.value, "category")
			if (err != nil) != tt.wantErr {
				t.Errorf("Var(%q, category) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}
