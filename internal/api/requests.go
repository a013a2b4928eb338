// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package api

import (
	"strings"

	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

// PredictRequest is the body of POST /predict.
type PredictRequest struct {
	Rank       int      `json:"rank" validate:"gt=0"`
	Percentile *float64 `json:"percentile" validate:"required,gte=0,lte=100"`
	Category   string   `json:"category" validate:"omitempty,category"`
	Gender     string   `json:"gender" validate:"omitempty,oneof=Male Female male female M F"`
	City       string   `json:"city" validate:"max=100"`
	Branch     string   `json:"branch" validate:"max=200"`
	Branches   []string `json:"branches" validate:"max=10,dive,max=200"`
	Limit      int      `json:"limit" validate:"omitempty,gte=1,lte=1000"`
}

// anyValues are filter values that mean "no filter".
var anyValues = map[string]struct{}{
	"":             {},
	"all":          {},
	"any":          {},
	"all cities":   {},
	"all branches": {},
}

func isAny(v string) bool {
	_, ok := anyValues[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// Profile converts the request to an applicant profile. A single branch
// given in either field is a single-branch query.
func (p *PredictRequest) Profile() models.ApplicantProfile {
	profile := models.ApplicantProfile{
		Rank:       p.Rank,
		Percentile: *p.Percentile,
		Category:   strings.TrimSpace(p.Category),
		Gender:     models.ParseGender(p.Gender),
		Limit:      p.Limit,
	}
	if !isAny(p.City) {
		profile.City = strings.TrimSpace(p.City)
	}

	branches := p.Branches
	if len(branches) == 0 && p.Branch != "" {
		branches = []string{p.Branch}
	}
	for _, b := range branches {
		if !isAny(b) {
			profile.Branches = append(profile.Branches, b)
		}
	}
	return profile
}

// PredictInput echoes the accepted request in the response.
type PredictInput struct {
	Rank       int      `json:"rank"`
	Percentile float64  `json:"percentile"`
	Category   string   `json:"category"`
	Gender     string   `json:"gender,omitempty"`
	City       string   `json:"city,omitempty"`
	Branches   []string `json:"branches,omitempty"`
	Limit      int      `json:"limit,omitempty"`
}

// PredictResponse is the data of POST /predict.
type PredictResponse struct {
	Input        PredictInput                `json:"input"`
	Statistics   models.PredictionStatistics `json:"statistics"`
	TotalResults int                         `json:"total_results"`
	Predictions  []models.Prediction         `json:"predictions"`
	Diagnostics  models.Diagnostics          `json:"diagnostics"`
}

// CompareRequest is the body of POST /colleges/compare.
type CompareRequest struct {
	CollegeCodes []string `json:"college_codes" validate:"min=1,max=10,dive,required,max=20"`
	Branch       string   `json:"branch" validate:"required,max=200"`
	Category     string   `json:"category" validate:"required,max=20"`
}

// SearchQuery holds the parameters of GET /search.
type SearchQuery struct {
	Query string `json:"q" validate:"required,max=100"`
	Type  string `json:"type" validate:"omitempty,oneof=college branch city"`
}

// CollegeQuery holds the branch/category parameters of the per-college routes.
type CollegeQuery struct {
	Branch   string `json:"branch" validate:"required,max=200"`
	Category string `json:"category" validate:"required,max=20"`
}

// CodesQuery holds the codes list of the available/common catalog routes.
type CodesQuery struct {
	Codes []string `json:"codes" validate:"min=1,max=10"`
}

// SaveFormRequest is the body of POST /optionform.
type SaveFormRequest struct {
	UserID   string                   `json:"user_id" validate:"omitempty,max=128"`
	Colleges []models.OptionFormEntry `json:"colleges" validate:"max=300,dive"`
}

// AddToFormRequest is the body of POST /directory/{code}/add-to-form.
type AddToFormRequest struct {
	UserID               string   `json:"user_id" validate:"omitempty,max=128"`
	Branch               string   `json:"branch" validate:"max=200"`
	QuotaCategory        string   `json:"quota_category" validate:"max=20"`
	SearchCategory       string   `json:"search_category" validate:"max=20"`
	Type                 string   `json:"type" validate:"max=100"`
	HistoricalCutoff     *float64 `json:"historical_cutoff" validate:"omitempty,gte=0,lte=100"`
	PredictedCutoff      *float64 `json:"predicted_cutoff" validate:"omitempty,gte=0,lte=100"`
	AdmissionProbability *float64 `json:"admission_probability" validate:"omitempty,gte=0,lte=100"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message   string `json:"message"` // checked by chat.Assistant.ValidateMessage
	SessionID string `json:"sessionId" validate:"max=128"`
}

// ClearChatRequest is the body of POST /chat/clear.
type ClearChatRequest struct {
	SessionID string `json:"sessionId" validate:"max=128"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=128"`
	Password string `json:"password" validate:"required,max=256"`
}
