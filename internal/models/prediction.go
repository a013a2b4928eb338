// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package models

// Tier is the admission-probability tier surfaced to callers.
type Tier string

const (
	TierHigh     Tier = "HIGH"
	TierModerate Tier = "MODERATE"
	TierBackup   Tier = "BACKUP"
)

// FallbackLevel records how far the eligibility filter had to relax.
type FallbackLevel string

const (
	FallbackNone           FallbackLevel = "none"
	FallbackCategoryGender FallbackLevel = "category_gender" // city/branch narrowing dropped
	FallbackGenderOnly     FallbackLevel = "gender_only"     // category narrowing dropped as well
)

// Severity orders fallback levels from none (0) to gender_only (2).
func (l FallbackLevel) Severity() int {
	switch l {
	case FallbackCategoryGender:
		return 1
	case FallbackGenderOnly:
		return 2
	default:
		return 0
	}
}

// GapWindow names the gap window that produced the candidate set.
type GapWindow string

const (
	WindowPrimary   GapWindow = "primary"
	WindowWidened1  GapWindow = "widened_1"
	WindowWidened2  GapWindow = "widened_2"
	WindowUnbounded GapWindow = "unbounded"
	WindowNone      GapWindow = "none" // nothing reached the gap stage
)

// Prediction is one ranked recommendation.
type Prediction struct {
	Rank                 int     `json:"rank"`
	CollegeCode          string  `json:"college_code"`
	CollegeName          string  `json:"college_name"`
	Branch               string  `json:"branch"`
	City                 string  `json:"city"`
	Type                 string  `json:"type"`
	PredictedCutoff      float64 `json:"predicted_cutoff"`
	HistoricalCutoff     float64 `json:"historical_cutoff"`
	CutoffRank           int     `json:"cutoff_rank,omitempty"`
	AdmissionProbability float64 `json:"admission_probability"`
	PercentileGap        float64 `json:"percentile_gap"`
	Closeness            float64 `json:"closeness"`
	Tier                 Tier    `json:"tier"`
	QuotaCategory        string  `json:"quota_category"`
	Year                 string  `json:"year,omitempty"`
	Round                int     `json:"round"`
	TypeWeight           float64 `json:"type_weight"`
}

// TierCount is a per-tier count with its share of the total.
type TierCount struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// PredictionStatistics summarizes a prediction list.
type PredictionStatistics struct {
	Total              int       `json:"total"`
	High               TierCount `json:"high"`
	Moderate           TierCount `json:"moderate"`
	Backup             TierCount `json:"backup"`
	AvgProbability     float64   `json:"avg_probability"`
	HighestProbability float64   `json:"highest_probability"`
	LowestProbability  float64   `json:"lowest_probability"`
}

// Diagnostics tells callers which relaxation paths produced the result.
type Diagnostics struct {
	Branch         string        `json:"branch,omitempty"`
	FallbackUsed   bool          `json:"fallback_used"`
	FallbackLevel  FallbackLevel `json:"fallback_level"`
	Window         GapWindow     `json:"window"`
	DataAbsent     bool          `json:"data_absent"`
	EligibleCount  int           `json:"eligible_count"`
	CandidateCount int           `json:"candidate_count"`
	SkippedRecords int           `json:"skipped_records"`
	Generation     uint64        `json:"generation"`
	PerBranch      []Diagnostics `json:"per_branch,omitempty"`
}

// PredictionResult is the pipeline output for one request.
type PredictionResult struct {
	Predictions []Prediction         `json:"predictions"`
	Statistics  PredictionStatistics `json:"statistics"`
	Diagnostics Diagnostics          `json:"diagnostics"`
}
