// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package models

// CollegeYearRecord is a historical row annotated with its normalization groups.
type CollegeYearRecord struct {
	CutoffRecord
	BranchNormalized   string `json:"branch_normalized"`
	CategoryNormalized string `json:"category_normalized"`
	TypeNormalized     string `json:"type_normalized"`
	CollegeURL         string `json:"college_url"`
}

// TrendDirection classifies the closing-rank series of a college/branch/category.
type TrendDirection string

const (
	TrendDecreasingCompetition TrendDirection = "decreasing_competition"
	TrendIncreasingCompetition TrendDirection = "increasing_competition"
	TrendStable                TrendDirection = "stable"
	TrendInsufficientData      TrendDirection = "insufficient_data"
	TrendNoRankData            TrendDirection = "no_rank_data"
)

// TrendAnalysis is the rank trend for one college/branch/category.
type TrendAnalysis struct {
	Trend             TrendDirection      `json:"trend"`
	YearsAvailable    int                 `json:"years_available"`
	Message           string              `json:"message,omitempty"`
	FirstYear         string              `json:"first_year,omitempty"`
	LastYear          string              `json:"last_year,omitempty"`
	FirstRank         int                 `json:"first_rank,omitempty"`
	LastRank          int                 `json:"last_rank,omitempty"`
	RankChange        int                 `json:"rank_change"`
	RankChangePercent float64             `json:"rank_change_percent"`
	AllYearsData      []CollegeYearRecord `json:"all_years_data,omitempty"`
}

// CollegeStats aggregates every row of one college.
type CollegeStats struct {
	CollegeCode                 string   `json:"college_code"`
	CollegeName                 string   `json:"college_name"`
	City                        string   `json:"city"`
	Type                        string   `json:"type"`
	TypeNormalized              string   `json:"type_normalized"`
	CollegeURL                  string   `json:"college_url"`
	TotalBranches               int      `json:"total_branches"`
	AvailableBranches           []string `json:"available_branches"`
	AvailableBranchesNormalized []string `json:"available_branches_normalized"`
	AvailableCategories         []string `json:"available_categories"`
	YearsOfData                 []string `json:"years_of_data"`
	AvgClosingRank              *int     `json:"avg_closing_rank"`
	MinClosingRank              *int     `json:"min_closing_rank"`
	MaxClosingRank              *int     `json:"max_closing_rank"`
	AvgClosingPercentile        *float64 `json:"avg_closing_percentile"`
}

// CollegeSummary is one college in list and search results.
type CollegeSummary struct {
	CollegeCode    string `json:"college_code"`
	CollegeName    string `json:"college_name"`
	City           string `json:"city"`
	Type           string `json:"type"`
	TypeNormalized string `json:"type_normalized"`
	CollegeURL     string `json:"college_url"`
	Year           string `json:"year"`
}

// CategoryInfo describes a category code's group.
type CategoryInfo struct {
	Code        string `json:"code"`
	Group       string `json:"group"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}
