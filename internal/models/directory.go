// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package models

import "time"

// DirectoryEntry is one college in the directory file.
type DirectoryEntry struct {
	SrNo        string `json:"sr_no,omitempty"`
	CollegeCode string `json:"college_code"`
	CollegeName string `json:"college_name"`
	City        string `json:"city"`
	URL         string `json:"url"`
}

// DirectoryStats summarizes the directory.
type DirectoryStats struct {
	TotalColleges       int    `json:"total_colleges"`
	TotalCities         int    `json:"total_cities"`
	CollegesWithWebsite int    `json:"colleges_with_website"`
	WebsiteCoverage     string `json:"website_coverage"` // "NN.N%"
}

// OptionFormEntry is one preference in an applicant's option form.
type OptionFormEntry struct {
	CollegeCode          string    `json:"college_code"`
	CollegeName          string    `json:"college_name" validate:"required"`
	Branch               string    `json:"branch"`
	BranchCode           string    `json:"branch_code,omitempty"`
	City                 string    `json:"city"`
	Type                 string    `json:"type"`
	QuotaCategory        string    `json:"quota_category"`
	SearchCategory       string    `json:"search_category,omitempty"`
	HistoricalCutoff     float64   `json:"historical_cutoff"`
	PredictedCutoff      float64   `json:"predicted_cutoff"`
	AdmissionProbability float64   `json:"admission_probability"`
	AddedFromDirectory   bool      `json:"added_from_directory,omitempty"`
	AddedAt              time.Time `json:"added_at,omitempty"`
}

// OptionForm is the persisted, ordered preference list of one user.
type OptionForm struct {
	UserID        string            `json:"user_id"`
	Colleges      []OptionFormEntry `json:"colleges"`
	UpdatedAt     time.Time         `json:"updated_at"`
	TotalColleges int               `json:"total_colleges"`
}
