// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package models

// CutoffRecord is one row of the historical cutoff table.
type CutoffRecord struct {
	CollegeCode       string  `json:"college_code"`
	CollegeName       string  `json:"college_name"`
	City              string  `json:"city"`
	Type              string  `json:"type"`
	BranchName        string  `json:"branch_name"`
	Category          string  `json:"category"` // upper-cased quota code, e.g. GOPENS
	Year              string  `json:"year"`
	ClosingRank       int     `json:"closing_rank,omitempty"` // 0 when absent
	ClosingPercentile float64 `json:"closing_percentile"`
	Round             int     `json:"round,omitempty"` // 0 when absent

	// Derived once at load time.
	TypeWeight  float64 `json:"-"`
	CNormalized float64 `json:"-"`
}

// HasRank reports whether the row carries a closing rank.
func (r *CutoffRecord) HasRank() bool {
	return r.ClosingRank > 0
}

// DatasetInfo summarizes the active snapshot.
type DatasetInfo struct {
	TotalRecords        int      `json:"total_records"`
	TotalColleges       int      `json:"total_colleges"`
	TotalBranches       int      `json:"total_branches"`
	TotalCities         int      `json:"total_cities"`
	AvailableBranches   []string `json:"available_branches"`   // first 20
	AvailableCities     []string `json:"available_cities"`     // first 20
	AvailableCategories []string `json:"available_categories"` // all
	MinPercentile       float64  `json:"min_percentile"`
	MaxPercentile       float64  `json:"max_percentile"`
	Generation          uint64   `json:"generation"`
}

// FilterOptions lists the values a client may filter on.
type FilterOptions struct {
	Branches   []string `json:"branches"`
	Cities     []string `json:"cities"`
	Categories []string `json:"categories"`
}

// DatasetStatus is the admin view of the store.
type DatasetStatus struct {
	Generation     uint64 `json:"generation"`
	Source         string `json:"source"`
	LoadedAt       string `json:"loaded_at,omitempty"`
	Records        int    `json:"records"`
	SkippedRecords int    `json:"skipped_records"`
	DirectoryRows  int    `json:"directory_rows"`
	LastError      string `json:"last_error,omitempty"`
}
