// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package api

import (
	"net/http"
	"strings"

	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

// CollegeDataResponse is the data of GET /colleges/{code}.
type CollegeDataResponse struct {
	CollegeCode string                     `json:"college_code"`
	Branch      string                     `json:"branch"`
	Category    string                     `json:"category"`
	Count       int                        `json:"count"`
	Records     []models.CollegeYearRecord `json:"records"`
}

// CompareResponse is the data of POST /colleges/compare.
type CompareResponse struct {
	Branch   string                                `json:"branch"`
	Category string                                `json:"category"`
	Colleges map[string][]models.CollegeYearRecord `json:"colleges"`
}

func (h *Handler) collegeQuery(w http.ResponseWriter, r *http.Request) (CollegeQuery, bool) {
	q := CollegeQuery{
		Branch:   strings.TrimSpace(r.URL.Query().Get("branch")),
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
	}
	return q, validateQuery(w, r, &q)
}

func (h *Handler) codesQuery(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	q := CodesQuery{Codes: queryList(r, "codes")}
	return q.Codes, validateQuery(w, r, &q)
}

// ListColleges lists colleges from the latest year, optionally by city and type.
//
// GET /api/v1/colleges?city=Pune&type=Government
func (h *Handler) ListColleges(w http.ResponseWriter, r *http.Request) {
	colleges, err := h.deps.Comparison.ListColleges(r.URL.Query().Get("city"), r.URL.Query().Get("type"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, map[string]interface{}{"colleges": colleges, "count": len(colleges)})
}

// SearchColleges matches college names and codes.
//
// GET /api/v1/colleges/search?q=coep
func (h *Handler) SearchColleges(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	colleges, err := h.deps.Comparison.SearchColleges(query.Get("q"), query.Get("city"), query.Get("type"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, map[string]interface{}{"colleges": colleges, "count": len(colleges)})
}

// AvailableBranches lists the normalized branches of the given colleges.
//
// GET /api/v1/colleges/branches?codes=1001,2002
func (h *Handler) AvailableBranches(w http.ResponseWriter, r *http.Request) {
	codes, ok := h.codesQuery(w, r)
	if !ok {
		return
	}
	branches, err := h.deps.Comparison.AvailableBranches(codes)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, map[string]interface{}{"branches": branches})
}

// AvailableCategories lists categories of the given colleges, optionally for one branch.
//
// GET /api/v1/colleges/categories?codes=1001&branch=Computer
func (h *Handler) AvailableCategories(w http.ResponseWriter, r *http.Request) {
	codes, ok := h.codesQuery(w, r)
	if !ok {
		return
	}
	categories, err := h.deps.Comparison.AvailableCategories(codes, r.URL.Query().Get("branch"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, map[string]interface{}{"categories": categories})
}

// CommonBranches lists branches offered by every given college.
//
// GET /api/v1/colleges/common-branches?codes=1001,2002
func (h *Handler) CommonBranches(w http.ResponseWriter, r *http.Request) {
	codes, ok := h.codesQuery(w, r)
	if !ok {
		return
	}
	branches, err := h.deps.Comparison.CommonBranches(codes)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, map[string]interface{}{"branches": branches})
}

// CommonCategories lists categories offered by every given college.
//
// GET /api/v1/colleges/common-categories?codes=1001,2002&branch=Civil
func (h *Handler) CommonCategories(w http.ResponseWriter, r *http.Request) {
	codes, ok := h.codesQuery(w, r)
	if !ok {
		return
	}
	categories, err := h.deps.Comparison.CommonCategories(codes, r.URL.Query().Get("branch"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, map[string]interface{}{"categories": categories})
}

// Cities lists every city in the dataset.
//
// GET /api/v1/colleges/cities
func (h *Handler) Cities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.deps.Comparison.Cities()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, map[string]interface{}{"cities": cities})
}

// Types lists the institution type groups.
//
// GET /api/v1/colleges/types
func (h *Handler) Types(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{"types": h.deps.Comparison.Types()})
}

// CollegeData returns the yearly history of one college, branch and category.
//
// GET /api/v1/colleges/{code}?branch=Computer&category=GOPENS
func (h *Handler) CollegeData(w http.ResponseWriter, r *http.Request) {
	q, ok := h.collegeQuery(w, r)
	if !ok {
		return
	}
	code := urlParam(r, "code")
	records, err := h.deps.Comparison.CollegeData(code, q.Branch, q.Category)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, CollegeDataResponse{
		CollegeCode: code,
		Branch:      q.Branch,
		Category:    q.Category,
		Count:       len(records),
		Records:     records,
	})
}

// CollegeStats aggregates every row of one college.
//
// GET /api/v1/colleges/{code}/stats
func (h *Handler) CollegeStats(w http.ResponseWriter, r *http.Request) {
	code := urlParam(r, "code")
	stats, found, err := h.deps.Comparison.CollegeStats(code)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if !found {
		NewResponseWriter(w, r).NotFound("No data for college " + code)
		return
	}
	WriteSuccess(w, r, stats)
}

// CollegeTrends classifies the closing-rank trend.
//
// GET /api/v1/colleges/{code}/trends?branch=Computer&category=GOPENS
func (h *Handler) CollegeTrends(w http.ResponseWriter, r *http.Request) {
	q, ok := h.collegeQuery(w, r)
	if !ok {
		return
	}
	trend, err := h.deps.Comparison.TrendAnalysis(urlParam(r, "code"), q.Branch, q.Category)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, trend)
}

// Compare returns the history of several colleges side by side.
//
// POST /api/v1/colleges/compare
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	colleges, err := h.deps.Comparison.Compare(req.CollegeCodes, req.Branch, req.Category)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, CompareResponse{Branch: req.Branch, Category: req.Category, Colleges: colleges})
}

// CategoryInfo describes the group of a category code.
//
// GET /api/v1/categories/{code}/info
func (h *Handler) CategoryInfo(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.deps.Comparison.CategoryInfo(urlParam(r, "code")))
}
