// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package api

import (
	"net/http"

	"github.com/supriyamulik/cet-college-predictor/internal/directory"
	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

// AddToFormResponse is the data of POST /directory/{code}/add-to-form.
type AddToFormResponse struct {
	Entry         *models.OptionFormEntry `json:"entry"`
	TotalColleges int                     `json:"total_colleges"`
	UserID        string                  `json:"user_id"`
}

// Directory lists every college in the directory file.
//
// GET /api/v1/directory
func (h *Handler) Directory(w http.ResponseWriter, r *http.Request) {
	listing, err := h.deps.Directory.List()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, listing)
}

// FilterDirectory narrows the directory by city and a name or code search.
//
// GET /api/v1/directory/filter?city=Pune&search=engineering
func (h *Handler) FilterDirectory(w http.ResponseWriter, r *http.Request) {
	listing, err := h.deps.Directory.Filter(r.URL.Query().Get("city"), r.URL.Query().Get("search"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, listing)
}

// DirectoryStats reports directory coverage.
//
// GET /api/v1/directory/stats
func (h *Handler) DirectoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.deps.Directory.Stats()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, stats)
}

// AddToForm appends a directory college to an option form.
//
// POST /api/v1/directory/{code}/add-to-form
func (h *Handler) AddToForm(w http.ResponseWriter, r *http.Request) {
	var req AddToFormRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = directory.DefaultUserID
	}
	form, entry, err := h.deps.Directory.AddToForm(r.Context(), userID, urlParam(r, "code"), directory.AddOptions{
		Branch:               req.Branch,
		QuotaCategory:        req.QuotaCategory,
		SearchCategory:       req.SearchCategory,
		Type:                 req.Type,
		HistoricalCutoff:     req.HistoricalCutoff,
		PredictedCutoff:      req.PredictedCutoff,
		AdmissionProbability: req.AdmissionProbability,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(AddToFormResponse{
		Entry:         entry,
		TotalColleges: form.TotalColleges,
		UserID:        form.UserID,
	})
}
