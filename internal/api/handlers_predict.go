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

// Predict runs the prediction pipeline.
//
// POST /api/v1/predict
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile := req.Profile()
	result, err := h.deps.Engine.Predict(r.Context(), profile)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	category := profile.Category
	if category == "" {
		category = "OPEN"
	}
	WriteSuccess(w, r, PredictResponse{
		Input: PredictInput{
			Rank:       profile.Rank,
			Percentile: profile.Percentile,
			Category:   strings.ToUpper(category),
			Gender:     string(profile.Gender),
			City:       profile.City,
			Branches:   profile.Branches,
			Limit:      profile.Limit,
		},
		Statistics:   result.Statistics,
		TotalResults: len(result.Predictions),
		Predictions:  result.Predictions,
		Diagnostics:  result.Diagnostics,
	})
}

// ModelInfo is the data of GET /model-info.
type ModelInfo struct {
	ModelLoaded bool               `json:"model_loaded"`
	Dataset     models.DatasetInfo `json:"dataset"`
	Source      string             `json:"source"`
	LoadedAt    string             `json:"loaded_at,omitempty"`
}

// ModelInfo describes the loaded model and dataset.
//
// GET /api/v1/model-info
func (h *Handler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	snap := h.deps.Store.Snapshot()
	if err := snap.Available(); err != nil {
		respondServiceError(w, r, err)
		return
	}
	st := h.deps.Store.Status()
	WriteSuccess(w, r, ModelInfo{
		ModelLoaded: h.deps.Predictor.Available() == nil,
		Dataset:     snap.Info(),
		Source:      st.Source,
		LoadedAt:    st.LoadedAt,
	})
}

// Statistics summarizes the dataset.
//
// GET /api/v1/statistics
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	snap := h.deps.Store.Snapshot()
	if err := snap.Available(); err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, snap.Info())
}

// Filters lists every branch, city and category.
//
// GET /api/v1/filters
func (h *Handler) Filters(w http.ResponseWriter, r *http.Request) {
	snap := h.deps.Store.Snapshot()
	if err := snap.Available(); err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, snap.Filters())
}

// Search looks up colleges, branches or cities by substring.
//
// GET /api/v1/search?q=pune&type=city
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := SearchQuery{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Type:  strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type"))),
	}
	if !validateQuery(w, r, &q) {
		return
	}

	snap := h.deps.Store.Snapshot()
	if err := snap.Available(); err != nil {
		respondServiceError(w, r, err)
		return
	}
	results := snap.Search(q.Query, q.Type)
	WriteSuccess(w, r, map[string]interface{}{
		"query":   q.Query,
		"type":    q.Type,
		"results": results,
		"count":   len(results),
	})
}
