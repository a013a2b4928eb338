// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package api

import (
	"net/http"
	"time"
)

// Health status values.
const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// HealthStatus is the data of GET /health.
type HealthStatus struct {
	Status          string  `json:"status"`
	Version         string  `json:"version"`
	DatasetLoaded   bool    `json:"dataset_loaded"`
	ModelLoaded     bool    `json:"model_loaded"`
	Generation      uint64  `json:"generation"`
	Records         int     `json:"records"`
	LastError       string  `json:"last_error,omitempty"`
	ChatConfigured  bool    `json:"chat_configured"`
	AdminEnabled    bool    `json:"admin_enabled"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
	PredictRequests int64   `json:"predict_requests"`
	PredictFailures int64   `json:"predict_failures"`
}

// Health reports overall status. It always answers 200; the status field
// says degraded when the dataset or model is missing.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	st := h.deps.Store.Status()
	requests, failures := h.deps.Engine.Stats()

	health := HealthStatus{
		Status:          statusHealthy,
		Version:         h.deps.Version,
		DatasetLoaded:   h.deps.Store.Snapshot().Available() == nil,
		ModelLoaded:     h.deps.Predictor.Available() == nil,
		Generation:      st.Generation,
		Records:         st.Records,
		LastError:       st.LastError,
		ChatConfigured:  h.deps.Assistant.Configured(),
		AdminEnabled:    h.deps.Auth != nil,
		UptimeSeconds:   time.Since(h.startTime).Seconds(),
		PredictRequests: requests,
		PredictFailures: failures,
	}
	if !health.DatasetLoaded || !health.ModelLoaded {
		health.Status = statusDegraded
	}

	WriteSuccess(w, r, health)
}

// HealthLive answers 200 while the process is running.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady answers 200 only when predictions can be served.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Engine.Available(); err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, map[string]interface{}{
		"ready":      true,
		"generation": h.deps.Store.Snapshot().Generation,
	})
}
