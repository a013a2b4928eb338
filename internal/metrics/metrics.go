// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

// Package metrics holds the Prometheus collectors for the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Dataset Metrics
	DatasetLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_loads_total",
			Help: "Total number of dataset load attempts",
		},
		[]string{"outcome"}, // "success", "failure"
	)

	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Duration of dataset loads in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_records",
			Help: "Number of cutoff records in the active snapshot",
		},
	)

	DatasetSkippedRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_skipped_records",
			Help: "Rows rejected by the last successful load",
		},
	)

	DatasetGeneration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_generation",
			Help: "Generation number of the active snapshot",
		},
	)

	// Prediction Metrics
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Total number of prediction requests",
		},
		[]string{"outcome"}, // "ok", "empty", "invalid", "unavailable", "error"
	)

	PredictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prediction_duration_seconds",
			Help:    "Duration of the prediction pipeline in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	PredictionFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prediction_fallbacks_total",
			Help: "Eligibility fallbacks by level",
		},
		[]string{"level"},
	)

	PredictionWindows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prediction_gap_windows_total",
			Help: "Gap windows that produced the candidate set",
		},
		[]string{"window"},
	)

	PredictionSkippedRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "prediction_skipped_records_total",
			Help: "Rows skipped because the model failed on them",
		},
	)

	// Chat Metrics
	ChatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "Total number of chat requests",
		},
		[]string{"outcome"}, // "ok", "not_configured", "rate_limited", "rejected", "error"
	)

	ChatSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_sessions",
			Help: "Current number of retained chat sessions",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Option form Metrics
	OptionFormOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optionform_operations_total",
			Help: "Option form store operations",
		},
		[]string{"operation", "status"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordDatasetLoad records one load attempt. records, skipped and generation
// are only applied on success.
func RecordDatasetLoad(duration time.Duration, records, skipped int, generation uint64, err error) {
	DatasetLoadDuration.Observe(duration.Seconds())
	if err != nil {
		DatasetLoadsTotal.WithLabelValues("failure").Inc()
		return
	}
	DatasetLoadsTotal.WithLabelValues("success").Inc()
	DatasetRecords.Set(float64(records))
	DatasetSkippedRecords.Set(float64(skipped))
	DatasetGeneration.Set(float64(generation))
}

// RecordPrediction records a pipeline run.
func RecordPrediction(outcome string, duration time.Duration) {
	PredictionsTotal.WithLabelValues(outcome).Inc()
	PredictionDuration.Observe(duration.Seconds())
}

// RecordPredictionPath records which relaxation paths a run took.
func RecordPredictionPath(fallbackLevel, window string, skipped int) {
	PredictionFallbacks.WithLabelValues(fallbackLevel).Inc()
	PredictionWindows.WithLabelValues(window).Inc()
	if skipped > 0 {
		PredictionSkippedRecords.Add(float64(skipped))
	}
}

// RecordChat records the outcome of a chat request.
func RecordChat(outcome string) {
	ChatRequestsTotal.WithLabelValues(outcome).Inc()
}

// RecordOptionForm records an option form store operation.
func RecordOptionForm(operation string, err error) {
	OptionFormOperations.WithLabelValues(operation, strconv.FormatBool(err == nil)).Inc()
}
