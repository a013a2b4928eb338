// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

/*
Package middleware provides HTTP middleware shared by every route group.

  - RequestID: accepts or generates X-Request-ID and puts the request and
    correlation IDs into the context for logging.Ctx.
  - PrometheusMetrics: request totals, durations and in-flight gauge, labeled
    by the chi route pattern rather than the raw path so that
    /colleges/{code} is one series.

Both use the http.HandlerFunc form; the api package adapts them for chi:

	r.Use(chiMiddleware(middleware.PrometheusMetrics))
*/
package middleware
