// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

/*
Package api is the chi HTTP surface of the predictor under /api/v1.

Every JSON endpoint answers with the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}}
	{"success": false, "error": {"code": "VALIDATION_ERROR", "message": "...", "details": {...}}, "meta": {...}}

Route groups:

  - /health, /health/live, /health/ready
  - /predict, /model-info, /statistics, /filters, /search
  - /colleges/..., /categories/{code}/info
  - /directory/...
  - /optionform/...
  - /resources/...
  - /chat/...
  - /auth/login and /admin/dataset (JWT plus Casbin RBAC)

/metrics is served at the root for Prometheus.

Domain errors are mapped to status codes in one place (respondServiceError):
an unloaded dataset or model is 503, bad input is 400, unknown entities are
404 and everything else is an opaque 500 whose cause is logged.
*/
package api
