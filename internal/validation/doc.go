// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

/*
Package validation validates request structs with go-playground/validator.

A single validator instance is shared process-wide; it caches struct
metadata, so request types should be validated through ValidateStruct:

	type PredictRequest struct {
	    Rank       int     `json:"rank" validate:"gt=0"`
	    Percentile float64 `json:"percentile" validate:"gte=0,lte=100"`
	    Category   string  `json:"category" validate:"omitempty,category"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    // respond 400 with apiErr.Code (VALIDATION_ERROR) and apiErr.Message
	}

Field names in messages are the json names, so "rank must be greater than 0"
refers to the request body key.

# Custom Tags

  - category: a reservation group (OPEN, OBC, ...) or a quota code that maps
    to one (GOBCS, LOPENS, ...). Matching is case-insensitive.
*/
package validation
