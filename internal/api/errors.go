// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package api

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/supriyamulik/cet-college-predictor/internal/auth"
	"github.com/supriyamulik/cet-college-predictor/internal/chat"
	"github.com/supriyamulik/cet-college-predictor/internal/dataset"
	"github.com/supriyamulik/cet-college-predictor/internal/directory"
	"github.com/supriyamulik/cet-college-predictor/internal/eligibility"
	"github.com/supriyamulik/cet-college-predictor/internal/optionform"
	"github.com/supriyamulik/cet-college-predictor/internal/predictor"
	"github.com/supriyamulik/cet-college-predictor/internal/recommend"
	"github.com/supriyamulik/cet-college-predictor/internal/resources"
)

// Common API errors
var (
	// ErrAdminDisabled is returned by admin routes when auth is not configured.
	ErrAdminDisabled = errors.New("admin access is disabled")
)

// respondServiceError maps a domain error to a status code and envelope.
// Unrecognized errors become an opaque 500 and are logged with full context.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)

	var locked *auth.LockedError
	switch {
	case errors.As(err, &locked):
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(locked.RetryAfter.Seconds()))))
		rw.TooManyRequests("Too many failed login attempts, try again later")

	case errors.Is(err, recommend.ErrInvalidProfile),
		errors.Is(err, eligibility.ErrUnknownCategory),
		errors.Is(err, chat.ErrInvalidMessage):
		rw.Error(http.StatusBadRequest, ErrCodeValidation, err.Error())

	case errors.Is(err, optionform.ErrInvalidUserID):
		rw.BadRequest(err.Error())

	case errors.Is(err, optionform.ErrTooManyEntries):
		rw.Error(http.StatusConflict, ErrCodeConflict, err.Error())

	case errors.Is(err, directory.ErrCollegeNotFound),
		errors.Is(err, optionform.ErrNotFound),
		errors.Is(err, resources.ErrUnknownCategory):
		rw.NotFound(err.Error())

	case errors.Is(err, auth.ErrInvalidCredentials):
		rw.Unauthorized("Invalid username or password")

	case errors.Is(err, ErrAdminDisabled):
		rw.NotFound(err.Error())

	case errors.Is(err, dataset.ErrNotLoaded),
		errors.Is(err, directory.ErrNotLoaded):
		logging503(r, err)
		rw.ServiceUnavailable("Dataset is not loaded")

	case errors.Is(err, predictor.ErrModelUnavailable):
		logging503(r, err)
		rw.ServiceUnavailable("Prediction model is not loaded")

	case errors.Is(err, context.DeadlineExceeded):
		rw.ServiceUnavailable("Request timed out")

	default:
		rw.InternalError(err)
	}
}
