// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/supriyamulik/cet-college-predictor/internal/directory"
	"github.com/supriyamulik/cet-college-predictor/internal/logging"
)

func formUserID(r *http.Request) string {
	if id := urlParam(r, "userID"); id != "" {
		return id
	}
	return directory.DefaultUserID
}

// SaveOptionForm replaces a user's option form.
//
// POST /api/v1/optionform
func (h *Handler) SaveOptionForm(w http.ResponseWriter, r *http.Request) {
	var req SaveFormRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	userID := req.UserID
	if userID == "" {
		userID = directory.DefaultUserID
	}

	form, err := h.deps.Forms.Save(r.Context(), userID, req.Colleges)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, form)
}

// GetOptionForm returns a user's option form; unknown users get an empty one.
//
// GET /api/v1/optionform/{userID}
func (h *Handler) GetOptionForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.deps.Forms.Load(r.Context(), formUserID(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, form)
}

// DeleteOptionForm removes a user's option form.
//
// DELETE /api/v1/optionform/{userID}
func (h *Handler) DeleteOptionForm(w http.ResponseWriter, r *http.Request) {
	userID := formUserID(r)
	if err := h.deps.Forms.Delete(r.Context(), userID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, map[string]interface{}{"deleted": true, "user_id": userID})
}

// ExportOptionForm downloads the option form as CSV.
//
// GET /api/v1/optionform/{userID}/export
func (h *Handler) ExportOptionForm(w http.ResponseWriter, r *http.Request) {
	userID := formUserID(r)

	// Buffered so that a failure can still be reported as JSON.
	var buf bytes.Buffer
	n, err := h.deps.Forms.ExportCSV(r.Context(), userID, &buf)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "option_form_"+userID+".csv"))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Option form export interrupted")
		return
	}
	logging.Ctx(r.Context()).Debug().Str("user_id", userID).Int("entries", n).Msg("Option form exported")
}
