// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/supriyamulik/cet-college-predictor/internal/auth"
	"github.com/supriyamulik/cet-college-predictor/internal/chat"
	"github.com/supriyamulik/cet-college-predictor/internal/compare"
	"github.com/supriyamulik/cet-college-predictor/internal/dataset"
	"github.com/supriyamulik/cet-college-predictor/internal/directory"
	"github.com/supriyamulik/cet-college-predictor/internal/logging"
	"github.com/supriyamulik/cet-college-predictor/internal/optionform"
	"github.com/supriyamulik/cet-college-predictor/internal/predictor"
	"github.com/supriyamulik/cet-college-predictor/internal/recommend"
	"github.com/supriyamulik/cet-college-predictor/internal/resources"
	"github.com/supriyamulik/cet-college-predictor/internal/validation"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Dependencies wires the domain services into the handlers. Auth may be nil,
// in which case the admin routes answer 404.
type Dependencies struct {
	Store      *dataset.Store
	Predictor  *predictor.Predictor
	Engine     *recommend.Engine
	Comparison *compare.Engine
	Directory  *directory.Service
	Forms      *optionform.Store
	Vault      *resources.Vault
	Assistant  *chat.Assistant
	Auth       *auth.Service

	Version string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files by route group:
//   - handlers_health.go: liveness, readiness and health
//   - handlers_predict.go: prediction, dataset info, filters, search
//   - handlers_colleges.go: comparison catalog and trends
//   - handlers_directory.go, handlers_optionform.go: directory and option forms
//   - handlers_resources.go: resource vault
//   - handlers_chat.go: assistant
//   - handlers_admin.go: login and dataset administration
type Handler struct {
	deps      Dependencies
	startTime time.Time
}

// NewHandler validates deps and returns a handler.
func NewHandler(deps Dependencies) (*Handler, error) {
	switch {
	case deps.Store == nil:
		return nil, errors.New("api: dataset store is required")
	case deps.Predictor == nil, deps.Engine == nil:
		return nil, errors.New("api: prediction engine is required")
	case deps.Comparison == nil:
		return nil, errors.New("api: comparison engine is required")
	case deps.Directory == nil, deps.Forms == nil:
		return nil, errors.New("api: directory and option form store are required")
	case deps.Vault == nil:
		return nil, errors.New("api: resource vault is required")
	case deps.Assistant == nil:
		return nil, errors.New("api: chat assistant is required")
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}
	return &Handler{deps: deps, startTime: time.Now()}, nil
}

// decodeJSON reads a JSON body into dst and validates it. It writes the
// error response itself and reports whether the handler may continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			NewResponseWriter(w, r).BadRequest("Request body is required")
		case errors.As(err, &maxErr):
			NewResponseWriter(w, r).Error(http.StatusRequestEntityTooLarge, ErrCodeBadRequest,
				fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit))
		default:
			NewResponseWriter(w, r).BadRequest("Invalid JSON body: " + err.Error())
		}
		return false
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		NewResponseWriter(w, r).ValidationError(verr.ToAPIError())
		return false
	}
	return true
}

// validateQuery validates a struct filled from query parameters.
func validateQuery(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if verr := validation.ValidateStruct(dst); verr != nil {
		NewResponseWriter(w, r).ValidationError(verr.ToAPIError())
		return false
	}
	return true
}

// queryList splits repeated and comma-separated values: ?codes=1,2&codes=3.
func queryList(r *http.Request, name string) []string {
	var out []string
	for _, raw := range r.URL.Query()[name] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func urlParam(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}

// logging503 records why an endpoint is unavailable.
func logging503(r *http.Request, err error) {
	logging.Ctx(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("Service unavailable")
}
