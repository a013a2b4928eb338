// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package api

import (
	"net"
	"net/http"

	"github.com/supriyamulik/cet-college-predictor/internal/auth"
	"github.com/supriyamulik/cet-college-predictor/internal/logging"
)

// clientIP returns the host part of RemoteAddr, which chi's RealIP
// middleware has already replaced when a proxy header is present.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// Login exchanges admin credentials for a JWT.
//
// POST /api/v1/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if h.deps.Auth == nil {
		respondServiceError(w, r, ErrAdminDisabled)
		return
	}
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := h.deps.Auth.Login(req.Username, req.Password, clientIP(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    token.Token,
		Path:     "/api/v1/admin",
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteStrictMode,
	})
	WriteSuccess(w, r, token)
}

// DatasetStatus reports the active dataset generation.
//
// GET /api/v1/admin/dataset
func (h *Handler) DatasetStatus(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.deps.Store.Status())
}

// ReloadDataset reloads the dataset files and swaps in the new generation.
// On failure the previous generation keeps serving and the error is returned.
//
// POST /api/v1/admin/dataset/reload
func (h *Handler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	logger := logging.Ctx(r.Context())
	if claims != nil {
		logger.Info().Str("username", claims.Username).Msg("Dataset reload requested")
	}

	if err := h.deps.Store.Refresh(r.Context()); err != nil {
		NewResponseWriter(w, r).ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Dataset reload failed, previous generation still active", h.deps.Store.Status())
		logger.Error().Err(err).Msg("Dataset reload failed")
		return
	}
	WriteSuccess(w, r, h.deps.Store.Status())
}
