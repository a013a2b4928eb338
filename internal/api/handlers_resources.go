// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package api

import (
	"net/http"
	"strconv"
)

// ResourcesSummary counts vault content.
//
// GET /api/v1/resources/summary
func (h *Handler) ResourcesSummary(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.deps.Vault.Summary())
}

// Documents lists required documents for application and counselling.
//
// GET /api/v1/resources/documents
func (h *Handler) Documents(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.deps.Vault.Documents())
}

// DocumentsByCategory returns one document group.
//
// GET /api/v1/resources/documents/{category}
func (h *Handler) DocumentsByCategory(w http.ResponseWriter, r *http.Request) {
	group, err := h.deps.Vault.DocumentsByCategory(urlParam(r, "category"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, group)
}

// SearchDocuments matches document names and descriptions.
//
// GET /api/v1/resources/documents/search?q=certificate
func (h *Handler) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.deps.Vault.SearchDocuments(r.URL.Query().Get("q")))
}

// Scholarships lists every scholarship.
//
// GET /api/v1/resources/scholarships
func (h *Handler) Scholarships(w http.ResponseWriter, r *http.Request) {
	scholarships := h.deps.Vault.Scholarships()
	WriteSuccess(w, r, map[string]interface{}{"scholarships": scholarships, "count": len(scholarships)})
}

// Scholarship returns one scholarship by id.
//
// GET /api/v1/resources/scholarships/{id}
func (h *Handler) Scholarship(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(urlParam(r, "id"))
	if err != nil {
		NewResponseWriter(w, r).BadRequest("Scholarship id must be an integer")
		return
	}
	s, ok := h.deps.Vault.Scholarship(id)
	if !ok {
		NewResponseWriter(w, r).NotFound("Scholarship not found")
		return
	}
	WriteSuccess(w, r, s)
}

// SearchScholarships matches scholarship names and authorities.
//
// GET /api/v1/resources/scholarships/search?q=maharashtra
func (h *Handler) SearchScholarships(w http.ResponseWriter, r *http.Request) {
	matches := h.deps.Vault.SearchScholarships(r.URL.Query().Get("q"))
	WriteSuccess(w, r, map[string]interface{}{"scholarships": matches, "count": len(matches)})
}

// Links lists every link category.
//
// GET /api/v1/resources/links
func (h *Handler) Links(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"links":      h.deps.Vault.Links(),
		"categories": h.deps.Vault.LinkCategories(),
	})
}

// LinksByCategory returns the links of one category.
//
// GET /api/v1/resources/links/{category}
func (h *Handler) LinksByCategory(w http.ResponseWriter, r *http.Request) {
	links, err := h.deps.Vault.LinksByCategory(urlParam(r, "category"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, links)
}

// Contacts returns helplines and offices.
//
// GET /api/v1/resources/contacts
func (h *Handler) Contacts(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.deps.Vault.Contacts())
}

// Dates returns the admission calendar keyed by phase.
//
// GET /api/v1/resources/dates
func (h *Handler) Dates(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"dates":  h.deps.Vault.Dates(),
		"phases": h.deps.Vault.Phases(),
	})
}

// DatesByPhase returns the events of one phase.
//
// GET /api/v1/resources/dates/{phase}
func (h *Handler) DatesByPhase(w http.ResponseWriter, r *http.Request) {
	dates, err := h.deps.Vault.DatesByPhase(urlParam(r, "phase"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, dates)
}

// UpcomingDates returns events still marked upcoming.
//
// GET /api/v1/resources/dates/upcoming
func (h *Handler) UpcomingDates(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.deps.Vault.UpcomingDates())
}

// Tips lists tips, optionally of one category.
//
// GET /api/v1/resources/tips?category=Fees
func (h *Handler) Tips(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		WriteSuccess(w, r, h.deps.Vault.TipsByCategory(category))
		return
	}
	WriteSuccess(w, r, h.deps.Vault.Tips())
}
