// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/supriyamulik/cet-college-predictor/internal/chat"
)

// ChatGreeting returns the opening message.
//
// GET /api/v1/chat/greeting
func (h *Handler) ChatGreeting(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"greeting":   h.deps.Assistant.Greeting(),
		"configured": h.deps.Assistant.Configured(),
	})
}

// ChatQuickReplies returns suggested prompts; empty when not configured.
//
// GET /api/v1/chat/quick-replies
func (h *Handler) ChatQuickReplies(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{"quick_replies": h.deps.Assistant.QuickReplies()})
}

// ChatHealth reports assistant readiness; 503 when no API key is configured.
//
// GET /api/v1/chat/health
func (h *Handler) ChatHealth(w http.ResponseWriter, r *http.Request) {
	health := h.deps.Assistant.Health()
	if health.Status == chat.StatusUnavailable {
		NewResponseWriter(w, r).ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Chat assistant is not configured", health)
		return
	}
	WriteSuccess(w, r, health)
}

// Chat answers one message. Backend failures come back as a friendly reply
// with status 200; only invalid messages are errors.
//
// POST /api/v1/chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reply, err := h.deps.Assistant.Chat(r.Context(), req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrInvalidMessage) {
			msg := strings.TrimPrefix(err.Error(), chat.ErrInvalidMessage.Error()+": ")
			NewResponseWriter(w, r).Error(http.StatusBadRequest, ErrCodeValidation, msg)
			return
		}
		respondServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, reply)
}

// ChatClear drops a session's history.
//
// POST /api/v1/chat/clear
func (h *Handler) ChatClear(w http.ResponseWriter, r *http.Request) {
	var req ClearChatRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	sessionID := h.deps.Assistant.Clear(req.SessionID)
	WriteSuccess(w, r, map[string]interface{}{"cleared": true, "sessionId": sessionID})
}
