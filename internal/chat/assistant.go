// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

// Package chat is the admission assistant: a session-keeping proxy in front
// of a generative model, with canned fallbacks when the model is not
// configured or failing.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/supriyamulik/cet-college-predictor/internal/metrics"
	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

// DefaultSessionID is used when the caller does not send one.
const DefaultSessionID = "default"

// Health statuses.
const (
	StatusHealthy     = "healthy"
	StatusDegraded    = "degraded"
	StatusUnavailable = "unavailable"
)

var (
	// ErrInvalidMessage is returned for empty or oversized messages.
	ErrInvalidMessage = errors.New("invalid chat message")
)

// Reply is the answer to one chat message.
type Reply struct {
	Response   string `json:"response"`
	SessionID  string `json:"sessionId"`
	Configured bool   `json:"configured"`
}

// Health describes the assistant's readiness.
type Health struct {
	Status     string `json:"status"`
	Configured bool   `json:"configured"`
	Model      string `json:"model,omitempty"`
	Breaker    string `json:"breaker,omitempty"`
	Sessions   int    `json:"sessions"`
}

// Assistant answers chat messages. It is safe for concurrent use.
type Assistant struct {
	cfg      Config
	backend  *breakerBackend // nil when not configured
	limiter  *rate.Limiter
	sessions *sessionStore
	logger   zerolog.Logger
}

// New builds an assistant around backend. A nil backend means the assistant
// is not configured and answers with fixed texts.
func New(cfg Config, backend Backend, logger zerolog.Logger) (*Assistant, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chat config: %w", err)
	}
	sessions, err := newSessionStore(cfg.MaxSessions, cfg.SessionMessages)
	if err != nil {
		return nil, fmt.Errorf("create chat session store: %w", err)
	}

	a := &Assistant{
		cfg:      cfg,
		limiter:  rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60), cfg.Burst),
		sessions: sessions,
		logger:   logger.With().Str("component", "chat").Logger(),
	}
	if backend != nil {
		a.backend = newBreakerBackend(backend, cfg.BreakerFailures, cfg.BreakerTimeout)
	}
	return a, nil
}

// Configured reports whether a model backend is attached.
func (a *Assistant) Configured() bool {
	return a.backend != nil
}

// Greeting returns the opening message.
func (a *Assistant) Greeting() string {
	if !a.Configured() {
		return greetingNotConfigured
	}
	return greeting
}

// QuickReplies returns suggested prompts; none when not configured.
func (a *Assistant) QuickReplies() []models.QuickReply {
	if !a.Configured() {
		return []models.QuickReply{}
	}
	return append([]models.QuickReply(nil), quickReplies...)
}

// ValidateMessage checks a message before it reaches the model.
func (a *Assistant) ValidateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("%w: Message cannot be empty", ErrInvalidMessage)
	}
	if utf8.RuneCountInString(message) > a.cfg.MaxMessageLength {
		return fmt.Errorf("%w: Message too long (max %d characters)", ErrInvalidMessage, a.cfg.MaxMessageLength)
	}
	return nil
}

// Chat answers message within a session. Only invalid messages return an
// error; backend problems become a friendly reply.
func (a *Assistant) Chat(ctx context.Context, sessionID, message string) (*Reply, error) {
	message = strings.TrimSpace(message)
	if err := a.ValidateMessage(message); err != nil {
		metrics.RecordChat("invalid")
		return nil, err
	}
	if sessionID == "" {
		sessionID = DefaultSessionID
	}
	reply := &Reply{SessionID: sessionID, Configured: a.Configured()}

	if !a.Configured() {
		metrics.RecordChat("not_configured")
		reply.Response = replyNotConfigured
		return reply, nil
	}

	if !a.limiter.Allow() {
		metrics.RecordChat("rate_limited")
		reply.Response = replyBusy
		return reply, nil
	}

	history := a.sessions.tail(sessionID, a.cfg.HistoryMessages)

	callCtx, cancel := context.WithTimeout(ctx, a.cfg.RequestTimeout)
	defer cancel()

	start := time.Now()
	text, err := a.backend.Generate(callCtx, history, message)
	if err != nil {
		metrics.RecordChat("error")
		a.logger.Warn().Err(err).Str("session_id", sessionID).Dur("duration", time.Since(start)).Msg("Chat backend failed")
		reply.Response = friendlyError(err)
		return reply, nil
	}
	if text == "" {
		metrics.RecordChat("empty")
		reply.Response = replyEmpty
		return reply, nil
	}

	now := time.Now().UTC()
	a.sessions.append(sessionID,
		models.ChatMessage{Role: models.ChatRoleUser, Content: message, Timestamp: now},
		models.ChatMessage{Role: models.ChatRoleAssistant, Content: text, Timestamp: now},
	)
	metrics.RecordChat("ok")
	a.logger.Debug().Str("session_id", sessionID).Dur("duration", time.Since(start)).Int("history", len(history)).Msg("Chat answered")

	reply.Response = text
	return reply, nil
}

// History returns the retained messages of a session, oldest first.
func (a *Assistant) History(sessionID string) []models.ChatMessage {
	if sessionID == "" {
		sessionID = DefaultSessionID
	}
	msgs := a.sessions.tail(sessionID, a.cfg.SessionMessages)
	if msgs == nil {
		return []models.ChatMessage{}
	}
	return msgs
}

// Clear drops a session's history. Clearing an unknown session is not an
// error.
func (a *Assistant) Clear(sessionID string) string {
	if sessionID == "" {
		sessionID = DefaultSessionID
	}
	if a.sessions.clear(sessionID) {
		a.logger.Debug().Str("session_id", sessionID).Msg("Chat session cleared")
	}
	return sessionID
}

// Health reports unavailable when not configured and degraded while the
// breaker is not closed.
func (a *Assistant) Health() Health {
	h := Health{Configured: a.Configured(), Sessions: a.sessions.len()}
	if !h.Configured {
		h.Status = StatusUnavailable
		return h
	}
	h.Model = a.cfg.Model
	h.Breaker = a.backend.State()
	h.Status = StatusHealthy
	if h.Breaker != "closed" {
		h.Status = StatusDegraded
	}
	return h
}

// friendlyError maps backend failures to user-facing text.
func friendlyError(err error) string {
	if isRejected(err) {
		return replyEmpty
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return replyEmpty
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota"), strings.Contains(msg, "limit"):
		return replyBusy
	case strings.Contains(msg, "api key"), strings.Contains(msg, "api_key"):
		return replyAPIKey
	default:
		return replyGeneric
	}
}
