// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package chat

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/supriyamulik/cet-college-predictor/internal/metrics"
	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

// sessionStore keeps the most recently used sessions, each trimmed to the
// newest maxMessages messages.
type sessionStore struct {
	mu          sync.Mutex
	cache       *lru.Cache[string, []models.ChatMessage]
	maxMessages int
}

func newSessionStore(maxSessions, maxMessages int) (*sessionStore, error) {
	cache, err := lru.NewWithEvict(maxSessions, func(string, []models.ChatMessage) {
		metrics.ChatSessions.Dec()
	})
	if err != nil {
		return nil, err
	}
	return &sessionStore{cache: cache, maxMessages: maxMessages}, nil
}

// tail returns a copy of the newest n messages of a session.
func (s *sessionStore) tail(id string, n int) []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs, ok := s.cache.Get(id)
	if !ok || n <= 0 {
		return nil
	}
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	return append([]models.ChatMessage(nil), msgs...)
}

func (s *sessionStore) append(id string, add ...models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs, ok := s.cache.Get(id)
	if !ok {
		metrics.ChatSessions.Inc()
	}
	msgs = append(append([]models.ChatMessage(nil), msgs...), add...)
	if len(msgs) > s.maxMessages {
		msgs = msgs[len(msgs)-s.maxMessages:]
	}
	s.cache.Add(id, msgs)
}

// clear removes a session and reports whether it existed.
func (s *sessionStore) clear(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Remove(id)
}

func (s *sessionStore) len() int {
	return s.cache.Len()
}
