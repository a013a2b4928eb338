// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

type fakeBackend struct {
	mu       sync.Mutex
	reply    string
	err      error
	calls    int
	lastHist []models.ChatMessage
}

func (f *fakeBackend) Generate(_ context.Context, history []models.ChatMessage, message string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastHist = history
	if f.err != nil {
		return "", f.err
	}
	if f.reply != "" {
		return f.reply, nil
	}
	return "echo: " + message, nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.RequestsPerMinute = 6000
	cfg.Burst = 1000
	return cfg
}

func newAssistant(t *testing.T, cfg Config, backend Backend) *Assistant {
	t.Helper()
	a, err := New(cfg, backend, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

func TestNotConfigured(t *testing.T) {
	a := newAssistant(t, DefaultConfig(), nil)

	if a.Configured() {
		t.Fatal("Configured() = true")
	}
	if !strings.Contains(a.Greeting(), "Configuration Required") {
		t.Errorf("Greeting() = %q", a.Greeting())
	}
	if qr := a.QuickReplies(); qr == nil || len(qr) != 0 {
		t.Errorf("QuickReplies() = %v, want empty", qr)
	}
	reply, err := a.Chat(context.Background(), "", "hello")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if reply.Configured || !strings.Contains(reply.Response, "not configured") || reply.SessionID != DefaultSessionID {
		t.Errorf("Chat() = %+v", reply)
	}
	if h := a.Health(); h.Status != StatusUnavailable {
		t.Errorf("Health().Status = %q", h.Status)
	}
}

func TestValidateMessage(t *testing.T) {
	a := newAssistant(t, testConfig(), &fakeBackend{})

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"empty", "", "Message cannot be empty"},
		{"blank", "   \n", "Message cannot be empty"},
		{"too long", strings.Repeat("a", 1001), "Message too long (max 1000 characters)"},
		{"max length", strings.Repeat("a", 1000), ""},
		{"multibyte at max", strings.Repeat("अ", 1000), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.ValidateMessage(tt.message)
			if tt.want == "" {
				if err != nil {
					t.Errorf("ValidateMessage() error = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidMessage) || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ValidateMessage() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestChatKeepsBoundedHistory(t *testing.T) {
	backend := &fakeBackend{}
	a := newAssistant(t, testConfig(), backend)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		reply, err := a.Chat(ctx, "s1", "question")
		if err != nil {
			t.Fatalf("Chat() error = %v", err)
		}
		if reply.Response != "echo: question" {
			t.Fatalf("Response = %q", reply.Response)
		}
	}

	if got := len(a.History("s1")); got != 20 {
		t.Errorf("retained %d messages, want 20", got)
	}
	if got := len(backend.lastHist); got != 10 {
		t.Errorf("sent %d history messages, want 10", got)
	}
	if backend.lastHist[0].Role != models.ChatRoleUser {
		t.Errorf("history starts with role %q", backend.lastHist[0].Role)
	}

	// Other sessions are independent.
	if _, err := a.Chat(ctx, "s2", "hi"); err != nil {
		t.Fatal(err)
	}
	if len(backend.lastHist) != 0 {
		t.Errorf("new session sent %d history messages", len(backend.lastHist))
	}

	a.Clear("s1")
	if got := len(a.History("s1")); got != 0 {
		t.Errorf("History after Clear = %d messages", got)
	}
}

func TestSessionEviction(t *testing.T) {
	cfg := testConfig()
	cfg.MaxSessions = 2
	a := newAssistant(t, cfg, &fakeBackend{})
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := a.Chat(ctx, id, "hi"); err != nil {
			t.Fatal(err)
		}
	}
	if got := a.Health().Sessions; got != 2 {
		t.Errorf("Sessions = %d, want 2", got)
	}
	if len(a.History("a")) != 0 {
		t.Error("oldest session was not evicted")
	}
}

func TestFriendlyErrors(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.New("429 RESOURCE_EXHAUSTED: quota exceeded"), replyBusy},
		{errors.New("rate limit reached"), replyBusy},
		{errors.New("API key not valid"), replyAPIKey},
		{errors.New("connection reset"), replyGeneric},
		{context.DeadlineExceeded, replyEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := friendlyError(tt.err); got != tt.want {
				t.Errorf("friendlyError() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	cfg := testConfig()
	cfg.BreakerFailures = 3
	backend := &fakeBackend{err: errors.New("upstream unavailable")}
	a := newAssistant(t, cfg, backend)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		reply, err := a.Chat(ctx, "s", "hi")
		if err != nil {
			t.Fatalf("Chat() error = %v", err)
		}
		if reply.Response == "" {
			t.Fatal("empty response on backend failure")
		}
	}
	if backend.calls != 3 {
		t.Errorf("backend called %d times, want 3 before the breaker opened", backend.calls)
	}
	if h := a.Health(); h.Status != StatusDegraded || h.Breaker != "open" {
		t.Errorf("Health() = %+v", h)
	}
	if len(a.History("s")) != 0 {
		t.Error("failed exchanges were stored")
	}
}

func TestRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RequestsPerMinute = 1
	cfg.Burst = 1
	backend := &fakeBackend{}
	a := newAssistant(t, cfg, backend)

	if _, err := a.Chat(context.Background(), "s", "one"); err != nil {
		t.Fatal(err)
	}
	reply, err := a.Chat(context.Background(), "s", "two")
	if err != nil {
		t.Fatal(err)
	}
	if reply.Response != replyBusy {
		t.Errorf("Response = %q, want busy reply", reply.Response)
	}
	if backend.calls != 1 {
		t.Errorf("backend called %d times", backend.calls)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	cfg.HistoryMessages = 30
	if err := cfg.Validate(); err == nil {
		t.Error("history larger than session accepted")
	}
}
