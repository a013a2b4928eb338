// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package auth

import (
	"sync"
	"time"
)

// LockoutConfig holds configuration for the login lockout.
type LockoutConfig struct {
	// MaxAttempts is the number of failed attempts before lockout.
	MaxAttempts int `koanf:"max_attempts"`

	// LockoutDuration is the base lockout period.
	LockoutDuration time.Duration `koanf:"lockout_duration"`

	// MaxLockoutDuration caps the doubled lockout period.
	MaxLockoutDuration time.Duration `koanf:"max_lockout_duration"`
}

// DefaultLockoutConfig returns sensible defaults.
func DefaultLockoutConfig() LockoutConfig {
	return LockoutConfig{
		MaxAttempts:        5,
		LockoutDuration:    15 * time.Minute,
		MaxLockoutDuration: 24 * time.Hour,
	}
}

type lockoutEntry struct {
	failedAttempts int
	lockoutCount   int // for exponential backoff
	lockedUntil    time.Time
	lastAttempt    time.Time
}

// Lockout tracks failed logins per subject (username or IP) in memory.
type Lockout struct {
	cfg     LockoutConfig
	mu      sync.Mutex
	entries map[string]*lockoutEntry
	now     func() time.Time
}

// NewLockout creates an empty lockout table.
func NewLockout(cfg LockoutConfig) *Lockout {
	return &Lockout{cfg: cfg, entries: make(map[string]*lockoutEntry), now: time.Now}
}

// Locked reports whether any subject is locked and the longest remaining time.
func (l *Lockout) Locked(subjects ...string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	var remaining time.Duration
	for _, s := range subjects {
		if e, ok := l.entries[s]; ok && now.Before(e.lockedUntil) {
			if d := e.lockedUntil.Sub(now); d > remaining {
				remaining = d
			}
		}
	}
	return remaining > 0, remaining
}

// Fail records a failed attempt for each subject. It reports whether any
// subject became locked.
func (l *Lockout) Fail(subjects ...string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	locked := false
	for _, s := range subjects {
		if s == "" {
			continue
		}
		e, ok := l.entries[s]
		if !ok {
			e = &lockoutEntry{}
			l.entries[s] = e
		}
		e.failedAttempts++
		e.lastAttempt = now
		if e.failedAttempts >= l.cfg.MaxAttempts {
			e.lockedUntil = now.Add(l.duration(e.lockoutCount))
			e.lockoutCount++
			e.failedAttempts = 0
			locked = true
		}
	}
	return locked
}

// Succeed clears the failure count of each subject. Backoff history is kept
// until Cleanup drops the entry.
func (l *Lockout) Succeed(subjects ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range subjects {
		if e, ok := l.entries[s]; ok {
			e.failedAttempts = 0
		}
	}
}

// Cleanup drops entries idle for longer than the maximum lockout and returns
// how many were removed.
func (l *Lockout) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	threshold := l.now().Add(-l.cfg.MaxLockoutDuration)
	removed := 0
	for s, e := range l.entries {
		if e.lastAttempt.Before(threshold) && !l.now().Before(e.lockedUntil) {
			delete(l.entries, s)
			removed++
		}
	}
	return removed
}

func (l *Lockout) duration(lockoutCount int) time.Duration {
	d := l.cfg.LockoutDuration
	for i := 0; i < lockoutCount; i++ {
		d *= 2
		if d >= l.cfg.MaxLockoutDuration {
			return l.cfg.MaxLockoutDuration
		}
	}
	return d
}
