// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

// Package optionform persists applicants' ordered college preference lists
// in BadgerDB and exports them as CSV.
package optionform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/supriyamulik/cet-college-predictor/internal/metrics"
	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

const (
	keyPrefix = "optionform:"

	// MaxEntries caps one option form.
	MaxEntries = 300

	maxUserIDLength = 128
)

var (
	// ErrNotFound is returned when deleting a form that does not exist.
	ErrNotFound = errors.New("option form not found")

	// ErrInvalidUserID is returned for empty or malformed user IDs.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrTooManyEntries is returned when a form would exceed MaxEntries.
	ErrTooManyEntries = errors.New("option form is full")
)

// Config selects the Badger location.
type Config struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
}

// OpenDB opens the Badger database described by cfg.
func OpenDB(cfg Config) (*badger.DB, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for option forms: %w", err)
	}
	return db, nil
}

// Store is a Badger-backed option form store. Each form is one JSON value
// under optionform:<user_id>.
type Store struct {
	db  *badger.DB
	now func() time.Time
}

// NewStore wraps an open database. The caller owns db.
func NewStore(db *badger.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// DB exposes the database for maintenance (value-log GC).
func (s *Store) DB() *badger.DB {
	return s.db
}

func key(userID string) []byte {
	return []byte(keyPrefix + userID)
}

// ValidateUserID checks a user ID before it is used as a key.
func ValidateUserID(userID string) error {
	if userID == "" || len(userID) > maxUserIDLength || strings.TrimSpace(userID) != userID {
		return fmt.Errorf("%w: %q", ErrInvalidUserID, userID)
	}
	if strings.ContainsAny(userID, ":/\\\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidUserID, userID)
	}
	return nil
}

// Save replaces the user's form.
func (s *Store) Save(ctx context.Context, userID string, entries []models.OptionFormEntry) (*models.OptionForm, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(entries) > MaxEntries {
		return nil, fmt.Errorf("%w: %d entries (max %d)", ErrTooManyEntries, len(entries), MaxEntries)
	}

	form := s.newForm(userID, entries)
	err := s.db.Update(func(txn *badger.Txn) error {
		return put(txn, form)
	})
	metrics.RecordOptionForm("save", err)
	if err != nil {
		return nil, err
	}
	return form, nil
}

// Load returns the user's form; an unknown user gets an empty form.
func (s *Store) Load(ctx context.Context, userID string) (*models.OptionForm, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var form *models.OptionForm
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		form, err = get(txn, userID)
		return err
	})
	metrics.RecordOptionForm("load", err)
	if err != nil {
		return nil, err
	}
	if form == nil {
		form = &models.OptionForm{UserID: userID, Colleges: []models.OptionFormEntry{}}
	}
	return form, nil
}

// Append adds one entry at the end of the user's form, creating the form if
// needed.
func (s *Store) Append(ctx context.Context, userID string, entry models.OptionFormEntry) (*models.OptionForm, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if entry.AddedAt.IsZero() {
		entry.AddedAt = s.now()
	}

	var form *models.OptionForm
	err := s.db.Update(func(txn *badger.Txn) error {
		current, err := get(txn, userID)
		if err != nil {
			return err
		}
		var entries []models.OptionFormEntry
		if current != nil {
			entries = current.Colleges
		}
		if len(entries) >= MaxEntries {
			return fmt.Errorf("%w: max %d entries", ErrTooManyEntries, MaxEntries)
		}
		form = s.newForm(userID, append(entries, entry))
		return put(txn, form)
	})
	metrics.RecordOptionForm("append", err)
	if err != nil {
		return nil, err
	}
	return form, nil
}

// Delete removes the user's form.
func (s *Store) Delete(ctx context.Context, userID string) error {
	if err := ValidateUserID(userID); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key(userID)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get option form: %w", err)
		}
		return txn.Delete(key(userID))
	})
	metrics.RecordOptionForm("delete", err)
	return err
}

func (s *Store) newForm(userID string, entries []models.OptionFormEntry) *models.OptionForm {
	if entries == nil {
		entries = []models.OptionFormEntry{}
	}
	return &models.OptionForm{
		UserID:        userID,
		Colleges:      entries,
		UpdatedAt:     s.now(),
		TotalColleges: len(entries),
	}
}

func put(txn *badger.Txn, form *models.OptionForm) error {
	data, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("marshal option form: %w", err)
	}
	if err := txn.Set(key(form.UserID), data); err != nil {
		return fmt.Errorf("set option form: %w", err)
	}
	return nil
}

// get returns nil, nil when the key is absent.
func get(txn *badger.Txn, userID string) (*models.OptionForm, error) {
	item, err := txn.Get(key(userID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get option form: %w", err)
	}
	var form models.OptionForm
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &form)
	}); err != nil {
		return nil, fmt.Errorf("decode option form: %w", err)
	}
	return &form, nil
}
