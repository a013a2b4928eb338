// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Roles known to the policy.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

const minPasswordLength = 8

// ErrInvalidCredentials is returned for a wrong username or password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Account is one configured operator. Password may be plain text (hashed at
// startup) or an existing bcrypt hash.
type Account struct {
	Username string
	Password string
	Role     string
}

type account struct {
	username     string
	passwordHash []byte
	role         string
}

// Credentials verifies operator passwords.
type Credentials struct {
	accounts []account
	// dummyHash keeps unknown-user checks as slow as known-user checks.
	dummyHash []byte
}

// NewCredentials hashes plain passwords with cost (bcrypt.DefaultCost when 0).
// Accounts with an empty username are skipped.
func NewCredentials(accounts []Account, cost int) (*Credentials, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	c := &Credentials{}
	for _, a := range accounts {
		if a.Username == "" {
			continue
		}
		if a.Role != RoleAdmin && a.Role != RoleViewer {
			return nil, fmt.Errorf("account %q: unknown role %q", a.Username, a.Role)
		}
		hash, err := passwordHash(a.Password, cost)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", a.Username, err)
		}
		c.accounts = append(c.accounts, account{username: a.Username, passwordHash: hash, role: a.Role})
	}
	if len(c.accounts) == 0 {
		return nil, fmt.Errorf("at least one account is required")
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	c.dummyHash = dummy
	return c, nil
}

func passwordHash(password string, cost int) ([]byte, error) {
	if strings.HasPrefix(password, "$2a$") || strings.HasPrefix(password, "$2b$") || strings.HasPrefix(password, "$2y$") {
		if _, err := bcrypt.Cost([]byte(password)); err != nil {
			return nil, fmt.Errorf("invalid bcrypt hash: %w", err)
		}
		return []byte(password), nil
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// Verify returns the account's role when username and password match.
func (c *Credentials) Verify(username, password string) (string, error) {
	var match *account
	for i := range c.accounts {
		if subtle.ConstantTimeCompare([]byte(username), []byte(c.accounts[i].username)) == 1 {
			match = &c.accounts[i]
		}
	}
	if match == nil {
		_ = bcrypt.CompareHashAndPassword(c.dummyHash, []byte(password))
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(match.passwordHash, []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return match.role, nil
}
