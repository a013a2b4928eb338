// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ErrLocked is returned while a username or IP is locked out.
var ErrLocked = errors.New("too many failed login attempts")

// Config is the admin access configuration.
type Config struct {
	// Enabled turns the admin surface on. With it off, admin routes are not
	// mounted.
	Enabled bool `koanf:"enabled"`

	JWTSecret    string        `koanf:"jwt_secret"`
	TokenTimeout time.Duration `koanf:"token_timeout"`
	BcryptCost   int           `koanf:"bcrypt_cost"`

	AdminUsername  string `koanf:"admin_username"`
	AdminPassword  string `koanf:"admin_password"`
	ViewerUsername string `koanf:"viewer_username"`
	ViewerPassword string `koanf:"viewer_password"`

	Lockout LockoutConfig `koanf:"lockout"`
}

// Accounts lists the configured operators.
func (c *Config) Accounts() []Account {
	return []Account{
		{Username: c.AdminUsername, Password: c.AdminPassword, Role: RoleAdmin},
		{Username: c.ViewerUsername, Password: c.ViewerPassword, Role: RoleViewer},
	}
}

// LockedError carries the remaining lockout time.
type LockedError struct {
	RetryAfter time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("%v: retry after %s", ErrLocked, e.RetryAfter.Round(time.Second))
}

func (e *LockedError) Unwrap() error { return ErrLocked }

// Token is a successful login.
type Token struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service logs operators in.
type Service struct {
	jwt     *JWTManager
	creds   *Credentials
	lockout *Lockout
	logger  zerolog.Logger
}

// NewService builds the login service from cfg.
func NewService(cfg Config, logger zerolog.Logger) (*Service, error) {
	jwtManager, err := NewJWTManager(cfg.JWTSecret, cfg.TokenTimeout)
	if err != nil {
		return nil, err
	}
	creds, err := NewCredentials(cfg.Accounts(), cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	return &Service{
		jwt:     jwtManager,
		creds:   creds,
		lockout: NewLockout(cfg.Lockout),
		logger:  logger.With().Str("component", "auth").Logger(),
	}, nil
}

// JWT exposes the token manager for middleware.
func (s *Service) JWT() *JWTManager {
	return s.jwt
}

// Lockout exposes the lockout table for periodic cleanup.
func (s *Service) Lockout() *Lockout {
	return s.lockout
}

// Login checks credentials and issues a token. The username and the client
// IP are throttled independently.
func (s *Service) Login(username, password, clientIP string) (*Token, error) {
	ipKey := "ip:" + clientIP
	userKey := "user:" + username

	if locked, remaining := s.lockout.Locked(userKey, ipKey); locked {
		s.logger.Warn().Str("username", username).Str("ip", clientIP).Dur("retry_after", remaining).Msg("Login rejected: locked out")
		return nil, &LockedError{RetryAfter: remaining}
	}

	role, err := s.creds.Verify(username, password)
	if err != nil {
		if s.lockout.Fail(userKey, ipKey) {
			s.logger.Warn().Str("username", username).Str("ip", clientIP).Msg("Login locked out after repeated failures")
		}
		return nil, err
	}
	s.lockout.Succeed(userKey, ipKey)

	token, expires, err := s.jwt.GenerateToken(username, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("username", username).Str("role", role).Msg("Admin login")
	return &Token{Token: token, Username: username, Role: role, ExpiresAt: expires}, nil
}
