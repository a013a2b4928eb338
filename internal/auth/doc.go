// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

// Package auth authenticates administrators of the prediction service.
//
// Operators log in with a configured username and password (bcrypt-verified)
// and receive an HS256 JWT. Admin routes require the token in the
// Authorization header ("Bearer <token>") or the "token" cookie. Repeated
// failed logins lock the username and the client IP for a growing period.
//
// Authorization decisions (which role may do what) live in package authz.
package auth
