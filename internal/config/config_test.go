// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// setupTestEnv clears the environment and applies envVars for the duration of the test.
func setupTestEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	saved := os.Environ()
	os.Clearenv()
	t.Cleanup(func() {
		os.Clearenv()
		for _, kv := range saved {
			if k, v, ok := strings.Cut(kv, "="); ok {
				os.Setenv(k, v)
			}
		}
	})
	for k, v := range envVars {
		os.Setenv(k, v)
	}
	// Keep findConfigFile away from any config.yaml next to the test binary.
	t.Chdir(t.TempDir())
}

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func assertError(t *testing.T, err error, contains string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", contains)
	}
	if !strings.Contains(err.Error(), contains) {
		t.Fatalf("expected error containing %q, got %v", contains, err)
	}
}

func assertConfigNotNil(t *testing.T, cfg *Config) {
	t.Helper()
	if cfg == nil {
		t.Fatal("expected config, got nil")
	}
}

func assertIntEqual(t *testing.T, name string, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %d, want %d", name, got, want)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setupTestEnv(t, nil)

	cfg, err := Load()
	assertNoError(t, err)
	assertConfigNotNil(t, cfg)

	assertIntEqual(t, "server.port", cfg.Server.Port, 5000)
	assertIntEqual(t, "prediction.limits.default_limit", cfg.Prediction.Limits.DefaultLimit, 100)
	if cfg.Dataset.CutoffPath != "data/cutoffs.csv" {
		t.Errorf("dataset.cutoff_path = %q", cfg.Dataset.CutoffPath)
	}
	if cfg.Chat.Configured() {
		t.Error("chat should not be configured without an API key")
	}
	if cfg.Auth.Enabled {
		t.Error("admin access should be disabled by default")
	}
	if cfg.Storage.GCInterval != 10*time.Minute {
		t.Errorf("storage.gc_interval = %v", cfg.Storage.GCInterval)
	}
	if len(cfg.Prediction.WomenOnlyKeywords) == 0 {
		t.Error("women-only keywords should default to the built-in list")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	setupTestEnv(t, map[string]string{
		"HTTP_PORT":                "8080",
		"CUTOFF_PATH":              "/data/cap/*.csv",
		"DATASET_REFRESH_INTERVAL": "15m",
		"CORS_ORIGINS":             "https://a.example, https://b.example ,",
		"GEMINI_API_KEY":           "test-key",
		"BADGER_IN_MEMORY":         "true",
		"LOG_LEVEL":                "debug",
		"UNRELATED_VARIABLE":       "ignored",
	})

	cfg, err := Load()
	assertNoError(t, err)

	assertIntEqual(t, "server.port", cfg.Server.Port, 8080)
	if cfg.Dataset.CutoffPath != "/data/cap/*.csv" {
		t.Errorf("dataset.cutoff_path = %q", cfg.Dataset.CutoffPath)
	}
	if cfg.Dataset.RefreshInterval != 15*time.Minute {
		t.Errorf("dataset.refresh_interval = %v", cfg.Dataset.RefreshInterval)
	}
	if got := cfg.Server.CORSOrigins; len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("server.cors_origins = %v", got)
	}
	if !cfg.Chat.Configured() {
		t.Error("chat should be configured when GEMINI_API_KEY is set")
	}
	if !cfg.Storage.OptionForm().InMemory {
		t.Error("storage should be in-memory")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q", cfg.Logging.Level)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	setupTestEnv(t, nil)

	path := filepath.Join(t.TempDir(), "predictor.yaml")
	content := `
server:
  port: 9090
prediction:
  limits:
    default_limit: 25
  women_only_keywords: [mahila, girls]
logging:
  format: console
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	os.Setenv(ConfigPathEnvVar, path)
	os.Setenv("HTTP_PORT", "7070")

	cfg, err := Load()
	assertNoError(t, err)

	// Environment wins over the file.
	assertIntEqual(t, "server.port", cfg.Server.Port, 7070)
	assertIntEqual(t, "prediction.limits.default_limit", cfg.Prediction.Limits.DefaultLimit, 25)
	if got := cfg.Prediction.WomenOnlyKeywords; len(got) != 2 || got[0] != "mahila" {
		t.Errorf("women_only_keywords = %v", got)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("logging.format = %q", cfg.Logging.Format)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		contains string
	}{
		{"port out of range", map[string]string{"HTTP_PORT": "70000"}, "HTTP_PORT"},
		{"empty cutoff path", map[string]string{"CUTOFF_PATH": " "}, "CUTOFF_PATH"},
		{"bad midpoint", map[string]string{"PREDICTION_MIDPOINT": "150"}, "PREDICTION_MIDPOINT"},
		{"limit above max", map[string]string{"PREDICTION_DEFAULT_LIMIT": "500", "PREDICTION_MAX_LIMIT": "100"}, "prediction limits"},
		{"short jwt secret", map[string]string{"ADMIN_ENABLED": "true", "JWT_SECRET": "short", "ADMIN_PASSWORD": "password123"}, "JWT_SECRET"},
		{"missing admin password", map[string]string{"ADMIN_ENABLED": "true", "JWT_SECRET": strings.Repeat("s", 32)}, "ADMIN_PASSWORD"},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}, "LOG_LEVEL"},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}, "LOG_FORMAT"},
		{"empty badger path", map[string]string{"BADGER_PATH": " "}, "BADGER_PATH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestEnv(t, tt.env)
			_, err := Load()
			assertError(t, err, tt.contains)
		})
	}
}

func TestLoad_AdminEnabled(t *testing.T) {
	setupTestEnv(t, map[string]string{
		"ADMIN_ENABLED":  "true",
		"JWT_SECRET":     strings.Repeat("k", 40),
		"ADMIN_USERNAME": "registrar",
		"ADMIN_PASSWORD": "correct-horse",
		"TOKEN_TIMEOUT":  "1h",
	})

	cfg, err := Load()
	assertNoError(t, err)
	if !cfg.Auth.Enabled || cfg.Auth.AdminUsername != "registrar" {
		t.Errorf("auth = %+v", cfg.Auth)
	}
	if cfg.Auth.TokenTimeout != time.Hour {
		t.Errorf("auth.token_timeout = %v", cfg.Auth.TokenTimeout)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"MODEL_PATH", "model.artifact_path"},
		{"GEMINI_API_KEY", "chat.api_key"},
		{"CASBIN_POLICY_PATH", "authz.policy_path"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := envTransformFunc(tt.key); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestLoggingConfig_ToLogging(t *testing.T) {
	l := LoggingConfig{Level: "warn", Format: "console", Caller: true}.ToLogging()
	if l.Level != "warn" || l.Format != "console" || !l.Caller || !l.Timestamp || l.Output == nil {
		t.Errorf("ToLogging() = %+v", l)
	}
}
