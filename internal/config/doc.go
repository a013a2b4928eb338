// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

/*
Package config loads and validates the service configuration.

# Configuration Sources

Configuration is layered with koanf, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: CONFIG_PATH, or the first of config.yaml, config.yml,
    /etc/cet-predictor/config.yaml, /etc/cet-predictor/config.yml
 3. Environment variables listed in envMappings

Unlisted environment variables are ignored.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT, ENVIRONMENT
  - CORS_ORIGINS: comma-separated
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, LOGIN_RATE_LIMIT

Dataset and model:
  - CUTOFF_PATH: CSV file, glob of CSVs, Parquet or XLSX
  - DIRECTORY_PATH: college directory CSV
  - DATASET_REFRESH_INTERVAL, DATASET_WATCH
  - MODEL_PATH: JSON model artifact

Prediction:
  - PREDICTION_DEFAULT_LIMIT, PREDICTION_MAX_LIMIT, PREDICTION_MAX_BRANCHES
  - PREDICTION_MIDPOINT, WOMEN_ONLY_KEYWORDS

Storage:
  - BADGER_PATH, BADGER_IN_MEMORY, BADGER_GC_INTERVAL

Chat:
  - GEMINI_API_KEY, GEMINI_MODEL, CHAT_MAX_SESSIONS, CHAT_REQUESTS_PER_MINUTE

Admin access:
  - ADMIN_ENABLED, JWT_SECRET, TOKEN_TIMEOUT
  - ADMIN_USERNAME, ADMIN_PASSWORD, VIEWER_USERNAME, VIEWER_PASSWORD
  - CASBIN_MODEL_PATH, CASBIN_POLICY_PATH

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Passwords may be given as bcrypt hashes.
*/
package config
