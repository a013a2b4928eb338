// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

/*
Package main is the entry point for the CET college predictor server.

The server predicts closing ranks for the Maharashtra CET admission rounds,
filters colleges a student is eligible for, ranks them by how close the
student's rank is to each prediction, and serves comparison, directory,
option form, resource and chat endpoints under /api/v1.

# Application Architecture

Long-running components run under a Suture v4 supervisor tree:

	RootSupervisor ("cet-predictor")
	├── DataSupervisor ("data-layer")
	│   └── Dataset refresh (interval, file watch)
	├── MaintenanceSupervisor ("maintenance-layer")
	│   ├── Badger value log GC (on-disk storage only)
	│   └── Login lockout cleanup (admin enabled only)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional config.yaml and environment
 2. Dataset: cutoff table and college directory loaded through DuckDB
 3. Model: regression artifact; predictions answer 503 when it is missing
 4. Engines: eligibility filter, gap ranker, recommendation and comparison
 5. Storage: BadgerDB for option forms
 6. Chat: Gemini backend when GEMINI_API_KEY is set
 7. Admin: JWT login and Casbin authorization when ADMIN_ENABLED=true
 8. HTTP: Chi router with CORS, rate limits and Prometheus metrics

A failed initial dataset load is logged and the server keeps running; a later
refresh swaps the data in.

# Configuration

Common environment variables:

	HTTP_PORT        listen port (default 5000)
	CUTOFF_PATH      cutoff CSV, Parquet or glob (default data/cutoffs.csv)
	DIRECTORY_PATH   college directory CSV
	MODEL_PATH       model artifact JSON
	DATASET_WATCH    reload when the cutoff file changes
	BADGER_PATH      option form storage directory
	GEMINI_API_KEY   enables the chat assistant
	ADMIN_ENABLED    mounts /api/v1/admin; requires JWT_SECRET and ADMIN_PASSWORD
	LOG_LEVEL        trace, debug, info, warn, error

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains within
server.shutdown_timeout and the option form database is closed last.

# Example Usage

	export CUTOFF_PATH=data/cutoffs/*.csv
	export MODEL_PATH=models/cutoff_model.json
	./cet-predictor

Build with a version:

	go build -ldflags "-X main.version=1.0.0" ./cmd/server
*/
package main
