// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/supriyamulik/cet-college-predictor/internal/api"
	"github.com/supriyamulik/cet-college-predictor/internal/auth"
	"github.com/supriyamulik/cet-college-predictor/internal/authz"
	"github.com/supriyamulik/cet-college-predictor/internal/chat"
	"github.com/supriyamulik/cet-college-predictor/internal/compare"
	"github.com/supriyamulik/cet-college-predictor/internal/config"
	"github.com/supriyamulik/cet-college-predictor/internal/dataset"
	"github.com/supriyamulik/cet-college-predictor/internal/directory"
	"github.com/supriyamulik/cet-college-predictor/internal/eligibility"
	"github.com/supriyamulik/cet-college-predictor/internal/gapranker"
	"github.com/supriyamulik/cet-college-predictor/internal/logging"
	"github.com/supriyamulik/cet-college-predictor/internal/normalize"
	"github.com/supriyamulik/cet-college-predictor/internal/optionform"
	"github.com/supriyamulik/cet-college-predictor/internal/predictor"
	"github.com/supriyamulik/cet-college-predictor/internal/recommend"
	"github.com/supriyamulik/cet-college-predictor/internal/resources"
	"github.com/supriyamulik/cet-college-predictor/internal/supervisor"
	"github.com/supriyamulik/cet-college-predictor/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(cfg.Logging.ToLogging())

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("cutoff_path", cfg.Dataset.CutoffPath).
		Bool("admin_enabled", cfg.Auth.Enabled).
		Msg("Starting CET college predictor")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Dataset: a failed first load is not fatal; the API answers 503 until a
	// refresh succeeds.
	store := dataset.NewStore(&dataset.DuckDBLoader{
		CutoffPath:    cfg.Dataset.CutoffPath,
		DirectoryPath: cfg.Dataset.DirectoryPath,
	})
	loadCtx, cancelLoad := context.WithTimeout(ctx, cfg.Dataset.LoadTimeout)
	if err := store.Refresh(loadCtx); err != nil {
		logging.Error().Err(err).Msg("Initial dataset load failed, serving 503 until a reload succeeds")
	}
	cancelLoad()

	model, err := predictor.LoadArtifact(cfg.Model.ArtifactPath)
	if err != nil {
		logging.Error().Err(err).Str("path", cfg.Model.ArtifactPath).Msg("Model artifact not loaded, predictions disabled")
		model = nil
	}
	pred := predictor.New(model, cfg.Prediction.Midpoint)

	maps := normalize.Default()
	ranker, err := gapranker.New(cfg.Prediction.Ranking)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid ranking configuration")
	}
	engine, err := recommend.NewEngine(&cfg.Prediction.Limits, store,
		eligibility.New(maps, cfg.Prediction.WomenOnlyKeywords), pred, ranker,
		logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	db, err := optionform.OpenDB(cfg.Storage.OptionForm())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open option form storage")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing option form storage")
		}
	}()
	forms := optionform.NewStore(db)

	vault, err := resources.Default()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load resource vault")
	}

	assistant, err := newAssistant(ctx, cfg.Chat)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create chat assistant")
	}

	var authService *auth.Service
	var enforcer *authz.Enforcer
	if cfg.Auth.Enabled {
		authService, err = auth.NewService(cfg.Auth, logging.Logger())
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize admin authentication")
		}
		enforcer, err = authz.NewEnforcer(cfg.Authz)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize authorization")
		}
		logging.Info().Msg("Admin endpoints enabled")
	}

	handler, err := api.NewHandler(api.Dependencies{
		Store:      store,
		Predictor:  pred,
		Engine:     engine,
		Comparison: compare.NewEngine(store, maps),
		Directory:  directory.NewService(store, forms, maps),
		Forms:      forms,
		Vault:      vault,
		Assistant:  assistant,
		Auth:       authService,
		Version:    version,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create API handler")
	}

	chiConfig := api.DefaultChiMiddlewareConfig()
	chiConfig.CORSAllowedOrigins = cfg.Server.CORSOrigins
	chiConfig.RateLimitRequests = cfg.Server.RateLimitRequests
	chiConfig.RateLimitWindow = cfg.Server.RateLimitWindow
	chiConfig.LoginRateLimit = cfg.Server.LoginRateLimit
	chiConfig.LoginRateWindow = cfg.Server.LoginRateWindow
	chiConfig.RequestTimeout = cfg.Server.RequestTimeout

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(handler, api.NewChiMiddleware(chiConfig), enforcer).SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	refresher := services.NewDatasetRefreshService(store, services.DatasetRefreshConfig{
		Interval:    cfg.Dataset.RefreshInterval,
		LoadTimeout: cfg.Dataset.LoadTimeout,
	}, logging.WithComponent("dataset-refresh"))
	tree.AddDataService(refresher)
	watchDataset(cfg.Dataset, refresher)

	addStorageGC(tree, forms, cfg.Storage)
	if authService != nil {
		lockout := authService.Lockout()
		tree.AddMaintenanceService(services.NewPeriodicService("lockout-cleanup", 0,
			func(context.Context) error {
				if n := lockout.Cleanup(); n > 0 {
					logging.Debug().Int("removed", n).Msg("Expired lockout entries removed")
				}
				return nil
			}, logging.WithComponent("lockout")))
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// newAssistant attaches the Gemini backend when an API key is configured.
//
//nolint:gocritic // chat.Config is passed by value like the other constructors
func newAssistant(ctx context.Context, cfg chat.Config) (*chat.Assistant, error) {
	logger := logging.Logger()
	if !cfg.Configured() {
		logging.Warn().Msg("GEMINI_API_KEY not set, chat assistant answers with fixed texts")
		return chat.New(cfg, nil, logger)
	}
	backend, err := chat.NewGeminiBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("model", cfg.Model).Msg("Chat assistant configured")
	return chat.New(cfg, backend, logger)
}

// watchDataset triggers a reload when the cutoff file changes. Globs are not
// watched.
func watchDataset(cfg config.DatasetConfig, refresher *services.DatasetRefreshService) {
	if !cfg.Watch {
		return
	}
	if strings.ContainsAny(cfg.CutoffPath, "*?[") {
		logging.Warn().Str("path", cfg.CutoffPath).Msg("Dataset watch ignored for glob paths")
		return
	}
	if _, err := os.Stat(cfg.CutoffPath); err != nil {
		logging.Warn().Err(err).Msg("Dataset watch disabled")
		return
	}
	if _, err := config.WatchConfigFile(cfg.CutoffPath, refresher.Trigger); err != nil {
		logging.Warn().Err(err).Str("path", cfg.CutoffPath).Msg("Dataset watch disabled")
		return
	}
	logging.Info().Str("path", cfg.CutoffPath).Msg("Watching cutoff file for changes")
}

// addStorageGC schedules value log collection for on-disk storage.
func addStorageGC(tree *supervisor.SupervisorTree, forms *optionform.Store, cfg config.StorageConfig) {
	if cfg.InMemory {
		return
	}
	tree.AddMaintenanceService(services.NewStorageGCService(forms.DB(), cfg.GCInterval, cfg.GCDiscardRatio,
		logging.WithComponent("storage-gc")))
}
