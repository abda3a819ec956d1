package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boddenberg/precifica-bfa-go/internal/config"
	"github.com/boddenberg/precifica-bfa-go/internal/handler"
	"github.com/boddenberg/precifica-bfa-go/internal/infra/observability"
	"github.com/boddenberg/precifica-bfa-go/internal/infra/resilience"
	"github.com/boddenberg/precifica-bfa-go/internal/infra/sqlite"
	"github.com/boddenberg/precifica-bfa-go/internal/infra/supabase"
	"github.com/boddenberg/precifica-bfa-go/internal/port"
	"github.com/boddenberg/precifica-bfa-go/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Bool("use_supabase", cfg.UseSupabase),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Int("max_concurrency", cfg.MaxConcurrency),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(context.Background(), "precifica-bfa", cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	jwtSecret, err := cfg.TokenSecret()
	if err != nil {
		logger.Fatal("invalid auth configuration", zap.Error(err))
	}

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Store ---
	var (
		store     port.CatalogStore
		pinger    handler.Pinger
		storeName string
	)

	if cfg.SupabaseEnabled() {
		logger.Info("using Supabase as data backend",
			zap.String("supabase_url", cfg.SupabaseURL),
		)
		resilienceCfg := resilience.Config{
			MaxRetries:     cfg.MaxRetries,
			InitialBackoff: cfg.InitialBackoff,
			MaxConcurrency: cfg.MaxConcurrency,
		}
		cb := resilience.NewCircuitBreaker("supabase", logger)
		httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

		supabaseClient := supabase.NewClient(
			httpClient,
			cfg.SupabaseURL,
			cfg.SupabaseAnonKey,
			cfg.SupabaseServiceKey,
			cb,
			resilienceCfg,
			logger,
		)
		store, pinger, storeName = supabaseClient, supabaseClient, "supabase"
	} else {
		if cfg.UseSupabase {
			logger.Warn("Supabase not configured, falling back to local SQLite store")
		}
		logger.Info("using SQLite as data backend", zap.String("db_path", cfg.DBPath))

		database, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			logger.Fatal("failed to open sqlite database", zap.Error(err))
		}
		defer database.Close()

		if err := sqlite.Migrate(database, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
		sqliteStore := sqlite.NewStore(database, logger)
		store, pinger, storeName = sqliteStore, sqliteStore, "sqlite"
	}

	// --- Services ---
	catalogSvc := service.NewCatalogService(store, metrics, logger)
	pricingSvc := service.NewPricingService(store, metrics, logger)
	tokens := service.NewTokenValidator(jwtSecret)

	// --- Router ---
	router := handler.NewRouter(handler.Deps{
		Catalog:   catalogSvc,
		Pricing:   pricingSvc,
		Tokens:    tokens,
		Store:     pinger,
		StoreName: storeName,
		Metrics:   metrics,
		Logger:    logger,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port), zap.String("store", storeName))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
