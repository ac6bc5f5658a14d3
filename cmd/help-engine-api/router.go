// Package main provides the API router setup.
package main

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/wakti-app/help-engine/cmd/help-engine-api/handlers"
	"github.com/wakti-app/help-engine/cmd/help-engine-api/middleware"
	"github.com/wakti-app/help-engine/internal/assistant"
	"github.com/wakti-app/help-engine/internal/cache"
	"github.com/wakti-app/help-engine/internal/config"
	"github.com/wakti-app/help-engine/internal/llm"
	"github.com/wakti-app/help-engine/internal/monitoring"
	"github.com/wakti-app/help-engine/internal/observability"
	"github.com/wakti-app/help-engine/internal/retrieval"
	"github.com/wakti-app/help-engine/internal/storage"
)

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger *observability.Logger, cfg *config.Config, db *sql.DB) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(chimiddleware.Timeout(cfg.Server.WriteTimeout))

	// Health check (unauthenticated)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"help-engine"}`))
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.Write([]byte(`{"status":"ready"}`))
	})

	// Cache backend
	var cacheClient cache.Client
	if cfg.Cache.Driver == "redis" {
		redisClient, err := cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, falling back to memory cache")
			cacheClient = cache.NewMemoryClient(cfg.Cache.MaxEntries)
		} else {
			cacheClient = redisClient
		}
	} else {
		cacheClient = cache.NewMemoryClient(cfg.Cache.MaxEntries)
	}

	// Repositories
	manualRepo := storage.NewManualRepository(db)
	usageRepo := storage.NewUsageRepository(db)

	// Retrieval
	searcher := retrieval.NewSearcher(logger, manualRepo, cacheClient, retrieval.SearcherConfig{
		TopK:         cfg.Retrieval.TopK,
		CacheResults: cfg.Retrieval.CacheResults,
		CacheTTL:     cfg.Retrieval.CacheTTL,
	})

	// Providers, in fallback order
	usageLogger := monitoring.NewUsageLogger(logger, usageRepo)
	chain := llm.NewChain(buildProviders(logger, cfg), usageLogger.Record)

	helpAssistant := assistant.New(logger, searcher, chain, assistant.Config{
		MaxHistory:  cfg.Retrieval.MaxHistory,
		Temperature: cfg.Providers.Primary.Temperature,
		MaxTokens:   cfg.Providers.Primary.MaxTokens,
	})

	chatHandler := handlers.NewChatHandler(logger, helpAssistant)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/help", func(r chi.Router) {
			r.Post("/chat", chatHandler.HandleChat)
		})
	})

	return r
}

// buildProviders constructs the completion provider chain from config.
// Providers with broken configuration are skipped with a warning so a
// missing fallback key does not prevent startup.
func buildProviders(logger *observability.Logger, cfg *config.Config) []llm.Provider {
	var providers []llm.Provider

	for _, pc := range []config.ProviderConfig{cfg.Providers.Primary, cfg.Providers.Fallback} {
		if pc.BaseURL == "" {
			continue
		}

		client, err := llm.NewClient(llm.ClientConfig{
			Name:    pc.Name,
			BaseURL: pc.BaseURL,
			Model:   pc.Model,
			APIKey:  os.Getenv(pc.APIKeyEnv),
			Timeout: pc.Timeout,
		})
		if err != nil {
			logger.Warn().Err(err).Str("provider", pc.Name).Msg("Skipping provider")
			continue
		}

		providers = append(providers, client)
	}

	return providers
}
