package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scamtrap-lab/internal/api"
	"scamtrap-lab/internal/api/handlers"
	"scamtrap-lab/internal/config"
	"scamtrap-lab/internal/domain/services"
	"scamtrap-lab/internal/domain/services/ai"
	"scamtrap-lab/internal/infrastructure/cache"
	"scamtrap-lab/internal/infrastructure/database"
	"scamtrap-lab/internal/infrastructure/database/repository"
	"scamtrap-lab/internal/keepalive"
	"scamtrap-lab/internal/trap"
	"scamtrap-lab/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting scam trap service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize infrastructure. The service degrades rather than
	// dies when a backend is missing: without Postgres intel is not
	// persisted, without Redis the trap slot lives in memory.
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to PostgreSQL, continuing without persistence")
		db = nil
	}
	defer func() {
		if db != nil {
			db.Close()
		}
	}()

	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without cache")
			redisCache = nil
		}
	}
	defer func() {
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// Initialize repositories
	var intelRepo repository.IntelRepository
	if db != nil {
		repo := repository.NewIntelRepository(db)
		schemaCtx, schemaCancel := context.WithTimeout(ctx, 15*time.Second)
		if err := repo.EnsureSchema(schemaCtx); err != nil {
			log.Error().Err(err).Msg("failed to ensure intel schema")
		} else {
			log.Info().Msg("intel schema ready")
		}
		schemaCancel()
		intelRepo = repo
	}

	// Trap store: Redis-backed when available, in-memory otherwise
	var trapStore trap.Store
	if redisCache != nil {
		trapStore = trap.NewRedisStore(redisCache)
	} else {
		trapStore = trap.NewMemoryStore()
	}

	// Initialize services
	extractor := services.NewExtractor()
	aggregator := services.NewAggregator(extractor)
	classifier := services.NewClassifier(cfg.Classifier)
	assembler := services.NewAssembler()
	llmClient := ai.NewGroqClient(cfg.LLM, log)
	composer := ai.NewComposer(llmClient, cfg.LLM, log)

	// Initialize handlers
	h := handlers.NewHandlers(handlers.Dependencies{
		Aggregator: aggregator,
		Classifier: classifier,
		Composer:   composer,
		Assembler:  assembler,
		TrapStore:  trapStore,
		IntelRepo:  intelRepo,
		DB:         db,
		Cache:      redisCache,
		Logger:     log,
	})

	router := api.NewRouter(cfg, h, redisCache, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	if cfg.KeepAlive.Enabled {
		go keepalive.New(cfg.KeepAlive, log).Run(ctx)
	}

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}
