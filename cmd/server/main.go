package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/zosai/marketplace-bot/internal/api"
	"github.com/zosai/marketplace-bot/internal/bot"
	"github.com/zosai/marketplace-bot/internal/core/audit"
	"github.com/zosai/marketplace-bot/internal/core/ports"
	"github.com/zosai/marketplace-bot/internal/core/service"
	"github.com/zosai/marketplace-bot/internal/infrastructure/cache"
	"github.com/zosai/marketplace-bot/internal/infrastructure/config"
	"github.com/zosai/marketplace-bot/internal/infrastructure/db/mongo"
	"github.com/zosai/marketplace-bot/internal/infrastructure/queue"
	"github.com/zosai/marketplace-bot/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Config first: a missing SUPER_ADMIN_ID must stop startup before
	// anything else comes up.
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not initialised yet; stderr is all we have.
		os.Stderr.WriteString("fatal: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log.Info().Str("env", cfg.Env).Msg("starting marketplace bot backend")

	// --- Optional distributed cache ---
	var rdb *redis.Client
	var primary ports.KeyValueCache
	if cfg.CacheBackendURL != "" {
		rdb, err = cache.Connect(ctx, cfg.CacheBackendURL)
		if err != nil {
			// Degrade, don't die: sessions fall back to process memory.
			log.Warn().Err(err).Msg("cache backend unreachable, running memory-only")
		} else {
			primary = cache.NewRedisCache(rdb, log)
			defer rdb.Close()
		}
	} else {
		log.Info().Msg("no cache backend configured, running memory-only")
	}

	// --- Optional durable user profiles ---
	var mongoDB *mongodriver.Database
	var users ports.UserRepository
	if cfg.MongoURI != "" {
		conn, err := mongo.Open(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Warn().Err(err).Msg("mongo unreachable, user profiles disabled")
		} else {
			mongoDB = conn.DB
			users = mongo.NewUserRepository(conn.DB)
			defer conn.Close()
		}
	}

	// --- Core services ---
	auditor := audit.NewDispatcher(audit.LogSink{Log: log}, 0)
	defer auditor.Close()

	authorizer := service.NewSuperAdminAuthorizer(cfg.SuperAdminID, auditor, log)
	store := service.NewCachedSessionStore(primary, cache.NewMemoryCache(), cfg.SessionTTL(), log)

	botLimiter := service.NewSlidingWindowLimiter(cfg.RateLimitWindow(), cfg.RateLimitMax, "bot", log)
	botLimiter.Start(ctx)
	apiLimiter := service.NewSlidingWindowLimiter(cfg.APIRateLimitWindow(), cfg.APIRateLimitMax, "api", log)
	apiLimiter.Start(ctx)

	router := bot.NewRouter(authorizer, users, log)
	pipeline := service.NewEventPipeline(botLimiter, store, router, log)

	dispatcher := queue.NewDispatcher(cfg.QueueWorkers, pipeline, nil, log)
	dispatcher.Start(ctx)

	// --- HTTP surface ---
	e := api.NewRouter(api.Deps{
		Enqueuer:   dispatcher,
		Authorizer: authorizer,
		APILimiter: apiLimiter,
		Mongo:      mongoDB,
		Redis:      rdb,
		Log:        log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("http server listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}
