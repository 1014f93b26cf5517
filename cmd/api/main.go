package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shopify-sitemap-service/internal/application"
	"shopify-sitemap-service/internal/config"
	"shopify-sitemap-service/internal/infrastructure/api"
	"shopify-sitemap-service/internal/infrastructure/repository"
	shopifyinfra "shopify-sitemap-service/internal/infrastructure/shopify"
	"shopify-sitemap-service/internal/infrastructure/sitemap"
	"shopify-sitemap-service/internal/ports"
	"shopify-sitemap-service/internal/scheduler"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	credentials, states := buildStores(ctx, cfg, logger)

	shopifyClient := shopifyinfra.NewClient(
		cfg.Shopify.APIKey,
		cfg.Shopify.APISecret,
		cfg.Shopify.Scopes,
		cfg.Host+"/auth/callback",
		cfg.Shopify.APIVersion,
		cfg.Shopify.Timeout,
		logger,
	)
	verifier := shopifyinfra.NewRequestVerifier(cfg.Shopify.APISecret)

	artifacts, err := sitemap.NewFileStore(cfg.PublicDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to prepare artifact directory")
	}

	sitemaps := application.NewSitemapService(credentials, shopifyClient, sitemap.NewRenderer(), artifacts, logger)
	auth := application.NewAuthService(credentials, states, shopifyClient, sitemaps, logger)

	sched := scheduler.New(cfg.Scheduler.Interval, credentials, sitemaps, logger)
	go sched.Run(ctx)

	handlers := api.NewHandlers(auth, sitemaps, credentials, verifier, cfg.Shopify.APIKey, cfg.PublicDir, logger)
	router := api.NewRouter(handlers)

	server := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	logger.Info().Str("port", cfg.Port).Str("backend", cfg.Store.Backend).Msg("Starting sitemap service")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

// buildStores selects the credential and state store backends. Memory is
// the default and loses everything on restart; Redis and Mongo survive.
func buildStores(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (ports.CredentialStore, ports.StateStore) {
	switch cfg.Store.Backend {
	case "redis":
		opt, err := redis.ParseURL(cfg.Store.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("Invalid REDIS_URL")
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		return repository.NewRedisCredentialStore(rdb), repository.NewRedisStateStore(rdb)

	case "mongo":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Store.MongoURI))
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
		}
		db := client.Database(cfg.Store.MongoDatabase)
		// OAuth states are short-lived; they stay in memory even with a
		// durable credential backend.
		return repository.NewMongoCredentialStore(db), repository.NewMemoryStateStore()

	case "memory":
		return repository.NewMemoryCredentialStore(), repository.NewMemoryStateStore()

	default:
		logger.Fatal().Str("backend", cfg.Store.Backend).Msg("Unknown STORE_BACKEND")
		return nil, nil
	}
}
