package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pongarena/playerhub/internal/api"
	"github.com/pongarena/playerhub/internal/factory"
	"github.com/pongarena/playerhub/internal/services/identity"
	postgresstorage "github.com/pongarena/playerhub/internal/storage/postgres"
	redisstorage "github.com/pongarena/playerhub/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	tokenSecret := os.Getenv("TOKEN_SECRET")
	if tokenSecret == "" {
		logger.Error("TOKEN_SECRET is required")
		os.Exit(1)
	}

	// Build factory config from environment
	cfg := factory.Config{
		IdentityConfig: identity.Config{Secret: []byte(tokenSecret)},
		AvatarBaseURL:  os.Getenv("AVATAR_BASE_URL"),
		Logger:         logger,
		StorageType:    os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Configure Postgres if storage type is postgres
	if cfg.StorageType == factory.StorageTypePostgres {
		postgresURL := os.Getenv("POSTGRES_URL")
		if postgresURL == "" {
			logger.Error("POSTGRES_URL required when STORAGE_TYPE=postgres")
			os.Exit(1)
		}
		postgresCfg := postgresstorage.DefaultConfig()
		postgresCfg.URL = postgresURL
		cfg.PostgresConfig = &postgresCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:              logger,
		IdentityService:     app.IdentityService,
		ProfileService:      app.ProfileService,
		TwoFactorService:    app.TwoFactorService,
		AchievementsService: app.AchievementsService,
		RelationsService:    app.RelationsService,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("port", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
