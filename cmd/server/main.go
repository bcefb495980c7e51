package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"rideauth/internal/app"
	"rideauth/internal/auth"
	"rideauth/internal/config"
	"rideauth/internal/handler"
	internalRedis "rideauth/internal/redis"
	"rideauth/internal/repository"
	"rideauth/internal/service"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	// Load configuration.
	cfg := config.Load()
	if cfg.Auth.UsesDefaultSecret() {
		log.Println("WARNING: JWT_SECRET is not set; using the development default")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before the store so we can instrument it).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	store, err := app.NewUserStore(ctx, cfg, nrApp)
	if err != nil {
		log.Fatalf("failed to open credential store: %v", err)
	}
	defer store.Close()

	// Redis only backs signup locks and idempotent replays; run without it
	// rather than refuse to start.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			log.Printf("redis unavailable, continuing without it: %v", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("Connected to Redis")
		}
	}

	// Wire dependencies.
	server := wireServer(store.Users, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}
	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(users repository.UserRepository, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// The lock store stays a nil interface when Redis is off.
	var locks internalRedis.LockStoreInterface
	if redisClient != nil {
		locks = internalRedis.NewLockStore(redisClient)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	// Initialize services.
	notificationService := service.NewNotificationService()
	authService := service.NewAuthService(users, hasher, tokens, locks, notificationService)

	// Initialize handlers.
	authHandler := handler.NewAuthHandler(authService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:    authHandler,
		TokenVerifier:  tokens,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
