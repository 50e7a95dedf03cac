package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/app"
	"github.com/nekogravitycat/shareit-backend/internal/config"
	"github.com/nekogravitycat/shareit-backend/internal/db"
	"github.com/nekogravitycat/shareit-backend/internal/logging"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/ratelimit"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.New(cfg.Log, cfg.AppEnv)

	// Connect DB
	database, err := db.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to connect to db")
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate db")
	}

	limiter := initLimiter(ctx, cfg, logger)

	container := app.NewContainer(app.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		DB:           database,
		Logger:       logger,
		Limiter:      limiter,
	})

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Str("db_driver", cfg.DBDriver).Msg("server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited gracefully")
}

// initLimiter prefers Redis when configured and falls back to the in-memory limiter.
func initLimiter(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) ratelimit.Limiter {
	if cfg.RateLimit.Requests <= 0 {
		logger.Info().Msg("rate limiting disabled")
		return nil
	}

	if cfg.Redis.Addr != "" {
		client, err := ratelimit.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err == nil {
			logger.Info().Str("addr", cfg.Redis.Addr).Msg("redis rate limiter enabled")
			return ratelimit.NewRedis(client, cfg.RateLimit.Requests, cfg.RateLimit.Window)
		}
		logger.Warn().Err(err).Msg("redis unavailable, using in-memory rate limiter")
	}

	return ratelimit.NewMemory(cfg.RateLimit.Requests, cfg.RateLimit.Window)
}
