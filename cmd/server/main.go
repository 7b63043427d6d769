package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/statuspulse/monitoring-system/internal/api"
	"github.com/statuspulse/monitoring-system/internal/infrastructure/config"
	mongodb "github.com/statuspulse/monitoring-system/internal/infrastructure/db/mongo"
	redisdb "github.com/statuspulse/monitoring-system/internal/infrastructure/db/redis"
	"github.com/statuspulse/monitoring-system/pkg/logger"
)

// @title        Monitoring System Account API
// @version      1.0
// @description  Account management endpoints for the monitoring server.
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	lockWindow, err := time.ParseDuration(cfg.Login.LockWindow)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Login.LockWindow).Msg("invalid login lock window")
	}

	e := api.NewRouter(db, rdb, log, api.Options{
		JWTSecret:        cfg.JWTSecret,
		TokenTTL:         24 * time.Hour,
		LoginMaxAttempts: cfg.Login.MaxAttempts,
		LoginLockWindow:  lockWindow,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
