// @title           Client Projects API
// @version         1.0
// @description     Multi-tenant REST backend for managing clients and projects.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/rexxailabs/client-projects-api/docs"
	"github.com/rexxailabs/client-projects-api/internal/api"
	"github.com/rexxailabs/client-projects-api/internal/core/service"
	"github.com/rexxailabs/client-projects-api/internal/infrastructure/config"
	mongodb "github.com/rexxailabs/client-projects-api/internal/infrastructure/db/mongo"
	redisdb "github.com/rexxailabs/client-projects-api/internal/infrastructure/db/redis"
	"github.com/rexxailabs/client-projects-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Development(),
	})

	// The signing key is process-wide configuration; without it every
	// issued token would be forgeable. Refuse to start.
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	users := mongodb.NewUserRepository(db)
	clients := mongodb.NewClientRepository(db)
	projects := mongodb.NewProjectRepository(db)

	for name, idx := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{
		"users":    users,
		"clients":  clients,
		"projects": projects,
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	e := api.NewRouter(api.Deps{
		Users:       users,
		Clients:     clients,
		Projects:    projects,
		Throttle:    redisdb.NewLoginThrottle(rdb, 0, 0),
		Tokens:      service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		Mongo:       db,
		Redis:       rdb,
		Logger:      log,
		Development: cfg.Development(),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
