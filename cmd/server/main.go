package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/webstore/storefront-api/internal/api"
	"github.com/webstore/storefront-api/internal/core/service"
	"github.com/webstore/storefront-api/internal/infrastructure/config"
	mongostore "github.com/webstore/storefront-api/internal/infrastructure/db/mongo"
	redisstore "github.com/webstore/storefront-api/internal/infrastructure/db/redis"
	"github.com/webstore/storefront-api/internal/infrastructure/queue"
	"github.com/webstore/storefront-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Storefront API
// @version      1.0
// @description  Authentication and session service for the storefront.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	users := mongostore.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	activityRepo := mongostore.NewActivityRepository(db)
	activityService := service.NewActivityService(activityRepo, log)
	dispatcher := queue.NewDispatcher(0, activityService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(cfg, log, db, rdb, dispatcher)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
