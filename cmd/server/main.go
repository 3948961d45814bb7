// @title        JWT Pizza Service API
// @version      1.1.0
// @description  Pizza-ordering backend with token-backed session authorization.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jwtpizza/pizza-service/internal/api"
	"github.com/jwtpizza/pizza-service/internal/infrastructure/db/mongo"
	"github.com/jwtpizza/pizza-service/internal/infrastructure/db/redis"
	"github.com/jwtpizza/pizza-service/internal/infrastructure/factory"
	"github.com/jwtpizza/pizza-service/internal/infrastructure/logship"
	"github.com/jwtpizza/pizza-service/internal/pkg/config"
	"github.com/jwtpizza/pizza-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	var out io.Writer = os.Stdout
	var shipper *logship.Shipper
	if cfg.LogShip.URL != "" {
		shipper = logship.New(logship.Config{
			URL:    cfg.LogShip.URL,
			APIKey: cfg.LogShip.APIKey,
			Source: cfg.LogShip.Source,
		})
		out = zerolog.MultiLevelWriter(os.Stdout, shipper)
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
		Output: out,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if shipper != nil {
		shipper.Start(ctx)
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	factoryClient := factory.NewClient(cfg.Factory.URL, cfg.Factory.APIKey, log)

	e := api.NewRouter(cfg, db, rdb, factoryClient, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
