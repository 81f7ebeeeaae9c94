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

	"github.com/quizdeck/quiz-api/internal/api"
	"github.com/quizdeck/quiz-api/internal/core/token"
	"github.com/quizdeck/quiz-api/internal/infrastructure/config"
	mongodb "github.com/quizdeck/quiz-api/internal/infrastructure/db/mongo"
	redisdb "github.com/quizdeck/quiz-api/internal/infrastructure/db/redis"
	"github.com/quizdeck/quiz-api/internal/infrastructure/queue"
	"github.com/quizdeck/quiz-api/pkg/logger"
)

func main() {
	envMissing := godotenv.Load() != nil

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Service: "quiz-api",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})
	if envMissing {
		log.Warn().Msg("no .env file loaded, using process environment")
	}

	signPEM, err := os.ReadFile(cfg.Auth.SigningKeyPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Auth.SigningKeyPath).Msg("cannot read signing key")
	}
	verifyPEM, err := os.ReadFile(cfg.Auth.VerifyKeyPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Auth.VerifyKeyPath).Msg("cannot read verification key")
	}
	tokens, err := token.NewServiceFromPEM(signPEM, verifyPEM, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token key material is malformed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("uri", cfg.Mongo.URI).Str("database", cfg.Mongo.Database).Msg("connecting to MongoDB")
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	log.Info().Str("addr", cfg.Redis.Addr).Msg("connecting to Redis")
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	dispatcher := queue.NewDispatcher(0, mongodb.NewAuditRepository(db), log)
	dispatcher.Start(ctx)

	e := api.NewRouter(cfg, db, rdb, tokens, dispatcher, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
