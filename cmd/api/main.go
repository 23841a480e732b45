package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rodnnnney/consensus25/internal/api"
	"github.com/rodnnnney/consensus25/internal/infrastructure/chain"
	"github.com/rodnnnney/consensus25/internal/infrastructure/config"
	"github.com/rodnnnney/consensus25/internal/infrastructure/db/postgres"
	redisdb "github.com/rodnnnney/consensus25/internal/infrastructure/db/redis"
	"github.com/rodnnnney/consensus25/internal/infrastructure/storage"
	"github.com/rodnnnney/consensus25/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "marketplace-api",
	})

	// --- Postgres ---
	db, err := postgres.Connect(postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect")
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("postgres migrate")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	defer rdb.Close()

	// --- External collaborators ---
	chainClient, err := chain.NewClient(chain.Config{
		Network:     cfg.Chain.Network,
		NodeURL:     cfg.Chain.NodeURL,
		IndexerURL:  cfg.Chain.IndexerURL,
		USDCAddress: cfg.Chain.USDCAddress,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("chain client")
	}

	blobs := storage.NewS3Store(storage.Config{
		Endpoint:      cfg.Storage.Endpoint,
		Region:        cfg.Storage.Region,
		Bucket:        cfg.Storage.Bucket,
		KeyID:         cfg.Storage.KeyID,
		Secret:        cfg.Storage.Secret,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	}, log)

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		DB:               db,
		Redis:            rdb,
		Chain:            chainClient,
		Blobs:            blobs,
		JWTSecret:        cfg.JWTSecret,
		OAuthClientID:    cfg.OAuth.ClientID,
		OAuthRedirectURI: cfg.OAuth.RedirectURI,
	}, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server stopped")
}
