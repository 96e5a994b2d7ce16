package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/esgview/admin-gateway/internal/api"
	"github.com/esgview/admin-gateway/internal/api/handler"
	"github.com/esgview/admin-gateway/internal/core/ports"
	"github.com/esgview/admin-gateway/internal/core/service"
	"github.com/esgview/admin-gateway/internal/infrastructure/config"
	"github.com/esgview/admin-gateway/internal/infrastructure/queue"
	memorystore "github.com/esgview/admin-gateway/internal/infrastructure/store/memory"
	mongostore "github.com/esgview/admin-gateway/internal/infrastructure/store/mongo"
	redisstore "github.com/esgview/admin-gateway/internal/infrastructure/store/redis"
	"github.com/esgview/admin-gateway/internal/infrastructure/upstream"
	"github.com/esgview/admin-gateway/pkg/logger"
)

const (
	panelWorkers    = 4
	shutdownTimeout = 10 * time.Second
	connectBudget   = 30 * time.Second
)

// @title        ESG-View Admin Gateway API
// @version      1.0
// @description  Session and AI analytics gateway for the ESG-View platform.
// @BasePath     /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, checks, cleanup, err := buildSnapshotStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Snapshot.Backend).Msg("snapshot store unavailable")
	}
	defer cleanup()

	platform := upstream.NewClient(upstream.Config{
		BaseURL:        cfg.Platform.BaseURL,
		RequestTimeout: cfg.Platform.RequestTimeout,
		UploadTimeout:  cfg.Platform.UploadTimeout,
	}, log)

	sessions := service.NewSessionManager(
		upstream.NewAuthClient(platform),
		store,
		cfg.Platform.RestoreTimeout,
		log,
	)
	sessions.Restore(ctx)

	analytics := service.NewAnalyticsService(
		upstream.NewAnalyticsClient(platform),
		sessions,
		log,
	)

	panels := queue.NewDispatcher(panelWorkers, analytics, log)
	panels.Start(ctx)

	e := api.NewRouter(api.RouterConfig{
		Sessions:        sessions,
		Analytics:       analytics,
		Panels:          panels,
		Logger:          log,
		ReadinessChecks: checks,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting admin gateway")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// buildSnapshotStore wires the configured persistence backend, retrying the
// initial connection with exponential backoff. It returns the store, the
// readiness checks that probe it, and a cleanup for the held connections.
func buildSnapshotStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.SnapshotStore, []handler.ReadinessCheck, func(), error) {
	noop := func() {}

	switch cfg.Snapshot.Backend {
	case "memory", "":
		return memorystore.NewSnapshotStore(), nil, noop, nil

	case "redis":
		var client *goredis.Client
		err := retryConnect(log, "redis", func() error {
			var err error
			client, err = redisstore.Connect(ctx, redisstore.Config{
				Addr: cfg.Redis.Addr,
				DB:   cfg.Redis.DB,
			})
			return err
		})
		if err != nil {
			return nil, nil, noop, err
		}
		checks := []handler.ReadinessCheck{{
			Name: "redis",
			Check: func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			},
		}}
		cleanup := func() {
			if err := client.Close(); err != nil {
				log.Warn().Err(err).Msg("closing redis client")
			}
		}
		return redisstore.NewSnapshotStore(client, cfg.Snapshot.TTL), checks, cleanup, nil

	case "mongo":
		var (
			client *gomongo.Client
			db     *gomongo.Database
		)
		err := retryConnect(log, "mongodb", func() error {
			var err error
			client, db, err = mongostore.Connect(ctx, mongostore.Config{
				URI:      cfg.Mongo.URI,
				Database: cfg.Mongo.Database,
			})
			return err
		})
		if err != nil {
			return nil, nil, noop, err
		}
		checks := []handler.ReadinessCheck{{
			Name: "mongodb",
			Check: func(ctx context.Context) error {
				return client.Ping(ctx, nil)
			},
		}}
		cleanup := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Warn().Err(err).Msg("disconnecting mongodb client")
			}
		}
		return mongostore.NewSnapshotStore(db), checks, cleanup, nil
	}

	return nil, nil, noop, fmt.Errorf("unknown snapshot backend %q", cfg.Snapshot.Backend)
}

func retryConnect(log zerolog.Logger, name string, connect func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = connectBudget

	return backoff.RetryNotify(connect, bo, func(err error, next time.Duration) {
		log.Warn().Err(err).Str("dependency", name).Dur("retry_in", next).Msg("connection attempt failed")
	})
}
