// Command server runs the brandbook entries API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/brandbook/entries-api/internal/api"
	"github.com/brandbook/entries-api/internal/api/handler"
	"github.com/brandbook/entries-api/internal/api/metrics"
	"github.com/brandbook/entries-api/internal/core/ports"
	"github.com/brandbook/entries-api/internal/core/service"
	"github.com/brandbook/entries-api/internal/infrastructure/config"
	mongodb "github.com/brandbook/entries-api/internal/infrastructure/db/mongo"
	redisdb "github.com/brandbook/entries-api/internal/infrastructure/db/redis"
	"github.com/brandbook/entries-api/internal/infrastructure/storage"
	"github.com/brandbook/entries-api/pkg/logger"
)

// @title                       Brandbook Entries API
// @version                     1.0
// @description                 Accounts, per-user brand/product entries and image uploads.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(ctx context.Context) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "brandbook-api",
		Output:  os.Stdout,
	})

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongodb.Disconnect(context.Background(), mongoClient); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	users := mongodb.NewUserRepository(db, cfg.Entries.OptimisticLock)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}

	checks := []handler.ReadinessCheck{{
		Name: "mongodb",
		Ping: func(ctx context.Context) error { return mongoClient.Ping(ctx, readpref.Primary()) },
	}}

	// --- Redis (optional) ---
	var throttle ports.LoginThrottle
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer closeRedis(rdb, log)

		throttle = redisdb.NewLoginThrottle(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginLockWindow)
		checks = append(checks, handler.ReadinessCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	} else {
		log.Info().Msg("REDIS_ADDR not set, login throttling disabled")
	}

	// --- Object storage ---
	bucket, err := storage.NewBucket(ctx, storage.Config{
		Bucket:          cfg.Storage.Bucket,
		ProjectID:       cfg.Storage.ProjectID,
		CredentialsFile: cfg.Storage.CredentialsFile,
		Endpoint:        cfg.Storage.Endpoint,
		Region:          cfg.Storage.Region,
		AccessKey:       cfg.Storage.AccessKey,
		SecretKey:       cfg.Storage.SecretKey,
		PublicBaseURL:   cfg.Storage.PublicBaseURL,
		UsePathStyle:    cfg.Storage.PathStyle,
	})
	if err != nil {
		return err
	}

	// --- Services ---
	authService, err := service.NewAuthService(users, throttle, service.AuthOptions{
		JWTSecret:  cfg.Auth.JWTSecret,
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
		Metrics:    metrics.Recorder{},
	}, log)
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Deps{
		Auth:    authService,
		Entries: service.NewEntryService(users, log).WithMetrics(metrics.Recorder{}),
		Images:  service.NewImageService(bucket, log).WithMetrics(metrics.Recorder{}),
		Checks:  checks,
		Log:     log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("shutdown complete")
	return nil
}

func closeRedis(rdb *redis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("redis close failed")
	}
}
