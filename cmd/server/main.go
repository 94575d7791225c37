// Command server runs the idolmatch HTTP API.
//
//	@title			idolmatch API
//	@version		1.0
//	@description	Backend for an idol fan community: rooms, posts, reactions, profiles, a champion gallery and a matching board.
//	@BasePath		/api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/ryunskeee/idolmatch/internal/auth"
	"github.com/ryunskeee/idolmatch/internal/config"
	httpapi "github.com/ryunskeee/idolmatch/internal/http"
	"github.com/ryunskeee/idolmatch/internal/observability"
	"github.com/ryunskeee/idolmatch/internal/repo"
	"github.com/ryunskeee/idolmatch/internal/services"
	"github.com/ryunskeee/idolmatch/internal/storage"
	"github.com/ryunskeee/idolmatch/internal/sysutil"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

const purgeEvery = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		sysutil.SetupLogger(os.Stderr, "server", "info", false)
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	sysutil.SetupLogger(os.Stderr, "server", cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg config.Config) error {
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.OpenDB(repo.Options{Driver: cfg.DB.Driver, DSN: cfg.DB.DSN, Tracing: cfg.DB.Tracing})
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if cfg.DB.MigrateOnStart {
		n, err := repo.Migrate(ctx, db)
		if err != nil {
			return err
		}
		log.Info().Int("applied", n).Str("driver", cfg.DB.Driver).Msg("schema ready")
	}

	verifier, err := auth.LoadJWTVerifier(cfg.Identity.CredentialPath, cfg.Identity.Issuer, cfg.Identity.Audience)
	if err != nil {
		return err
	}
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	var rdb redis.UniversalClient
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := client.Ping(pctx).Err()
		cancel()
		if err != nil {
			// The limiter fails open, so a cold Redis is not fatal.
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis ping failed")
		}
		rdb = client
	}

	idem := &services.IdempotencyService{DB: db, TTL: cfg.IdempotencyTTL}
	go idem.RunJanitor(log.Logger.WithContext(ctx), purgeEvery)

	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Deps{DB: db, Store: store, Verifier: verifier, Redis: rdb}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
