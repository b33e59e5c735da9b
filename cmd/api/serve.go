package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/agenda/internal/audit"
	"github.com/BruksfildServices01/agenda/internal/config"
	dbpkg "github.com/BruksfildServices01/agenda/internal/db"
	"github.com/BruksfildServices01/agenda/internal/middleware"
	"github.com/BruksfildServices01/agenda/internal/routes"
	"github.com/BruksfildServices01/agenda/internal/timezone"
	"github.com/BruksfildServices01/agenda/internal/validators"
)

const shutdownTimeout = 10 * time.Second

var skipMigrate bool

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not migrate the schema on startup")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server on SERVER_PORT.

The schema is migrated on startup unless --skip-migrate is given. When
REDIS_URL is set the public confirmation links are rate limited through
Redis, otherwise an in-process limiter is used.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	if !skipMigrate {
		if err := dbpkg.Migrate(db); err != nil {
			return err
		}
	}

	if err := validators.Register(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	limiter, closeLimiter, err := newLimiter(cfg)
	if err != nil {
		return err
	}
	defer closeLimiter()

	dispatcher := audit.NewDispatcher(audit.New(db))
	defer dispatcher.Close()

	r := gin.New()
	if err := routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Config:  cfg,
		Audit:   dispatcher,
		Limiter: limiter,
		Clock:   timezone.SystemClock(cfg.Timezone),
	}); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("timezone", cfg.Timezone).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// newLimiter picks Redis when REDIS_URL is set so several API instances share
// one budget per IP.
func newLimiter(cfg *config.Config) (middleware.Limiter, func(), error) {
	if cfg.RedisURL == "" {
		return middleware.NewMemoryLimiter(cfg.RateRPS, cfg.RateBurst), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	limit := int(cfg.RateRPS * 60)
	if limit < cfg.RateBurst {
		limit = cfg.RateBurst
	}

	log.Info().Str("addr", opts.Addr).Int("per_minute", limit).Msg("rate limiting through redis")
	return middleware.NewRedisLimiter(client, "confirm", limit, time.Minute), func() { _ = client.Close() }, nil
}
