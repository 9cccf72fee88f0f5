package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"github.com/mogiel/konec/internal/adapter/httpserver"
	"github.com/mogiel/konec/internal/adapter/metrics"
	"github.com/mogiel/konec/internal/adapter/postgres"
	"github.com/mogiel/konec/internal/adapter/redis"
	"github.com/mogiel/konec/internal/concrete"
	"github.com/mogiel/konec/internal/cookies"
	"github.com/mogiel/konec/internal/domain"
	"github.com/mogiel/konec/internal/platform/config"
	"github.com/mogiel/konec/internal/platform/logging"
	"github.com/mogiel/konec/internal/platform/version"
	"github.com/mogiel/konec/internal/ratelimit"
)

const (
	dependencyConnectTimeout = 30 * time.Second
	evictionInterval         = time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// slog is not configured yet
		log.Fatalf("Failed to load config: %v", err)
	}

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	slog.Info("Application starting", "version", version.Get().String(), "env", cfg.AppEnv, "port", cfg.Port)

	clock := clockwork.NewRealClock()
	reg := metrics.NewRegistry()
	rlMetrics := metrics.NewRateLimitMetrics(reg)

	var healthChecks []httpserver.HealthCheck

	ctx, cancel := context.WithTimeout(context.Background(), dependencyConnectTimeout)
	defer cancel()

	memoryStore := ratelimit.NewMemoryStore(clock)
	stopEviction := memoryStore.StartEvictionTimer(evictionInterval)
	defer stopEviction()

	var store domain.RateLimitStore = memoryStore
	if cfg.RedisURL != "" {
		rdb, err := redis.NewClient(ctx, cfg.RedisURL, metrics.NewRedisHook(reg))
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer closeRedis(rdb)

		store = ratelimit.NewFallbackStore(redis.NewRateLimitStore(rdb), memoryStore, ratelimit.FallbackOptions{
			OnStateChange: rlMetrics.ObserveBreakerState,
		})
		hc := redis.NewHealthCheck(rdb)
		healthChecks = append(healthChecks, httpserver.HealthCheck{Name: hc.Name(), Check: hc.Check})
		slog.Info("Rate limit counters shared through redis")
	}

	limiter, err := ratelimit.New(store, clock, cfg.RateLimitMax, cfg.RateLimitWindow)
	if err != nil {
		return fmt.Errorf("failed to create rate limiter: %w", err)
	}

	concreteRepo, dbCheck, closeDB, err := setupConcreteRepository(ctx, cfg, reg)
	if err != nil {
		return err
	}
	defer closeDB()
	if dbCheck != nil {
		healthChecks = append(healthChecks, *dbCheck)
	}

	var codec *cookies.Codec
	if cfg.CookieSecret != "" {
		codec, err = cookies.NewCodec(cfg.CookieSecret, cfg.IsProduction())
		if err != nil {
			return fmt.Errorf("failed to create cookie codec: %w", err)
		}
	}

	srv, err := httpserver.NewServer(cfg, httpserver.Deps{
		Limiter:           limiter,
		RateLimitRecorder: rlMetrics,
		Concrete:          concrete.NewService(concreteRepo),
		CookieCodec:       codec,
		Registry:          reg,
		HealthChecks:      healthChecks,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if err := srv.Listen(); err != nil {
		return err
	}

	return serveUntilSignal(srv, cfg.ShutdownTimeout)
}

// setupConcreteRepository serves the catalog from postgres when DATABASE_URL is set, seeding it
// from the embedded table, and from memory otherwise. The returned func releases the pool.
func setupConcreteRepository(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (domain.ConcreteRepository, *httpserver.HealthCheck, func(), error) {
	if cfg.DatabaseURL == "" {
		repo, err := concrete.NewEmbeddedRepository()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load concrete catalog: %w", err)
		}
		return repo, nil, func() {}, nil
	}

	classes, err := concrete.LoadEmbedded()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load concrete catalog: %w", err)
	}

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, metrics.NewQueryTracer(reg))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := postgres.RunMigrationsWithLock(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	repo := postgres.NewConcreteRepo(pool)
	if err := repo.SeedConcreteClasses(ctx, classes); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	hc := postgres.NewHealthCheck(pool)
	slog.Info("Concrete catalog served from postgres", "classes", len(classes))
	return repo, &httpserver.HealthCheck{Name: hc.Name(), Check: hc.Check}, pool.Close, nil
}

// serveUntilSignal serves until SIGINT/SIGTERM and then drains within timeout.
func serveUntilSignal(srv *httpserver.Server, timeout time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	served := make(chan error, 1)
	go func() { served <- srv.Serve() }()

	select {
	case err := <-served:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutdown signal received, draining connections", "timeout", timeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-served; err != nil {
		return err
	}

	slog.Info("Server stopped")
	return nil
}

func closeRedis(rdb *goredis.Client) {
	if err := rdb.Close(); err != nil {
		slog.Error("Failed to close redis client", "error", err)
	}
}
