package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/locking"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/handlers"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/memory"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_engine/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// run has released the pool and redis client by the time it returns.
	if err := run(context.Background(), cfg, logger, quit); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run serves until stop fires or the listener fails.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, stop <-chan os.Signal) error {
	// cleanup runs in reverse order of setup
	var cleanup []func()
	defer func() {
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}()

	repos, err := buildRepositories(ctx, cfg, logger, &cleanup)
	if err != nil {
		return fmt.Errorf("failed to initialize ledger store: %w", err)
	}
	container := services.NewServiceContainer(repos)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	rateLimiter, err := middleware.NewMemoryRateLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("invalid RATE_LIMIT %q: %w", cfg.RateLimit, err)
	}

	// Global middleware (logging, recovery, cors, rate limit)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(corsConfig(cfg.CORSAllowedOrigins)),
		middleware.RateLimit(rateLimiter),
	)

	handlers.RegisterRoutes(r, container)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.LedgerStore), slog.String("locks", cfg.LockBackend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to run: %w", err)
	case <-stop:
	}

	logger.Info("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	logger.Info("Server stopped")
	return nil
}

// buildRepositories wires the configured store and lock backend.
func buildRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger, cleanup *[]func()) (portsrepo.RepositoryProvider, error) {
	var redisLocks locking.Manager
	if cfg.LockBackend == config.LockRedis {
		rdb, err := database.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		*cleanup = append(*cleanup, func() { _ = rdb.Close() })
		redisLocks = locking.NewRedisManager(rdb, cfg.LockTTL, cfg.LockWaitTimeout, locking.WithLogger(logger))
	}

	switch cfg.LedgerStore {
	case config.StorePostgres:
		if cfg.RunMigrations {
			logger.Info("Running database migrations...")
			if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
				return portsrepo.RepositoryProvider{}, err
			}
		}

		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		*cleanup = append(*cleanup, func() { database.ClosePgxPool(dbPool) })

		opts := []pgsql.LedgerOption{pgsql.WithLockTimeout(cfg.LockWaitTimeout)}
		if redisLocks != nil {
			opts = append(opts, pgsql.WithExternalLocks(redisLocks))
		}
		return pgsql.NewRepositoryProvider(dbPool, opts...), nil

	default:
		var locks locking.Manager = locking.NewLocalManager(cfg.LockWaitTimeout)
		if redisLocks != nil {
			locks = redisLocks
		}
		return memory.NewRepositoryProvider(memory.NewStore(locks)), nil
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, middleware.RequestIDHeader)
	c.ExposeHeaders = []string{middleware.RequestIDHeader, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
