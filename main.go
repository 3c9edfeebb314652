package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/webinars/internal/cache"
	"github.com/msomdec/webinars/internal/clock"
	"github.com/msomdec/webinars/internal/config"
	"github.com/msomdec/webinars/internal/domain"
	"github.com/msomdec/webinars/internal/handler"
	"github.com/msomdec/webinars/internal/repository/memory"
	"github.com/msomdec/webinars/internal/repository/postgres"
	"github.com/msomdec/webinars/internal/repository/sqlite"
	"github.com/msomdec/webinars/internal/service"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logOpts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var logHandler slog.Handler = slog.NewTextHandler(os.Stdout, logOpts)
	if cfg.LogFormat == "json" {
		logHandler = slog.NewJSONHandler(os.Stdout, logOpts)
	}
	slog.SetDefault(slog.New(logHandler))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		slog.Error("failed to open database", "driver", cfg.DatabaseDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database ready", "driver", cfg.DatabaseDriver)

	webinarRepo := db.Webinars()
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			slog.Warn("webinar cache disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			defer client.Close()
			webinarRepo = cache.NewWebinarRepository(webinarRepo, client, cfg.CacheTTL)
			slog.Info("webinar cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
		}
	}

	clk := clock.NewSystem()
	ids := service.UUIDGenerator{}
	authService := service.NewAuthService(db.Users(), ids, clk, cfg.JWTSecret, cfg.BcryptCost)
	webinarService := service.NewWebinarService(webinarRepo, ids, clk)

	limiter := service.NewTokenBucket(clk, cfg.RateLimitRPS, float64(cfg.RateLimitBurst))
	go limiter.RunSweeper(ctx)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: handler.NewRouter(handler.Services{
			Auth:         authService,
			Webinars:     webinarService,
			Store:        db,
			Limiter:      limiter,
			CookieSecure: cfg.CookieSecure,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func openDatabase(ctx context.Context, cfg config.Config) (domain.Database, error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		return sqlite.New(cfg.DatabasePath)
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.DatabaseURL)
	case config.DriverMemory:
		slog.Warn("using in-memory store, data is lost on exit")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}
}
