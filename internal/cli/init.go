// Package cli provides the drawerctl commands and the process bootstrap
// shared by cmd/drawer and `drawerctl serve`.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"cashdrawer/internal/cache"
	"cashdrawer/internal/config"
	apphttp "cashdrawer/internal/http"
	"cashdrawer/internal/log"
	"cashdrawer/internal/metrics"
	"cashdrawer/internal/services"
	"cashdrawer/internal/session"
)

// SetupLogger builds the process logger for the given LOG_LEVEL value and
// installs it as the slog default.
func SetupLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := log.NewWriter(w, lvl, log.ComponentApp)
	slog.SetDefault(logger.Logger)
	return logger, nil
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// SignalContext is cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// RunServer builds the drawer web stack from cfg and serves until ctx is
// cancelled, then shuts down within cfg.ShutdownTimeout. Session expiry and
// rate limiter cleanup run alongside the server in the same errgroup.
func RunServer(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	store := session.NewStore(session.Config{
		MaxSessions: cfg.SessionMax,
		IdleTTL:     cfg.SessionTTL,
	}, m)
	svc := services.NewDrawerService(store, m, logger)

	srv := apphttp.NewServer(cfg.Addr(), svc, m, apphttp.Options{
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		SessionTTL:         cfg.SessionTTL,
		Logger:             logger,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	sweeper := cache.NewManager(cfg.CacheCleanupInterval, logger.WithComponent(log.ComponentCache).Logger)
	sweeper.Register(store.Cleaner())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting cash drawer server",
			log.FieldOperation, log.OpStartup,
			"addr", srv.Addr,
			"session_ttl", cfg.SessionTTL,
			"session_max", cfg.SessionMax)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error { return sweeper.Run(gctx) })
	g.Go(func() error { return srv.RunMaintenance(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
			return err
		}
		return nil
	})

	err := g.Wait()
	logger.Info("Server stopped", log.FieldOperation, log.OpShutdown, "active_sessions", svc.ActiveSessions())
	return err
}
