package main

import (
	"context"
	"delivery-ops-service/internal/adapters/export"
	"delivery-ops-service/internal/adapters/repositories"
	"delivery-ops-service/internal/adapters/session"
	"delivery-ops-service/internal/api"
	"delivery-ops-service/internal/config"
	"delivery-ops-service/internal/platform/db"
	"delivery-ops-service/internal/platform/kv"
	"delivery-ops-service/internal/platform/logging"
	"delivery-ops-service/internal/services"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, Excel) behind ports and starts the HTTP server.
func main() {
	envLoaded := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if !envLoaded {
		logger.Info("no .env file found, using environment variables")
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := kv.Open(ctx, kv.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	drivers := repositories.NewPostgresDriverRepository(sqlDB)
	runs := repositories.NewPostgresRunRepository(sqlDB)

	router := api.NewRouter(api.Deps{
		Runs: &services.RunService{Drivers: drivers, Runs: runs, Log: logger},
		Loading: &services.LoadingService{
			Drivers:  drivers,
			Runs:     runs,
			Supplies: repositories.NewPostgresSupplyRepository(sqlDB),
			Loadings: repositories.NewPostgresLoadingRepository(sqlDB),
			Forms:    session.NewRedisLoadingFormStore(rdb, cfg.LoadingFormTTL),
			Log:      logger,
		},
		Roster: &services.RosterService{
			Drivers: drivers,
			Errors:  session.NewRedisPageErrorStore(rdb),
			Log:     logger,
		},
		Exporter:  export.XLSXRosterExporter{},
		JWTSecret: []byte(cfg.JWTSecret),
		Log:       logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
