package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ait-dev/patientcare/config"
	v1 "github.com/ait-dev/patientcare/internal/handler/v1"
	"github.com/ait-dev/patientcare/internal/repository/postgres"
	"github.com/ait-dev/patientcare/internal/service"
	"github.com/ait-dev/patientcare/pkg/database"
	"github.com/ait-dev/patientcare/pkg/logger"
	"github.com/ait-dev/patientcare/pkg/metrics"
	"github.com/ait-dev/patientcare/pkg/tracer"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Error("failed to load configuration", zap.Error(err))
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		zap.NewExample().Error("failed to build logger", zap.Error(err))
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		log.Error("failed to initialize tracing", zap.Error(err))
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Error("failed to connect to database", zap.Error(err))
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		log.Error("failed to run migrations", zap.Error(err))
		return err
	}

	collector := metrics.NewCollector("patientcare")

	repo := postgres.NewPatientRepository(db, collector)
	svc := service.NewPatientService(repo, log, collector)
	handler := v1.NewPatientHandler(svc, cfg.Clinic.Name)
	router := v1.NewRouter(handler, log, collector)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if sqlDB, err := db.DB(); err == nil {
		go collector.WatchDBStats(ctx, 15*time.Second, sqlDB.Stats)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("address", srv.Addr),
			zap.String("environment", cfg.App.Environment),
			zap.String("clinic", cfg.Clinic.Name),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Error("server failed", zap.Error(err))
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		return err
	}

	log.Info("server stopped")
	return nil
}
