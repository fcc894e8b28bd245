package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/newsverdict/verdict/internal/adapter/client"
	"github.com/newsverdict/verdict/internal/adapter/http/router"
	"github.com/newsverdict/verdict/internal/adapter/repository/gormdb"
	"github.com/newsverdict/verdict/internal/domain/repository"
	"github.com/newsverdict/verdict/internal/infrastructure/config"
	"github.com/newsverdict/verdict/internal/infrastructure/database"
	"github.com/newsverdict/verdict/internal/infrastructure/logger"
	"github.com/newsverdict/verdict/internal/infrastructure/metrics"
	"github.com/newsverdict/verdict/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// History store (optional)
	var (
		db      *gorm.DB
		history repository.AnalysisRepository
	)
	if cfg.History.Enabled {
		db, err = database.NewDB(&cfg.History, &cfg.Database)
		if err != nil {
			log.Error("Failed to open history database", zap.Error(err))
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer func() { _ = database.Close(db) }()

		if err := database.AutoMigrate(db); err != nil {
			log.Error("Failed to run migrations", zap.Error(err))
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		history = gormdb.NewAnalysisRepository(db)
		log.Info("History enabled", zap.String("driver", cfg.History.Driver))
	}

	// Classifier
	predictClient := client.NewPredictClient(cfg.Classifier.URL, cfg.Classifier.Timeout)
	classifier := client.NewVerdictClassifier(predictClient, cfg.Classifier.StrictKeys, log)

	m := metrics.New(prometheus.DefaultRegisterer)
	verdictUC := usecase.NewVerdictUsecase(classifier, history, m, log)

	// Setup router
	r := router.Setup(router.Dependencies{
		Verdict:            verdictUC,
		DB:                 db,
		ClassifierEndpoint: predictClient.Endpoint(),
		Gatherer:           prometheus.DefaultGatherer,
		Logger:             log,
	})

	// Create HTTP server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Classifier.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server",
			zap.String("address", addr),
			zap.String("classifier", predictClient.Endpoint()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}
