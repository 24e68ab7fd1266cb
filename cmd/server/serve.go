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

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/speedminds/internal/analyzer"
	"github.com/BerylCAtieno/speedminds/internal/config"
	"github.com/BerylCAtieno/speedminds/internal/db"
	"github.com/BerylCAtieno/speedminds/internal/repository"
	"github.com/BerylCAtieno/speedminds/internal/router"
	"github.com/BerylCAtieno/speedminds/internal/services"
	"github.com/BerylCAtieno/speedminds/internal/storage"
	"github.com/BerylCAtieno/speedminds/internal/utils"
)

const janitorInterval = time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Fatal("Failed to create upload directory", "error", err, "path", cfg.UploadDir)
	}

	llm, err := analyzer.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create analyzer", "error", err, "provider", cfg.LLMProvider)
	}

	var sessions *services.SessionStore
	if cfg.SessionsEnabled {
		database, err := db.NewSQLiteDB(cfg.DatabasePath)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		defer database.Close()

		if err := db.RunMigrations(database); err != nil {
			logger.Fatal("Failed to run migrations", "error", err)
		}

		blobs, err := storage.New(ctx, cfg)
		if err != nil {
			logger.Fatal("Failed to initialize session storage", "error", err, "store", cfg.SessionStore)
		}

		sessions = services.NewSessionStore(repository.NewSessionRepository(database), blobs, cfg.SessionTTL, logger)
		go sessions.RunJanitor(ctx, janitorInterval)

		logger.Info("Sessions enabled", "store", cfg.SessionStore, "ttl", cfg.SessionTTL)
	}

	docService := services.NewService(llm, sessions, logger)
	handler := router.NewRouter(docService, cfg, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "provider", cfg.LLMProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		return err
	}

	logger.Info("Server exited")
	return nil
}
