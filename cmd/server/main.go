package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cesargomez89/soundboard/internal/app"
	"github.com/cesargomez89/soundboard/internal/config"
	"github.com/cesargomez89/soundboard/internal/constants"
	httpapp "github.com/cesargomez89/soundboard/internal/http"
	"github.com/cesargomez89/soundboard/internal/httpclient"
	"github.com/cesargomez89/soundboard/internal/logger"
	"github.com/cesargomez89/soundboard/internal/remote"
	"github.com/cesargomez89/soundboard/internal/storage"
	"github.com/cesargomez89/soundboard/internal/store"
	"github.com/cesargomez89/soundboard/internal/syncer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	layout := storage.NewLayout(cfg.DataDir)
	if err := layout.Prepare(); err != nil {
		appLogger.Error("Failed to prepare data dir", "error", err)
		os.Exit(1)
	}

	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	client := httpclient.NewClient(&http.Client{Timeout: constants.DefaultHTTPTimeout}, cfg.RequestInterval)
	server := remote.NewClient(cfg.ServerURL, client)

	shares := app.NewShareService(db, server, cfg.InstallID, appLogger)
	reconciler := syncer.NewReconciler(db, server, layout, appLogger)

	w := syncer.NewWorker(reconciler, shares, cfg.SyncInterval, appLogger)
	w.Start()
	defer w.Stop()

	h := httpapp.NewHandler(db, shares, reconciler, cfg.AllowSensitive, appLogger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h.Router(),
	}

	go func() {
		appLogger.Info("Server listening", "addr", srv.Addr, "server_url", cfg.ServerURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exiting")
}
