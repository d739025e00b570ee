package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nmantri/spendwise/internal/ledger"
	"github.com/nmantri/spendwise/internal/platform/user"
	"github.com/nmantri/spendwise/internal/storage/flatfile"
	"github.com/nmantri/spendwise/internal/transport/httpapi"
	"github.com/nmantri/spendwise/internal/transport/httpapi/handler"
	"github.com/nmantri/spendwise/internal/transport/httpapi/middleware"
	"github.com/nmantri/spendwise/pkg/config"
	"github.com/nmantri/spendwise/pkg/logger"
)

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting Spendwise API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"data_dir", cfg.DataDir,
		"parse_mode", cfg.ParseMode,
	)

	// Load the static credential registry once; it is immutable at runtime.
	registry, err := user.LoadRegistry(cfg.UsersFile)
	if err != nil {
		log.Error("Failed to load users file", "path", cfg.UsersFile, "error", err)
		os.Exit(1)
	}
	log.Info("Credential registry loaded", "users", registry.Len())

	// Initialize flat-file storage
	db, err := flatfile.New(flatfile.Config{
		Dir:    cfg.DataDir,
		Strict: cfg.ParseMode == config.ParseModeStrict,
	}, log)
	if err != nil {
		log.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	ledgerStore := db.Ledger()
	settingsStore := db.Settings()

	// Initialize services
	ledgerSvc := ledger.NewService(ledgerStore)
	jwtSvc := middleware.NewJWTService(cfg.JWTSecret)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(registry, jwtSvc, log, ledgerStore, settingsStore)
	transactionHandler := handler.NewTransactionHandler(ledgerSvc)
	reportHandler := handler.NewReportHandler(ledgerSvc, settingsStore)
	settingsHandler := handler.NewSettingsHandler(settingsStore)
	impexpHandler := handler.NewImpexpHandler(ledgerSvc)

	// Create HTTP router
	r := httpapi.NewRouter(httpapi.Config{
		Logger:             log,
		AllowedOrigins:     cfg.AllowedOrigins,
		AuthHandler:        authHandler,
		TransactionHandler: transactionHandler,
		ReportHandler:      reportHandler,
		SettingsHandler:    settingsHandler,
		ImpexpHandler:      impexpHandler,
		JWTMiddleware:      middleware.JWTMiddleware(jwtSvc),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()
	log.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}
