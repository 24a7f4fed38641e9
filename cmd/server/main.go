// Package main is the entry point for the shopinvoice API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"shopinvoice/internal/domain/invoice"
	v1 "shopinvoice/internal/infrastructure/http/v1"
	"shopinvoice/internal/infrastructure/notify"
	"shopinvoice/internal/infrastructure/numerator"
	"shopinvoice/internal/infrastructure/render"
	"shopinvoice/internal/infrastructure/storage/docstore"
	"shopinvoice/internal/infrastructure/storage/postgres"
	"shopinvoice/internal/infrastructure/storage/postgres/invoice_repo"
	"shopinvoice/pkg/logger"
)

func main() {
	// Local development convenience; no-op when the file is absent.
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting shopinvoice server")

	// --- Database connection ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Document storage ---
	store, err := docstore.New(mustEnv("DOCUMENT_ROOT"))
	if err != nil {
		log.Fatalw("document storage unavailable", "error", err)
	}

	// --- Renderer ---
	renderer, err := render.New()
	if err != nil {
		log.Fatalw("failed to initialize renderer", "error", err)
	}

	// --- Invoice lifecycle ---
	repo := invoice_repo.NewInvoiceRepo(txManager)
	allocator := numerator.New(pool)

	manager := invoice.NewManager(
		repo,
		allocator,
		renderer,
		store,
		notify.NewLogNotifier(log),
		txManager,
		invoice.ManagerConfig{
			Supplier: invoice.Participant{
				Name:        mustEnv("SUPPLIER_NAME"),
				Street:      mustEnv("SUPPLIER_STREET"),
				City:        mustEnv("SUPPLIER_CITY"),
				Zip:         mustEnv("SUPPLIER_ZIP"),
				CompanyID:   getEnv("SUPPLIER_COMPANY_ID", ""),
				TaxID:       getEnv("SUPPLIER_TAX_ID", ""),
				BankAccount: getEnv("SUPPLIER_BANK_ACCOUNT", ""),
			},
			FooterText: getEnv("FOOTER_TEXT", ""),
			Numbering:  invoice.DefaultNumbering(),
		},
	)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:           pool,
		Logger:         log,
		InvoiceManager: manager,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
