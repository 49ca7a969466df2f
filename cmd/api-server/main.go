package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"rental-backoffice/internal/auth"
	"rental-backoffice/internal/config"
	"rental-backoffice/internal/handlers"
	"rental-backoffice/internal/lease"
	"rental-backoffice/internal/router"
	"rental-backoffice/internal/scheduler"
	"rental-backoffice/internal/seed"
	"rental-backoffice/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := store.Open(cfg.Database)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	users := store.NewUserStore(db)
	properties := store.NewPropertyStore(db)
	tenants := store.NewTenantStore(db)
	leases := store.NewLeaseStore(db)
	maintenance := store.NewMaintenanceStore(db)

	engine := lease.NewEngine(leases)
	jwt := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Server.Environment == "development" {
		if err := seed.Run(ctx, users, cfg.Seed); err != nil {
			log.Fatalf("failed to seed initial data: %v", err)
		}
	}

	// Sweep once at startup, then hourly (configurable) in the background.
	go scheduler.New(engine, cfg.Sweep.Interval).Run(ctx)

	r := router.Setup(router.Handlers{
		Auth:        handlers.NewAuthHandler(users, jwt),
		Properties:  handlers.NewPropertyHandler(properties),
		Tenants:     handlers.NewTenantHandler(tenants, properties),
		Leases:      handlers.NewLeaseHandler(leases, properties, tenants, engine),
		Maintenance: handlers.NewMaintenanceHandler(maintenance, properties),
	}, jwt)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Println("shutting down API server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown error: %v", err)
		}
		cancel()
	}()

	log.Printf("rental back-office API listening on port %d (%s)", cfg.Server.Port, cfg.Server.Environment)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}

	<-ctx.Done()
	log.Println("API server stopped")
}
