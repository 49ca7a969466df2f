package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"rental-backoffice/internal/config"
	"rental-backoffice/internal/lease"
	"rental-backoffice/internal/models"
	"rental-backoffice/internal/seed"
	"rental-backoffice/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "rental-admin",
	Short: "Rental Back-Office Administration CLI",
	Long:  `A command-line interface for managing the rental back-office database and lease lifecycle.`,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := store.Migrate(db); err != nil {
			return err
		}
		fmt.Println("schema migrated")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the initial admin user from SU_PHONE/SU_PASSWORD",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		db, err := store.Open(cfg.Database)
		if err != nil {
			return err
		}
		return seed.Run(context.Background(), store.NewUserStore(db), cfg.Seed)
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the lease expiration sweep once",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		engine := lease.NewEngine(store.NewLeaseStore(db))
		count, err := engine.SweepExpiredLeases(context.Background(), time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("expired %d leases\n", count)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show lease counts by status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		for _, status := range []models.LeaseStatus{models.LeaseActive, models.LeaseExpired, models.LeaseTerminated} {
			var count int64
			if err := db.Model(&models.Lease{}).Where("status = ?", status).Count(&count).Error; err != nil {
				return err
			}
			fmt.Printf("  %-10s %d\n", status, count)
		}
		return nil
	},
}

func openDB() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.Database)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(statusCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
