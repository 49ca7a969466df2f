// Package seed bootstraps the initial admin account.
package seed

import (
	"context"
	"log"

	"rental-backoffice/internal/auth"
	"rental-backoffice/internal/config"
	"rental-backoffice/internal/models"
	"rental-backoffice/internal/store"
)

// Run creates the admin user from the SU_PHONE/SU_PASSWORD credentials
// unless one already exists. Idempotent.
func Run(ctx context.Context, users *store.UserStore, cfg config.SeedConfig) error {
	hasAdmin, err := users.HasAdmin(ctx)
	if err != nil {
		return err
	}
	if hasAdmin {
		log.Println("admin user already exists, skipping seed")
		return nil
	}

	if cfg.AdminPhone == "" || cfg.AdminPassword == "" {
		log.Println("SU_PHONE and SU_PASSWORD not set, skipping admin seed")
		return nil
	}

	hashed, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     "System Administrator",
		Phone:    cfg.AdminPhone,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	log.Printf("initial admin user created (phone: %s)", cfg.AdminPhone)
	return nil
}
