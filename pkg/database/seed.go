package database

import (
	"context"
	"fmt"

	"zelux-backend/internal/domain/user"
)

// AdminProvisioner creates the admin account when it does not exist yet.
type AdminProvisioner interface {
	ProvisionAdmin(ctx context.Context, email, fullName, password string) (user.User, bool, error)
}

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	AdminEmail    string
	AdminFullName string
	AdminPassword string
}

// SeedResult holds the result of the seeding operation
type SeedResult struct {
	Admin   user.User
	Created bool
}

// Seed provisions the configured admin. Running it again is a no-op.
func Seed(ctx context.Context, p AdminProvisioner, cfg SeedConfig) (*SeedResult, error) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil, fmt.Errorf("seed: admin email and password are required")
	}

	admin, created, err := p.ProvisionAdmin(ctx, cfg.AdminEmail, cfg.AdminFullName, cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("seed admin %s: %w", cfg.AdminEmail, err)
	}

	return &SeedResult{Admin: admin, Created: created}, nil
}
