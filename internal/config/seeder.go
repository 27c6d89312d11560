package config

import (
	"context"
	"log"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/password"
)

// Seeder handles database seeding
type Seeder struct {
	users repositories.UserRepository
	cfg   SeedConfig
}

// NewSeeder creates a new seeder instance
func NewSeeder(users repositories.UserRepository, cfg SeedConfig) *Seeder {
	return &Seeder{users: users, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	if !s.cfg.Admin {
		return nil
	}

	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(ctx); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser creates the default admin when no admin account exists
func (s *Seeder) seedAdminUser(ctx context.Context) error {
	exists, err := s.users.ExistsAdmin(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashedPassword, err := password.Hash(s.cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     s.cfg.AdminName,
		Email:    s.cfg.AdminEmail,
		Password: hashedPassword,
		Type:     domain.RoleAdmin,
	}

	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}
