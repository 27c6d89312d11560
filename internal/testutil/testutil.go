// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/config"
	"libraryhub/internal/pkg/password"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// JWTSecret signs tokens in tests
const JWTSecret = "test-secret"

// Config returns a dev config backed by SQLite
func Config() *config.Config {
	return &config.Config{
		AppMode: "dev",
		Port:    "0",
		Database: config.DatabaseConfig{
			Driver: "sqlite",
		},
		JWT: config.JWTConfig{
			Secret:     JWTSecret,
			ExpiryMins: 60,
		},
		Pagination: config.PaginationConfig{DefaultLimit: 10, MaxLimit: 100},
		RateLimit:  config.RateLimitConfig{Max: 1000, Window: time.Minute},
		Cron:       config.CronConfig{OverdueScan: "30 8 * * *"},
	}
}

// NewDB opens a migrated SQLite database in t.TempDir and lowers the bcrypt cost
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	prev := password.SetCost(bcrypt.MinCost)
	t.Cleanup(func() { password.SetCost(prev) })

	cfg := Config().Database
	cfg.SQLitePath = filepath.Join(t.TempDir(), "test.db")

	db, err := config.Open(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
