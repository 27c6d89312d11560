package config_test

import (
	"context"
	"testing"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/config"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_Defaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsDev())
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 100, cfg.Pagination.MaxLimit)
	assert.Equal(t, time.Hour, cfg.JWT.TTL())
	assert.Equal(t, "30 8 * * *", cfg.Cron.OverdueScan)
	assert.False(t, cfg.Seed.Admin)
}

func Test_Load_Overrides(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("DEV_DB_NAME", "books")
	t.Setenv("PAGINATION_DEFAULT_LIMIT", "25")
	t.Setenv("PAGINATION_MAX_LIMIT", "not-a-number")
	t.Setenv("JWT_EXPIRES_MINUTES", "15")
	t.Setenv("SEED_ADMIN", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "books", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 100, cfg.Pagination.MaxLimit)
	assert.Equal(t, 15*time.Minute, cfg.JWT.TTL())
	assert.True(t, cfg.Seed.Admin)
}

func Test_Load_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad_mode", env: map[string]string{"APP_MODE": "staging"}},
		{name: "bad_driver", env: map[string]string{"APP_MODE": "dev", "DB_DRIVER": "oracle"}},
		{name: "prod_default_secret", env: map[string]string{"APP_MODE": "prod", "DB_DRIVER": "mysql"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func Test_Seeder_CreatesAdminOnce(t *testing.T) {
	db := testutil.NewDB(t)
	users := repositories.NewUserRepository(db)
	seed := config.SeedConfig{
		Admin:         true,
		AdminName:     "Admin",
		AdminEmail:    "admin@library.local",
		AdminPassword: "admin123456",
	}

	require.NoError(t, config.NewSeeder(users, seed).Run(context.Background()))
	require.NoError(t, config.NewSeeder(users, seed).Run(context.Background()))

	var admins []models.User
	require.NoError(t, db.Where("type = ?", domain.RoleAdmin).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@library.local", admins[0].Email)
}

func Test_Seeder_Disabled(t *testing.T) {
	db := testutil.NewDB(t)
	users := repositories.NewUserRepository(db)

	require.NoError(t, config.NewSeeder(users, config.SeedConfig{}).Run(context.Background()))

	exists, err := users.ExistsAdmin(context.Background())
	require.NoError(t, err)
	assert.False(t, exists)
}

func Test_HealthCheck(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	tables, err := config.HealthCheck(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"users": true, "books": true, "borrowings": true}, tables)

	require.NoError(t, db.Migrator().DropTable(&models.Book{}))

	tables, err = config.HealthCheck(ctx, db)
	assert.EqualError(t, err, "missing tables: books")
	assert.False(t, tables["books"])
	assert.True(t, tables["users"])

	_, err = config.HealthCheck(ctx, nil)
	assert.Error(t, err)
}
