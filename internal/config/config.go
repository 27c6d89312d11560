package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode    string
	Port       string
	Database   DatabaseConfig
	JWT        JWTConfig
	Pagination PaginationConfig
	RateLimit  RateLimitConfig
	Cron       CronConfig
	Seed       SeedConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver     string // mysql or sqlite
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SQLitePath string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret     string
	ExpiryMins int
}

// TTL returns the session lifetime of an access token
func (j JWTConfig) TTL() time.Duration {
	return time.Duration(j.ExpiryMins) * time.Minute
}

// PaginationConfig holds list paging limits
type PaginationConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// RateLimitConfig holds the global limiter settings
type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

// CronConfig holds scheduled job settings
type CronConfig struct {
	OverdueScan string
}

// SeedConfig holds the default admin account settings
type SeedConfig struct {
	Admin         bool
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:    appMode,
		Port:       getEnv("PORT", "3000"),
		Database:   loadDatabaseConfig(appMode),
		JWT:        loadJWTConfig(appMode),
		Pagination: loadPaginationConfig(),
		RateLimit:  loadRateLimitConfig(),
		Cron:       CronConfig{OverdueScan: getEnv("OVERDUE_SCAN_CRON", "30 8 * * *")},
		Seed:       loadSeedConfig(),
	}

	if config.Database.Driver != "mysql" && config.Database.Driver != "sqlite" {
		return nil, fmt.Errorf("invalid DB_DRIVER: '%s' (must be 'mysql' or 'sqlite')", config.Database.Driver)
	}
	if config.IsProd() && config.JWT.Secret == defaultJWTSecret {
		return nil, fmt.Errorf("PROD_JWT_SECRET must be set in prod mode")
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s, DB: %s]", appMode, config.Database.Driver)
	return config, nil
}

// modePrefix returns the env prefix for mode-specific keys
func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Driver:     strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		Host:       getEnv(prefix+"DB_HOST", "localhost"),
		Port:       getEnv(prefix+"DB_PORT", "3306"),
		User:       getEnv(prefix+"DB_USER", "root"),
		Password:   getEnv(prefix+"DB_PASS", ""),
		DBName:     getEnv(prefix+"DB_NAME", "library"),
		SQLitePath: getEnv("SQLITE_PATH", "library.db"),
	}
}

const defaultJWTSecret = "default_secret"

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	return JWTConfig{
		Secret:     getEnv(modePrefix(mode)+"JWT_SECRET", getEnv("JWT_SECRET", defaultJWTSecret)),
		ExpiryMins: getEnvInt("JWT_EXPIRES_MINUTES", 60),
	}
}

func loadPaginationConfig() PaginationConfig {
	return PaginationConfig{
		DefaultLimit: getEnvInt("PAGINATION_DEFAULT_LIMIT", 10),
		MaxLimit:     getEnvInt("PAGINATION_MAX_LIMIT", 100),
	}
}

func loadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Max:    getEnvInt("RATE_LIMIT_MAX", 100),
		Window: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
	}
}

func loadSeedConfig() SeedConfig {
	seed, _ := strconv.ParseBool(getEnv("SEED_ADMIN", "false"))

	return SeedConfig{
		Admin:         seed,
		AdminName:     getEnv("SEED_ADMIN_NAME", "Administrator"),
		AdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@library.local"),
		AdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123456"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets a positive integer environment variable with default value
func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:3000"
	}
	return origins
}
