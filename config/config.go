// Package config provides configuration management for the jobbers application.
// It handles loading and validation of configuration values from environment
// variables, with support for required variables, default values, and
// collective error reporting: every problem found during loading is reported
// in one error instead of failing on the first.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// PoolConfig represents configuration for the database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	// JWTSecret is the symmetric key used to sign and verify tokens.
	JWTSecret string
	// TokenLifetime is how long an issued token stays valid. Defaults to 30 days.
	TokenLifetime time.Duration
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
	// ClientDir optionally points at a built single-page-app bundle to serve
	// alongside the API. Empty means the server is API-only.
	ClientDir string
}

// RateLimitConfig holds the per-client limits applied to the auth routes.
type RateLimitConfig struct {
	// AuthRequestsPerWindow and AuthWindow describe the allowance, e.g. 10
	// requests per 15 minutes.
	AuthRequestsPerWindow int
	AuthWindow            time.Duration
	// CleanupInterval controls how often idle per-client limiters are evicted.
	CleanupInterval time.Duration
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DB        *PoolConfig
	Auth      *AuthConfig
	Server    *ServerConfig
	RateLimit *RateLimitConfig
}

// getRequiredEnv reads a required environment variable, appending to the
// errors slice when it is not set.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv reads an optional environment variable with a default value.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt reads an optional environment variable parsed as an int.
// Uses defaultValue if not set; appends an error if parsing fails.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// getOptionalEnvDuration reads an optional environment variable parsed as a
// time.Duration ("30m", "720h"). Uses defaultValue if not set; appends an
// error if parsing fails.
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// clampPoolSize keeps the connection pool size within sane bounds.
func clampPoolSize(size int, varName string, errors *[]string) int {
	if size < 2 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is less than minimum 2, clamping to 2", varName, size))
		return 2
	}
	if size > 100 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100, clamping to 100", varName, size))
		return 100
	}
	return size
}

// LoadConfig creates and returns an AppConfig by reading and validating
// environment variables. It collects all errors encountered during loading
// and returns a single aggregated error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	// Database configuration.
	dbUser := getRequiredEnv("DB_USER", &errors)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errors)
	dbName := getRequiredEnv("DB_NAME", &errors)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errors)
	poolSize := clampPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errors), "DB_POOL_SIZE", &errors)

	dbConfig := &PoolConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	// Auth configuration. The token lifetime is a configuration constant, not
	// business logic; 30 days matches the lifetime the API has always issued.
	jwtSecret := getRequiredEnv("JWT_SECRET", &errors)
	tokenLifetime := getOptionalEnvDuration("JWT_LIFETIME", 720*time.Hour, &errors)

	authConfig := &AuthConfig{
		JWTSecret:     jwtSecret,
		TokenLifetime: tokenLifetime,
	}

	// Server configuration.
	serverConfig := &ServerConfig{
		Port:      getOptionalEnv("PORT", "5000"),
		ClientDir: getOptionalEnv("CLIENT_BUILD_DIR", ""),
	}

	// Rate limiting for the unauthenticated auth routes.
	rateLimitConfig := &RateLimitConfig{
		AuthRequestsPerWindow: getOptionalEnvInt("AUTH_RATE_LIMIT", 10, &errors),
		AuthWindow:            getOptionalEnvDuration("AUTH_RATE_WINDOW", 15*time.Minute, &errors),
		CleanupInterval:       getOptionalEnvDuration("AUTH_RATE_CLEANUP_INTERVAL", 5*time.Minute, &errors),
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		DB:        dbConfig,
		Auth:      authConfig,
		Server:    serverConfig,
		RateLimit: rateLimitConfig,
	}, nil
}
