package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers accepted in STORE_DRIVER.
const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
	StoreSQLite   = "sqlite"
)

// defaultJWTSecret is only meant for local development.
const defaultJWTSecret = "your_secret_key"

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	SQLite   SQLiteConfig
	Redis    RedisConfig
	Auth     AuthConfig
	NewRelic NewRelicConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// StoreConfig selects the credential store backend.
type StoreConfig struct {
	Driver string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// MongoConfig holds MongoDB configuration.
type MongoConfig struct {
	URI      string
	Database string
}

// SQLiteConfig holds SQLite configuration.
type SQLiteConfig struct {
	Path string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// AuthConfig holds token and password hashing configuration.
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// UsesDefaultSecret reports whether JWT_SECRET was left unset.
func (c AuthConfig) UsesDefaultSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "5000"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			AllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", StorePostgres)),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ride_hailing"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "ride_hailing"),
		},
		SQLite: SQLiteConfig{
			Path: getEnv("SQLITE_PATH", "ride_hailing.db"),
		},
		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", true),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", defaultJWTSecret),
			TokenTTL:   getDurationEnv("JWT_TTL", 7*24*time.Hour),
			BcryptCost: getIntEnv("BCRYPT_COST", 10),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "ride-auth-service"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getListEnv splits a comma-separated value, dropping blanks.
func getListEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
