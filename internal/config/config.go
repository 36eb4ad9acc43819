package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Auth          AuthConfig
	AdminOverride AdminOverrideConfig
	RateLimit     RateLimitConfig
	CORS          CORSConfig
	Logging       LoggingConfig
	Environment   string
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URI  string
	Name string
}

type AuthConfig struct {
	JWTSecret string
	JWTExpiry time.Duration
	Issuer    string
}

// AdminOverrideConfig is the environment-configured administrator account.
// Login with these credentials yields a synthetic admin identity with no
// backing user document.
type AdminOverrideConfig struct {
	Email     string
	Password  string
	Username  string
	FirstName string
	LastName  string
}

type RateLimitConfig struct {
	PublicPerMinute   int
	LoginPer15Minutes int
}

type CORSConfig struct {
	AllowedOrigins  []string
	AllowAllOrigins bool
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			URI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Name: getEnv("MONGO_DB", "campushub"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 720)) * time.Hour,
			Issuer:    getEnv("JWT_ISSUER", "campushub"),
		},
		AdminOverride: AdminOverrideConfig{
			Email:     getEnv("ADMIN_EMAIL", ""),
			Password:  getEnv("ADMIN_PASSWORD", ""),
			Username:  getEnv("ADMIN_USERNAME", ""),
			FirstName: getEnv("ADMIN_FIRST_NAME", ""),
			LastName:  getEnv("ADMIN_LAST_NAME", ""),
		},
		RateLimit: RateLimitConfig{
			PublicPerMinute:   getEnvInt("RATE_LIMIT_PUBLIC", 120),
			LoginPer15Minutes: getEnvInt("RATE_LIMIT_LOGIN", 10),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	origins := getEnv("CORS_ALLOWED_ORIGINS", "")
	if origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, trimmed)
			}
		}
	}
	cfg.CORS.AllowAllOrigins = cfg.Environment == "development" && len(cfg.CORS.AllowedOrigins) == 0

	if cfg.Auth.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
