package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "survey-app-dev-secret-change-me"

// Config holds runtime configuration read from the environment
type Config struct {
	Env            string
	HTTPPort       string
	MongoURI       string
	MongoDatabase  string
	RedisAddr      string // empty disables the survey cache
	JWTSecret      string
	TokenTTL       time.Duration
	RequestTimeout time.Duration
	SurveyCacheTTL time.Duration
	AllowedOrigins string
}

// Load reads a .env file when present, then the process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not read .env file", "error", err)
	}

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		HTTPPort:       getEnv("PORT", "5000"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGO_DB", "survey_app"),
		RedisAddr:      strings.TrimPrefix(os.Getenv("REDIS_URI"), "redis://"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       getDuration("TOKEN_TTL", 100*time.Hour),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),
		SurveyCacheTTL: getDuration("SURVEY_CACHE_TTL", 10*time.Minute),
		AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, errors.New("JWT_SECRET must be set outside development")
		}
		slog.Warn("JWT_SECRET not set, using development secret")
		cfg.JWTSecret = devJWTSecret
	}
	return cfg, nil
}

// IsDevelopment reports whether error details may be exposed to clients
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", raw, "default", defaultVal)
		return defaultVal
	}
	return d
}
