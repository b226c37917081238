package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port          string        `envconfig:"PORT" default:"8080"`
	DatabaseURL   string        `envconfig:"DATABASE_URL"`
	JWTSecret     string        `envconfig:"JWT_SECRET"`
	JWTIssuer     string        `envconfig:"JWT_ISSUER" default:"invoice-dashboard"`
	JWTTTLMinutes int           `envconfig:"JWT_TTL_MINUTES" default:"60"`
	CORSOrigins   []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	RedisURL      string        `envconfig:"REDIS_URL"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	SeedOnStart   bool          `envconfig:"SEED_ON_START" default:"false"`
	BcryptCost    int           `envconfig:"BCRYPT_COST" default:"10"`
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	cfg.Port = strings.TrimSpace(cfg.Port)
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)
	cfg.RedisURL = strings.TrimSpace(cfg.RedisURL)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.CORSOrigins = normalizeOrigins(cfg.CORSOrigins)

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTTTLMinutes <= 0 {
		cfg.JWTTTLMinutes = 60
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// JWTTTL is the lifetime of issued tokens.
func (c Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLMinutes) * time.Minute
}

// CacheEnabled reports whether a redis view cache is configured.
func (c Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

func normalizeOrigins(in []string) []string {
	var out []string
	for _, part := range in {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
