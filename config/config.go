// ABOUTME: Configuration loader for the simulation server
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Host string // bind address, empty = all interfaces
	Port string

	// Inventory response cache
	CacheTTL int // seconds

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting on control endpoints (default: true)
	RateLimitWrite   int  // Requests per minute for POST endpoints (default: 60)
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func Load() (*Config, error) {
	// A .env file is optional; real environment variables take precedence.
	_ = godotenv.Load()

	cfg := &Config{
		Host:             getEnv("HOST", ""),
		Port:             getEnv("PORT", "8000"),
		CacheTTL:         getEnvInt("CACHE_TTL", 300),
		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitWrite:   getEnvInt("RATE_LIMIT_WRITE", 60),
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	if cfg.CacheTTL < 1 {
		return nil, fmt.Errorf("CACHE_TTL must be positive, got %d", cfg.CacheTTL)
	}
	if cfg.RateLimitWrite < 1 || cfg.RateLimitWrite > 10000 {
		return nil, fmt.Errorf("RATE_LIMIT_WRITE must be between 1 and 10000, got %d", cfg.RateLimitWrite)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
