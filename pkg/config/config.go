package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port        string
	Env         string
	Domain      string
	PostgresURL string
	MongoURI    string
	JWTSecret   string
}

// Load reads configuration from the environment. In production an empty
// JWT_SECRET is a hard error rather than a silently generated fallback.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		Domain:      getEnv("DOMAIN", "localhost:8080"),
		PostgresURL: getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:    getEnv("MONGO_URI", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
	}

	if cfg.JWTSecret == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "dev-only-insecure-secret"
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
