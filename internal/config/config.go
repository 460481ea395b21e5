// Package config reads the rate-lookup settings from the environment,
// optionally seeded from a .env file.
package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/bankview-dev/bankview/internal/exchange"
)

// Environment variable names for the rate-lookup API.
const (
	EnvAPIKey  = "EXCHANGE_API_KEY"
	EnvBaseURL = "EXCHANGE_API_URL"
)

// FromEnv loads a .env file when present and returns the exchange
// configuration. Validation happens at client construction, not here.
func FromEnv() exchange.Config {
	// Missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	return exchange.Config{
		APIKey:  os.Getenv(EnvAPIKey),
		BaseURL: os.Getenv(EnvBaseURL),
	}
}
