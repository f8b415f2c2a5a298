// Package config loads the store endpoint and credential from the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvRedisURL   = "REDIS_URL"
	EnvRedisToken = "REDIS_TOKEN"
)

// ErrConfigurationMissing is returned when the store endpoint is not configured.
var ErrConfigurationMissing = errors.New("configuration missing")

// Store holds the connection settings for the shared rate limit store.
type Store struct {
	URL   string
	Token string
}

// LoadEnvFiles loads .env.local and .env into the process environment.
// Variables already set are not overridden and missing files are ignored.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env.local", ".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	return nil
}

// StoreFromEnv reads the store settings once. It does not validate them.
func StoreFromEnv() Store {
	return Store{
		URL:   os.Getenv(EnvRedisURL),
		Token: os.Getenv(EnvRedisToken),
	}
}

// Validate reports ErrConfigurationMissing when no endpoint is set. The token is
// optional since a local Redis may not require one.
func (s Store) Validate() error {
	if s.URL == "" {
		return fmt.Errorf("%w: %s is not set", ErrConfigurationMissing, EnvRedisURL)
	}

	return nil
}
