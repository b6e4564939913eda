package config

import (
	"errors"
	"fmt"
	"os"
)

// TokenStore persists the session token under the auth.token key of the config file.
// The config file is the application's durable local storage:  the token written here
// survives restarts until an explicit logout or an invalid-session detection clears it.
type TokenStore struct{}

func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Load returns the currently persisted session token, or the empty string if none is
// stored.  A missing config file is not an error, just an absent token.
// The YOZORA_CONFIG_AUTH_TOKEN environment variable takes precedence over the file,
// matching the override order used by Load.
func (s *TokenStore) Load() (string, error) {
	if token := os.Getenv("YOZORA_CONFIG_AUTH_TOKEN"); token != "" {
		return token, nil
	}

	configPath, err := getConfigPath()
	if err != nil {
		return "", fmt.Errorf("unable to determine config file path: %w", err)
	}

	cfg, err := loadFromDisk(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}

	return cfg.Auth.Token, nil
}

// Save persists the token to the config file
func (s *TokenStore) Save(token string) error {
	return UpdateConfig(func(cfg *Config) {
		cfg.Auth.Token = token
	})
}

// Clear removes any persisted token from the config file
func (s *TokenStore) Clear() error {
	return s.Save("")
}
