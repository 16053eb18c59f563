package config

import (
	"errors"
	"os"
	"strings"
)

// ErrNoAPIKey is returned when no model API key is configured.
var ErrNoAPIKey = errors.New("no model API key configured")

// GetAPIKey returns the model API key from the configuration.
// It checks in order: SOMIND_MODEL_API_KEY, OPENAI_API_KEY, config file.
func GetAPIKey(cfg *Config) (string, error) {
	if key := os.Getenv("SOMIND_MODEL_API_KEY"); key != "" {
		return key, nil
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key, nil
	}

	if cfg != nil && cfg.Model.APIKey != "" {
		// Expand any remaining env var references
		key := os.ExpandEnv(cfg.Model.APIKey)
		if key != "" && !strings.HasPrefix(key, "${") {
			return key, nil
		}
	}

	return "", ErrNoAPIKey
}

// ValidateAPIKey performs basic validation on an API key.
// It checks format but does not verify the key with the provider.
func ValidateAPIKey(key string) error {
	if key == "" {
		return ErrNoAPIKey
	}

	if !strings.HasPrefix(key, "sk-") {
		return errors.New("invalid API key format: expected 'sk-' prefix")
	}

	if len(key) < 20 {
		return errors.New("invalid API key format: key too short")
	}

	return nil
}

// MaskAPIKey returns a masked version of the API key for display.
// Shows the first 3 characters (sk-) and last 4 characters.
func MaskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}

	if len(key) <= 11 {
		return "***"
	}

	return key[:3] + "..." + key[len(key)-4:]
}

// KeySource represents where an API key was loaded from.
type KeySource string

const (
	KeySourceEnv    KeySource = "environment"
	KeySourceConfig KeySource = "config_file"
	KeySourceNone   KeySource = "none"
)

// GetAPIKeySource returns where the API key was sourced from.
func GetAPIKeySource(cfg *Config) KeySource {
	if os.Getenv("SOMIND_MODEL_API_KEY") != "" || os.Getenv("OPENAI_API_KEY") != "" {
		return KeySourceEnv
	}

	if cfg != nil && cfg.Model.APIKey != "" {
		key := os.ExpandEnv(cfg.Model.APIKey)
		if key != "" && !strings.HasPrefix(key, "${") {
			return KeySourceConfig
		}
	}

	return KeySourceNone
}
