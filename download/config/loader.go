package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names for the Spotify credentials. They match the
// names the Spotify developer tooling conventionally uses.
const (
	EnvClientID     = "SPOTIPY_CLIENT_ID"
	EnvClientSecret = "SPOTIPY_CLIENT_SECRET"
)

// LoadConfig loads and validates settings from a YAML file.
func LoadConfig(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigError{
				Message: fmt.Sprintf("Configuration file not found: %s", path),
			}
		}
		return nil, &ConfigError{
			Message: fmt.Sprintf("Error reading configuration file: %v", err),
		}
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, &ConfigError{
			Message: fmt.Sprintf("Error parsing YAML file: %v", err),
		}
	}

	settings.SetDefaults()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Credentials holds the Spotify client-credential pair.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// LoadCredentials reads the Spotify credentials from the environment, after
// loading a .env file from the working directory when one exists. Both
// variables must be set; they are only needed for Spotify inputs, so the
// caller decides when a missing pair is fatal.
func LoadCredentials() (*Credentials, error) {
	// Missing .env is fine; the variables may already be exported.
	_ = godotenv.Load()

	creds := &Credentials{
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
	}
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, &ConfigError{
			Message: fmt.Sprintf("Missing Spotify credentials. Set %s and %s in the environment or a .env file", EnvClientID, EnvClientSecret),
		}
	}
	return creds, nil
}
