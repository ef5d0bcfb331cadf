package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables consulted when the config file carries no Spotify credentials.
const (
	EnvClientID     = "SPOTIFY_CLIENT_ID"
	EnvClientSecret = "SPOTIFY_CLIENT_SECRET"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Logging     LoggingConfig     `toml:"logging"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoggingConfig contains logger settings applied once at startup.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Credentials is a resolved, immutable client id/secret pair.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// ResolveSpotifyCredentials resolves credentials once, preferring config values and falling back to the SPOTIFY_CLIENT_ID / SPOTIFY_CLIENT_SECRET environment variables.
//
// Returns [ErrMissingCredentials] when a value is absent from both sources.
func ResolveSpotifyCredentials(config *Config) (Credentials, error) {
	creds := Credentials{}

	if config != nil {
		creds.ClientID = config.Credentials.Spotify.ClientID
		creds.ClientSecret = config.Credentials.Spotify.ClientSecret
	}

	if creds.ClientID == "" {
		creds.ClientID = os.Getenv(EnvClientID)
	}
	if creds.ClientSecret == "" {
		creds.ClientSecret = os.Getenv(EnvClientSecret)
	}

	if creds.ClientID == "" {
		return Credentials{}, fmt.Errorf("%w: client_id not set in config or %s", ErrMissingCredentials, EnvClientID)
	}
	if creds.ClientSecret == "" {
		return Credentials{}, fmt.Errorf("%w: client_secret not set in config or %s", ErrMissingCredentials, EnvClientSecret)
	}

	return creds, nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
