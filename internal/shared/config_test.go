package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./playdex.db" {
			t.Errorf("expected database path ./playdex.db, got %s", config.Database.Path)
		}

		if config.Logging.Level != "info" {
			t.Errorf("expected logging level info, got %s", config.Logging.Level)
		}

		if config.Credentials.Spotify.ClientID != "" {
			t.Errorf("expected blank spotify client_id, got %s", config.Credentials.Spotify.ClientID)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[logging]
level = "debug"

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected custom database path, got %s", config.Database.Path)
		}
		if config.Logging.Level != "debug" {
			t.Errorf("expected debug level, got %s", config.Logging.Level)
		}
		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected test_client_id, got %s", config.Credentials.Spotify.ClientID)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}

func TestResolveSpotifyCredentials(t *testing.T) {
	t.Run("From Config", func(t *testing.T) {
		config := &Config{}
		config.Credentials.Spotify.ClientID = "cfg_id"
		config.Credentials.Spotify.ClientSecret = "cfg_secret"

		creds, err := ResolveSpotifyCredentials(config)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if creds.ClientID != "cfg_id" || creds.ClientSecret != "cfg_secret" {
			t.Errorf("expected config credentials, got %+v", creds)
		}
	})

	t.Run("Env Fallback", func(t *testing.T) {
		t.Setenv(EnvClientID, "env_id")
		t.Setenv(EnvClientSecret, "env_secret")

		creds, err := ResolveSpotifyCredentials(&Config{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if creds.ClientID != "env_id" || creds.ClientSecret != "env_secret" {
			t.Errorf("expected env credentials, got %+v", creds)
		}
	})

	t.Run("Config Wins Over Env", func(t *testing.T) {
		t.Setenv(EnvClientID, "env_id")
		t.Setenv(EnvClientSecret, "env_secret")

		config := &Config{}
		config.Credentials.Spotify.ClientID = "cfg_id"

		creds, err := ResolveSpotifyCredentials(config)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if creds.ClientID != "cfg_id" {
			t.Errorf("expected config client_id to win, got %s", creds.ClientID)
		}
		if creds.ClientSecret != "env_secret" {
			t.Errorf("expected env secret fallback, got %s", creds.ClientSecret)
		}
	})

	t.Run("Missing Client ID", func(t *testing.T) {
		t.Setenv(EnvClientID, "")
		t.Setenv(EnvClientSecret, "env_secret")

		_, err := ResolveSpotifyCredentials(&Config{})
		if !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("Missing Client Secret", func(t *testing.T) {
		t.Setenv(EnvClientID, "env_id")
		t.Setenv(EnvClientSecret, "")

		_, err := ResolveSpotifyCredentials(&Config{})
		if !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("Nil Config", func(t *testing.T) {
		t.Setenv(EnvClientID, "env_id")
		t.Setenv(EnvClientSecret, "env_secret")

		creds, err := ResolveSpotifyCredentials(nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if creds.ClientID != "env_id" {
			t.Errorf("expected env client_id, got %s", creds.ClientID)
		}
	})
}
