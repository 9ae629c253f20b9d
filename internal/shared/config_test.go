package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "bookcat.db" {
			t.Errorf("expected database path bookcat.db, got %s", config.Database.Path)
		}

		if config.API.BooksPath != "/books/{user_id}" {
			t.Errorf("expected books path /books/{user_id}, got %s", config.API.BooksPath)
		}

		if config.API.RequestsPerSecond != 5.0 {
			t.Errorf("expected 5 requests per second, got %f", config.API.RequestsPerSecond)
		}

		if config.Identity.TokenPath != "/oauth2/token" {
			t.Errorf("expected token path /oauth2/token, got %s", config.Identity.TokenPath)
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

[api]
base_url = "https://books.example.com"
books_path = "/v2/books/{user_id}"
add_book_path = "/v2/addbook"
requests_per_second = 2.5

[identity]
base_url = "https://id.example.com"
client_id = "test_client_id"
client_secret = "test_secret"
token_path = "/token"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.API.BaseURL != "https://books.example.com" {
			t.Errorf("expected base URL https://books.example.com, got %s", config.API.BaseURL)
		}

		if config.Identity.ClientID != "test_client_id" {
			t.Errorf("expected client_id test_client_id, got %s", config.Identity.ClientID)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv("BOOKCAT_API_BASE_URL", "https://override.example.com")
		t.Setenv("BOOKCAT_CLIENT_SECRET", "env_secret")

		config := DefaultConfig()
		config.ApplyEnv()

		if config.API.BaseURL != "https://override.example.com" {
			t.Errorf("expected env base URL to win, got %s", config.API.BaseURL)
		}

		if config.Identity.ClientSecret != "env_secret" {
			t.Errorf("expected env client secret to win, got %s", config.Identity.ClientSecret)
		}
	})
}
