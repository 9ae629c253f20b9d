package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Identity IdentityConfig `toml:"identity"`
	Database DatabaseConfig `toml:"database"`
}

// APIConfig contains the book service base URL and per-operation paths.
//
// Paths are configuration because the deployed gateway routes each operation
// through its own stage path. A "{user_id}" segment is substituted at request
// time.
type APIConfig struct {
	BaseURL           string  `toml:"base_url"`
	BooksPath         string  `toml:"books_path"`
	AddBookPath       string  `toml:"add_book_path"`
	UpdateBookPath    string  `toml:"update_book_path"`
	DeleteBookPath    string  `toml:"delete_book_path"`
	UploadPath        string  `toml:"upload_path"`
	UserPath          string  `toml:"user_path"`
	UpdateUserPath    string  `toml:"update_user_path"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// IdentityConfig contains the identity provider endpoints and client credentials.
type IdentityConfig struct {
	BaseURL      string `toml:"base_url"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	TokenPath    string `toml:"token_path"`
	UserInfoPath string `toml:"userinfo_path"`
	RevokePath   string `toml:"revoke_path"`
	SignUpPath   string `toml:"signup_path"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
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
		return fmt.Errorf("config file already exists at %s: %w", path, ErrInvalidArgument)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overlays environment variables onto the config. Variables win over
// file values so credentials can stay out of config.toml.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("BOOKCAT_API_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("BOOKCAT_IDENTITY_BASE_URL"); v != "" {
		c.Identity.BaseURL = v
	}
	if v := os.Getenv("BOOKCAT_CLIENT_ID"); v != "" {
		c.Identity.ClientID = v
	}
	if v := os.Getenv("BOOKCAT_CLIENT_SECRET"); v != "" {
		c.Identity.ClientSecret = v
	}
	if v := os.Getenv("BOOKCAT_DB_PATH"); v != "" {
		c.Database.Path = v
	}
}
