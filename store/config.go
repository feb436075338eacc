// ABOUTME: Apper record-store credentials and endpoint configuration
// ABOUTME: Loads from environment/.env with an XDG credentials file fallback
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

const defaultBaseURL = "https://api.apper.io"

// Config holds everything needed to reach the remote record store.
type Config struct {
	BaseURL   string `json:"base_url"`
	ProjectID string `json:"project_id"`
	PublicKey string `json:"public_key"`
}

// CredentialsPath returns the XDG path where `apexcrm configure` stores keys.
func CredentialsPath() string {
	return filepath.Join(xdg.ConfigHome, "apexcrm", "credentials.json")
}

// LoadConfig resolves configuration in order: .env file, process environment,
// saved credentials file. Environment always wins over the saved file.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:   os.Getenv("APPER_BASE_URL"),
		ProjectID: os.Getenv("APPER_PROJECT_ID"),
		PublicKey: os.Getenv("APPER_PUBLIC_KEY"),
	}

	if cfg.ProjectID == "" || cfg.PublicKey == "" {
		if saved, err := loadCredentialsFile(); err == nil {
			if cfg.BaseURL == "" {
				cfg.BaseURL = saved.BaseURL
			}
			if cfg.ProjectID == "" {
				cfg.ProjectID = saved.ProjectID
			}
			if cfg.PublicKey == "" {
				cfg.PublicKey = saved.PublicKey
			}
		}
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	if cfg.ProjectID == "" || cfg.PublicKey == "" {
		return nil, fmt.Errorf("missing Apper credentials: set APPER_PROJECT_ID and APPER_PUBLIC_KEY or run `apexcrm configure`")
	}

	return cfg, nil
}

// SaveCredentials writes the credentials file with restricted permissions.
func SaveCredentials(cfg *Config) error {
	path := CredentialsPath()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create credentials file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	return nil
}

func loadCredentialsFile() (*Config, error) {
	f, err := os.Open(CredentialsPath())
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode credentials: %w", err)
	}

	return &cfg, nil
}
