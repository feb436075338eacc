// ABOUTME: Tests for configuration resolution
// ABOUTME: Verifies environment precedence and missing-credential errors
package store

import (
	"strings"
	"testing"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APPER_BASE_URL", "https://example.test")
	t.Setenv("APPER_PROJECT_ID", "proj")
	t.Setenv("APPER_PUBLIC_KEY", "key")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.BaseURL != "https://example.test" {
		t.Errorf("unexpected base URL: %s", cfg.BaseURL)
	}
	if cfg.ProjectID != "proj" || cfg.PublicKey != "key" {
		t.Errorf("unexpected credentials: %+v", cfg)
	}
}

func TestLoadConfigDefaultBaseURL(t *testing.T) {
	t.Setenv("APPER_BASE_URL", "")
	t.Setenv("APPER_PROJECT_ID", "proj")
	t.Setenv("APPER_PUBLIC_KEY", "key")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.BaseURL != defaultBaseURL {
		t.Errorf("expected default base URL, got %s", cfg.BaseURL)
	}
}

func TestLoadConfigMissingCredentials(t *testing.T) {
	t.Setenv("APPER_PROJECT_ID", "")
	t.Setenv("APPER_PUBLIC_KEY", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := LoadConfig()
	if err == nil {
		t.Skip("credentials available outside the environment")
	}
	if !strings.Contains(err.Error(), "credentials") {
		t.Errorf("unexpected error: %v", err)
	}
}
