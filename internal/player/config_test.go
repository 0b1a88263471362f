package player

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.ServiceURL != "http://localhost:8080" {
		t.Errorf("ServiceURL = %q, want %q", cfg.ServiceURL, "http://localhost:8080")
	}
	if cfg.Language != "ja" {
		t.Errorf("Language = %q, want %q", cfg.Language, "ja")
	}
	if cfg.RemoteAddr != "127.0.0.1:7707" {
		t.Errorf("RemoteAddr = %q, want %q", cfg.RemoteAddr, "127.0.0.1:7707")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
service_url: https://tts.example.com
service_token: secret123
language: vi
remote_addr: "off"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.ServiceURL != "https://tts.example.com" {
		t.Errorf("ServiceURL = %q", cfg.ServiceURL)
	}
	if cfg.ServiceToken != "secret123" {
		t.Errorf("ServiceToken = %q", cfg.ServiceToken)
	}
	if cfg.Language != "vi" {
		t.Errorf("Language = %q, want %q", cfg.Language, "vi")
	}
	if cfg.RemoteAddr != "off" {
		t.Errorf("RemoteAddr = %q, want %q", cfg.RemoteAddr, "off")
	}
	// Unset fields keep their defaults.
	if cfg.ShareBaseURL != "http://localhost:7707/player" {
		t.Errorf("ShareBaseURL = %q, want default", cfg.ShareBaseURL)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("service_url: https://file.example.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SAYSO_SERVICE_URL", "https://env.example.com")
	t.Setenv("SAYSO_LANGUAGE", "en")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.ServiceURL != "https://env.example.com" {
		t.Errorf("ServiceURL = %q, want env value", cfg.ServiceURL)
	}
	if cfg.Language != "en" {
		t.Errorf("Language = %q, want %q", cfg.Language, "en")
	}
}

func TestLoadConfigUnknownLanguageFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("language: klingon\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Language != "ja" {
		t.Errorf("Language = %q, want fallback %q", cfg.Language, "ja")
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("service_url: [unclosed\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() error = nil, want parse failure")
	}
}
