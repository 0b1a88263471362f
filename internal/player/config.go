package player

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mkolarik/sayso/internal/language"
)

// Config is the player's runtime configuration: where the speech proxy
// lives, the credential to present, and local defaults.
type Config struct {
	ServiceURL   string `yaml:"service_url"`
	ServiceToken string `yaml:"service_token"`
	Language     string `yaml:"language"`
	RemoteAddr   string `yaml:"remote_addr"`    // remote-control listen address; "off" disables
	ShareBaseURL string `yaml:"share_base_url"` // base for generated share URLs
}

func defaultConfig() Config {
	return Config{
		ServiceURL:   "http://localhost:8080",
		Language:     language.Default,
		RemoteAddr:   "127.0.0.1:7707",
		ShareBaseURL: "http://localhost:7707/player",
	}
}

// DefaultConfigPath is where LoadConfig looks when no path is given.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sayso", "config.yaml"), nil
}

// LoadConfig reads the YAML config file and applies environment overrides
// (SAYSO_SERVICE_URL, SAYSO_SERVICE_TOKEN, SAYSO_LANGUAGE,
// SAYSO_REMOTE_ADDR, SAYSO_SHARE_BASE_URL). A missing file is fine; the
// defaults cover local development.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		p, err := DefaultConfigPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// fall through to env overrides
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.Language == "" || !language.Known(cfg.Language) {
		cfg.Language = language.Default
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SAYSO_SERVICE_URL"); v != "" {
		cfg.ServiceURL = v
	}
	if v := os.Getenv("SAYSO_SERVICE_TOKEN"); v != "" {
		cfg.ServiceToken = v
	}
	if v := os.Getenv("SAYSO_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("SAYSO_REMOTE_ADDR"); v != "" {
		cfg.RemoteAddr = v
	}
	if v := os.Getenv("SAYSO_SHARE_BASE_URL"); v != "" {
		cfg.ShareBaseURL = v
	}
}
