package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultAPIURL points at a locally running reunionpro backend.
const DefaultAPIURL = "http://localhost:4000"

type Config struct {
	APIURL        string
	RecordingsDir string
	DisplayName   string
}

type fileConfig struct {
	APIURL        string `toml:"api_url"`
	RecordingsDir string `toml:"recordings_dir"`
	DisplayName   string `toml:"display_name"`
}

func Load() (*Config, error) {
	cfg := &Config{
		APIURL:        DefaultAPIURL,
		RecordingsDir: defaultRecordingsDir(),
	}

	if configPath := configFilePath(); configPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(configPath, &fc); err == nil {
			if fc.APIURL != "" {
				cfg.APIURL = fc.APIURL
			}
			if fc.RecordingsDir != "" {
				cfg.RecordingsDir = expandTilde(fc.RecordingsDir)
			}
			cfg.DisplayName = fc.DisplayName
		}
	}

	applyEnvOverrides(cfg)

	if err := os.MkdirAll(cfg.RecordingsDir, 0o755); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("REUNIONCTL_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("REUNIONCTL_RECORDINGS_DIR"); v != "" {
		cfg.RecordingsDir = expandTilde(v)
	}
	if v := os.Getenv("REUNIONCTL_DISPLAY_NAME"); v != "" {
		cfg.DisplayName = v
	}
}

func configFilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "reunionctl")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "reunionctl")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func defaultRecordingsDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "reunions")
	}
	return filepath.Join(".", "reunions")
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
