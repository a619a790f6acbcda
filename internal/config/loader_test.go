package config

import (
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"REUNIONPRO_HTTP_PORT",
		"DAILY_API_KEY",
		"OPENAI_API_KEY",
		"REUNIONPRO_UPLOAD_DIR",
		"REUNIONPRO_SQLITE_DSN",
		"REUNIONPRO_DAILY_API_URL",
		"REUNIONPRO_OPENAI_API_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HTTPPort != 4000 {
		t.Fatalf("expected default port 4000, got %d", cfg.HTTPPort)
	}
	if cfg.UploadDir != "uploads" {
		t.Fatalf("expected default upload dir, got %q", cfg.UploadDir)
	}
	if cfg.DailyAPIKey != "" || cfg.OpenAIAPIKey != "" {
		t.Fatalf("expected empty API keys, got %+v", cfg)
	}
	if cfg.SQLiteDSN != "" {
		t.Fatalf("expected archive to be disabled by default, got %q", cfg.SQLiteDSN)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("REUNIONPRO_HTTP_PORT", "8080")
	t.Setenv("DAILY_API_KEY", "daily-key")
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("REUNIONPRO_UPLOAD_DIR", "/tmp/reunion-uploads")
	t.Setenv("REUNIONPRO_SQLITE_DSN", "meetings.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HTTPPort != 8080 {
		t.Fatalf("expected port 8080, got %d", cfg.HTTPPort)
	}
	if cfg.DailyAPIKey != "daily-key" || cfg.OpenAIAPIKey != "openai-key" {
		t.Fatalf("unexpected API keys: %+v", cfg)
	}
	if cfg.UploadDir != "/tmp/reunion-uploads" {
		t.Fatalf("unexpected upload dir: %q", cfg.UploadDir)
	}
	if cfg.SQLiteDSN != "meetings.db" {
		t.Fatalf("unexpected sqlite DSN: %q", cfg.SQLiteDSN)
	}
}

func TestLoadTrimsWhitespace(t *testing.T) {
	clearEnv(t)
	t.Setenv("DAILY_API_KEY", "  daily-key  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DailyAPIKey != "daily-key" {
		t.Fatalf("expected trimmed key, got %q", cfg.DailyAPIKey)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	for _, value := range []string{"abc", "-1", "0"} {
		t.Run(value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("REUNIONPRO_HTTP_PORT", value)

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for port %q", value)
			}
			if !strings.Contains(err.Error(), "REUNIONPRO_HTTP_PORT") {
				t.Fatalf("expected error to name the variable, got %v", err)
			}
		})
	}
}
