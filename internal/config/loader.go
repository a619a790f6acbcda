package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config captures environment driven configuration values for the proxy
// service. API keys may be absent: the health endpoint reports their
// presence and provider routes fail with an explanatory error.
type Config struct {
	HTTPPort     int
	DailyAPIKey  string
	OpenAIAPIKey string
	UploadDir    string
	SQLiteDSN    string
	DailyAPIURL  string
	OpenAIAPIURL string
}

// Load parses configuration values from the current process environment.
//
// Optional fields fall back to sensible defaults; invalid values are
// reported with localized error messages.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:  4000,
		UploadDir: "uploads",
	}

	invalid := make([]string, 0, 1)

	if portValue := strings.TrimSpace(os.Getenv("REUNIONPRO_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "REUNIONPRO_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	cfg.DailyAPIKey = strings.TrimSpace(os.Getenv("DAILY_API_KEY"))
	cfg.OpenAIAPIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))

	if dir := strings.TrimSpace(os.Getenv("REUNIONPRO_UPLOAD_DIR")); dir != "" {
		cfg.UploadDir = dir
	}
	if dsn := strings.TrimSpace(os.Getenv("REUNIONPRO_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}
	if u := strings.TrimSpace(os.Getenv("REUNIONPRO_DAILY_API_URL")); u != "" {
		cfg.DailyAPIURL = u
	}
	if u := strings.TrimSpace(os.Getenv("REUNIONPRO_OPENAI_API_URL")); u != "" {
		cfg.OpenAIAPIURL = u
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("valeurs de variables d'environnement invalides : %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
