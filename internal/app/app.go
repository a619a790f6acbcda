package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/example/reunionpro/config"
	"github.com/example/reunionpro/internal/pipeline"
	"github.com/example/reunionpro/internal/provision"
)

// App bundles the clients the CLI commands depend on.
type App struct {
	Provisioner *provision.Client
	Pipeline    *pipeline.Client

	apiURL     string
	httpClient *http.Client
}

func New(cfg *config.Config) *App {
	return &App{
		Provisioner: provision.NewClient(cfg.APIURL),
		Pipeline:    pipeline.NewClient(cfg.APIURL),
		apiURL:      strings.TrimRight(cfg.APIURL, "/"),
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Health reports the backend's credential status from its health endpoint.
type Health struct {
	Status string `json:"status"`
	Daily  bool   `json:"daily"`
	OpenAI bool   `json:"openai"`
}

func (a *App) Health(ctx context.Context) (Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.apiURL+"/api/health", nil)
	if err != nil {
		return Health{}, err
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return Health{}, fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Health{}, fmt.Errorf("backend health check failed with HTTP %d", resp.StatusCode)
	}
	var health Health
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return Health{}, fmt.Errorf("decode health response: %w", err)
	}
	return health, nil
}
