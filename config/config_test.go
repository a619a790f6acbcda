package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("REUNIONCTL_API_URL", "")
	t.Setenv("REUNIONCTL_RECORDINGS_DIR", "")
	t.Setenv("REUNIONCTL_DISPLAY_NAME", "")
}

func TestLoadDefaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.NotEmpty(t, cfg.RecordingsDir)
	assert.DirExists(t, cfg.RecordingsDir)
}

func TestLoadFromFile(t *testing.T) {
	isolateConfig(t)
	configDir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "reunionctl")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	recordingsDir := filepath.Join(t.TempDir(), "enregistrements")
	content := `
api_url = "https://reunion.example.com"
recordings_dir = "` + recordingsDir + `"
display_name = "Alice"
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://reunion.example.com", cfg.APIURL)
	assert.Equal(t, recordingsDir, cfg.RecordingsDir)
	assert.Equal(t, "Alice", cfg.DisplayName)
}

func TestEnvOverridesFile(t *testing.T) {
	isolateConfig(t)
	configDir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "reunionctl")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(`api_url = "https://file.example.com"`), 0o644))

	t.Setenv("REUNIONCTL_API_URL", "https://env.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.APIURL)
}
