package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleConfig = `
llm:
  provider: openai
  base_url: https://api.example.com
  api_key: dummy
  model: gpt-4o
server:
  host: 0.0.0.0
  port: "8080"
storage:
  backend: bolt
  path: /tmp/case.bolt
export:
  line_width: 60
  page_height: 250
`

// TestLoad_File verifies that Load unmarshals a yaml file and keeps defaults for unset keys.
func TestLoad_File(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
	require.NoError(t, err)
	_, err = tmp.WriteString(sampleConfig)
	require.NoError(t, err)
	require.NoError(t, tmp.Close())

	t.Setenv("CONFIG_PATH", tmp.Name())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "openai", cfg.LLM.Provider)
	require.Equal(t, "gpt-4o", cfg.LLM.Model)
	require.Equal(t, "bolt", cfg.Storage.Backend)
	require.Equal(t, "/tmp/case.bolt", cfg.Storage.Path)
	require.Equal(t, 60, cfg.Export.LineWidth)
	require.Equal(t, 250.0, cfg.Export.PageHeight)
	require.Equal(t, 20.0, cfg.Export.TopMargin)
	require.Equal(t, 7.0, cfg.Export.LineHeight)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "mock", cfg.LLM.Provider)
	require.Equal(t, "sqlite", cfg.Storage.Backend)
	require.Equal(t, 90, cfg.Export.LineWidth)
	require.Equal(t, 200, cfg.Evidence.PreviewWidth)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("CASEHELPER_LLM_PROVIDER", "gemini")
	t.Setenv("CASEHELPER_STORAGE_BACKEND", "memory")
	t.Setenv("CASEHELPER_LLM_API_KEY", "secret")
	t.Setenv("CASEHELPER_LLM_MODEL", "gemini-2.0-flash")
	t.Setenv("CASEHELPER_STORAGE_PATH", "/tmp/other.db")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "gemini", cfg.LLM.Provider)
	require.Equal(t, "memory", cfg.Storage.Backend)
	require.Equal(t, "secret", cfg.LLM.APIKey)
	require.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	require.Equal(t, "/tmp/other.db", cfg.Storage.Path)
}

// TestLoad_ModelLeftToProvider verifies no model is forced on a provider that
// did not name one, so each client can use its own default.
func TestLoad_ModelLeftToProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  provider: openai\n  api_key: k\n"), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "openai", cfg.LLM.Provider)
	require.Empty(t, cfg.LLM.Model)
}

func TestLoad_StoragePathLeftToBackend(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("CASEHELPER_STORAGE_BACKEND", "bolt")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "bolt", cfg.Storage.Backend)
	require.Empty(t, cfg.Storage.Path)
}
