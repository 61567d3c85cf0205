package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/wealthflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WEALTHFLOW_CONFIG", "")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "TWD", c.Currency)
	assert.Equal(t, "sqlite", c.Storage.Driver)
	assert.Equal(t, 8, c.Scenario.Limit)
	assert.Equal(t, 2*time.Second, c.Autosave.Delay)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, "gemini-2.5-flash", c.Gemini.Model)
	assert.IsType(t, wealthflow.NameLinker{}, c.Linker())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
currency: EUR
gemini:
  api_key: from-file
  language: French
storage:
  driver: memory
scenario:
  limit: 3
  linker: explicit+name
autosave:
  delay: 500ms
`), 0o644))
	t.Setenv("WEALTHFLOW_CONFIG", file)
	t.Setenv("WEALTHFLOW_GEMINI_API_KEY", "from-env")
	t.Setenv("WEALTHFLOW_SERVER_JWT_SECRET", "s3cret")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "EUR", c.Currency)
	assert.Equal(t, "from-env", c.Gemini.APIKey)
	assert.Equal(t, "French", c.Gemini.Language)
	assert.Equal(t, "memory", c.Storage.Driver)
	assert.Equal(t, 3, c.Scenario.Limit)
	assert.Equal(t, 500*time.Millisecond, c.Autosave.Delay)
	assert.Equal(t, "s3cret", c.Server.JWTSecret)
	assert.IsType(t, wealthflow.AnyLinker{}, c.Linker())
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WEALTHFLOW_CONFIG", "")

	t.Setenv("WEALTHFLOW_STORAGE_DRIVER", "mongodb")
	_, err := Load()
	assert.ErrorContains(t, err, "storage.driver")

	t.Setenv("WEALTHFLOW_STORAGE_DRIVER", "memory")
	t.Setenv("WEALTHFLOW_SCENARIO_LINKER", "regexp")
	_, err = Load()
	assert.ErrorContains(t, err, "scenario.linker")

	t.Setenv("WEALTHFLOW_SCENARIO_LINKER", "name")
	t.Setenv("WEALTHFLOW_SCENARIO_LIMIT", "0")
	_, err = Load()
	assert.ErrorContains(t, err, "scenario.limit")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("WEALTHFLOW_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))
	_, err := Load()
	assert.Error(t, err)
}
