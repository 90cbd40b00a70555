package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist", ConfigFile))
	require.Error(t, err, "an explicit path must exist")

	// Without an explicit path, the missing default file is tolerated.
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.Chdir(t.TempDir()))

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "sgip.db", cfg.StorePath)
	assert.Equal(t, "dev-signing-key-change-in-production", cfg.SessionSigningKey)
	assert.Empty(t, cfg.Insight.Endpoint)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(`
store_path: /var/lib/sgip/parish.db
insight:
  endpoint: https://insight.example.cm/v1
  api_key: secret-key
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/sgip/parish.db", cfg.StorePath)
	assert.Equal(t, "https://insight.example.cm/v1", cfg.Insight.Endpoint)
	assert.Equal(t, "secret-key", cfg.Insight.APIKey)
	// Fields the file omits keep their defaults.
	assert.Equal(t, "dev-signing-key-change-in-production", cfg.SessionSigningKey)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("store_path: from-file.db\n"), 0o600))

	t.Setenv("SGIP_STORE_PATH", "from-env.db")
	t.Setenv("SGIP_SESSION_SIGNING_KEY", "env-key")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.StorePath)
	assert.Equal(t, "env-key", cfg.SessionSigningKey)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("store_path: [unclosed"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestMerge_IgnoresZeroFields(t *testing.T) {
	cfg := Default()
	cfg.Merge(Config{Insight: InsightConfig{Endpoint: "https://x"}})
	assert.Equal(t, "sgip.db", cfg.StorePath)
	assert.Equal(t, "https://x", cfg.Insight.Endpoint)
}
