package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, "server:\n  http-port: \":8080\"\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.HttpPort)
	// 未写入的字段取缺省值
	assert.Equal(t, "release", cfg.Server.RunMode)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "5m", cfg.Sync.AutoSyncInterval)
	assert.False(t, cfg.Sync.Storage.IsEnabled)
}

func TestLoadConfigEnvOverridesCredentials(t *testing.T) {
	path := writeConfigFile(t, "sync:\n  storage:\n    type: gdrive\n    is-enable: true\n")

	t.Setenv("GDRIVE_CREDENTIALS_FILE", "/secrets/credentials.json")
	t.Setenv("GDRIVE_TOKEN_FILE", "/secrets/token.json")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "gdrive", cfg.Sync.Storage.Type)
	assert.Equal(t, "/secrets/credentials.json", cfg.Sync.Storage.CredentialsFile)
	assert.Equal(t, "/secrets/token.json", cfg.Sync.Storage.TokenFile)
}

func TestConfigSave(t *testing.T) {
	path := writeConfigFile(t, "log:\n  level: warn\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	cfg.Log.Level = "debug"
	require.NoError(t, cfg.Save())

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", reloaded.Log.Level)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
