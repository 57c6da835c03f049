package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "clipboard.db", cfg.DBPath)
	assert.Equal(t, "clipboard_cloud.db", cfg.ReplicaPath)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Empty(t, cfg.Key)
}

func TestLoad_JSONOverlayKeepsDefaultsForAbsentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"db_path": "/data/history.db", "page_size": 50}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/history.db", cfg.DBPath)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, "clipboard_cloud.db", cfg.ReplicaPath, "absent key keeps default")
}

func TestLoad_KeyFromEnvironment(t *testing.T) {
	t.Setenv(KeyEnvVar, "s3cret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Key)
}

func TestLoad_EnvOverridesJSONKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"key": "from-file"}`), 0o600))
	t.Setenv(KeyEnvVar, "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Key)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoad_MalformedJSONFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
