package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Busyu.Seconds)
	assert.Nil(t, cfg.Yoji.Level)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[busyu]
seconds = 90
unlimited = true
min-count = 5

[yoji]
level = 2.5
mode = "missing"

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Busyu.Seconds)
	assert.Equal(t, 90, *cfg.Busyu.Seconds)
	require.NotNil(t, cfg.Busyu.Unlimited)
	assert.True(t, *cfg.Busyu.Unlimited)
	assert.Equal(t, 5, *cfg.Busyu.MinCount)
	assert.Nil(t, cfg.Busyu.Bonus)
	assert.InDelta(t, 2.5, *cfg.Yoji.Level, 1e-9)
	assert.Equal(t, "missing", *cfg.Yoji.Mode)
	assert.Equal(t, "debug", *cfg.Log.Level)
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[busyu]\nsecs = 1\n"), 0o644))
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "busyu.secs")
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	assert.Equal(t, filepath.Join("/tmp/cfg", "kanjiquiz", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/tmp/data", "kanjiquiz", "kanjiquiz.db"), DefaultDBPath())
	assert.Equal(t, filepath.Join("/tmp/data", "kanjiquiz", "kanjiquiz.log"), DefaultLogPath())
}
