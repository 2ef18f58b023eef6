package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	// Keep the test away from any real config on the machine.
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GH_ACTIVITY_HOME", t.TempDir())

	saved := Cfg
	t.Cleanup(func() { Cfg = saved })
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	loaded, err := Load(nil)
	require.NoError(t, err)
	assert.False(t, loaded)

	assert.Equal(t, "https://api.github.com", Cfg.GitHub.BaseUrl)
	assert.Equal(t, 10*time.Second, Cfg.GitHub.Timeout)
	assert.Equal(t, "gh-activity", Cfg.GitHub.UserAgent)
	assert.False(t, Cfg.Output.Timestamps)
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	content := "github:\n  baseurl: https://github.example.com\n  timeout: 3s\noutput:\n  timestamps: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	loaded, err := Load([]string{dir})
	require.NoError(t, err)
	assert.True(t, loaded)

	assert.Equal(t, "https://github.example.com", Cfg.GitHub.BaseUrl)
	assert.Equal(t, 3*time.Second, Cfg.GitHub.Timeout)
	assert.True(t, Cfg.Output.Timestamps)
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("GH_ACTIVITY_API_URL", "https://proxy.example.com")
	t.Setenv("GH_ACTIVITY_TIMEOUT", "30s")

	_, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "https://proxy.example.com", Cfg.GitHub.BaseUrl)
	assert.Equal(t, 30*time.Second, Cfg.GitHub.Timeout)
}

func TestLoadIgnoresBadEnvTimeout(t *testing.T) {
	isolate(t)
	t.Setenv("GH_ACTIVITY_TIMEOUT", "soon")

	_, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, Cfg.GitHub.Timeout)
}
