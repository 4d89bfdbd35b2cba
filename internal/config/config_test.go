package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SVGTSX_CONFIG", "")
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "info", c.Log.Level)
	require.Equal(t, "console", c.Log.Format)
	require.False(t, c.Telemetry.Enabled)
	require.Equal(t, ThemeConfig{R: 47, G: 47, B: 47}, c.Theme)
	require.NoError(t, c.Validate())
}

func TestLoad_FileAndEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(`
[log]
level = "debug"
format = "json"

[theme]
r = 250
g = 250
b = 250

[dialog]
start_dir = "/srv/icons"
show_hidden = true
`), 0o644)
	require.NoError(t, err)
	t.Setenv("SVGTSX_CONFIG", path)
	t.Setenv("SVGTSX_LOG_LEVEL", "warn")
	t.Setenv("SVGTSX_THEME_G", "10")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "warn", c.Log.Level)
	require.Equal(t, "json", c.Log.Format)
	require.Equal(t, ThemeConfig{R: 250, G: 10, B: 250}, c.Theme)
	require.Equal(t, "/srv/icons", c.Dialog.StartDir)
	require.True(t, c.Dialog.ShowHidden)
}

func TestLoad_HomeConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SVGTSX_CONFIG", "")
	dir := filepath.Join(home, ".config", "svgtsx")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[telemetry]\nenabled = true\nendpoint = \"localhost:4318\"\n"), 0o644))

	c, err := Load()
	require.NoError(t, err)
	require.True(t, c.Telemetry.Enabled)
	require.Equal(t, "localhost:4318", c.Telemetry.Endpoint)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	t.Setenv("SVGTSX_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := Config{Log: LogConfig{Format: "xml"}}
	require.Error(t, c.Validate())

	c = Config{Log: LogConfig{Format: "json"}, Telemetry: TelemetryConfig{Enabled: true}}
	require.Error(t, c.Validate())

	c.Telemetry.Endpoint = "collector:4318"
	require.NoError(t, c.Validate())
}
