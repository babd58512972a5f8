package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 800, cfg.Render.Width)
	assert.Equal(t, 600, cfg.Render.Height)
	assert.False(t, cfg.Render.FilterOrphan)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	assert.Equal(t, "/tmp/test-xdg/graphfocus", ConfigDir())
	assert.Equal(t, "/tmp/test-xdg/graphfocus/config.toml", DefaultPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".config", "graphfocus"), ConfigDir())
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[render]
width = 1024
filter_orphan = true

[graph]
focusColor = "red"
fontSize = 12.5

[log]
level = "debug"
format = "json"

[server]
addr = "127.0.0.1:9000"

[unknown]
ignored = true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Render.Width)
	assert.Equal(t, 600, cfg.Render.Height, "unset keys keep defaults")
	assert.True(t, cfg.Render.FilterOrphan)
	require.NotNil(t, cfg.Graph.FocusColor)
	assert.Equal(t, "red", *cfg.Graph.FocusColor)
	require.NotNil(t, cfg.Graph.FontSize)
	assert.Equal(t, 12.5, *cfg.Graph.FontSize)
	assert.Nil(t, cfg.Graph.NodeColor)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"negative width": "[render]\nwidth = -1\n",
		"bad level":      "[log]\nlevel = \"loud\"\n",
		"bad format":     "[log]\nformat = \"xml\"\n",
		"empty addr":     "[server]\naddr = \"\"\n",
		"bad toml":       "[render\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Render.Width = 640
	red := "red"
	cfg.Graph.HoverColor = &red

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, loaded.Render.Width)
	require.NotNil(t, loaded.Graph.HoverColor)
	assert.Equal(t, "red", *loaded.Graph.HoverColor)
}
