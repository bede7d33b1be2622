package config

import (
	"codeberg.org/miketth/niriwindows/pkg/niri"
	"codeberg.org/miketth/niriwindows/pkg/niriwindows"
	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NIRI_SOCKET", "NIRILOG", "NIRIWINDOWS_ICON", "NIRIWINDOWS_OUTPUT",
		"NIRIWINDOWS_WORKSPACE", "NIRIWINDOWS_FORMAT", "NIRIWINDOWS_CACHE", "NIRIWINDOWS_CACHE_PATH",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("NIRI_SOCKET", "/run/user/1000/niri.sock")
	t.Setenv("NIRILOG", "1")
	t.Setenv("NIRIWINDOWS_ICON", "#")
	t.Setenv("NIRIWINDOWS_OUTPUT", "DP-1")
	t.Setenv("NIRIWINDOWS_CACHE", "memory")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "/run/user/1000/niri.sock", cfg.SocketPath)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "#", cfg.Icon)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, CacheMemory, cfg.Cache)
	assert.Empty(t, cfg.CachePath)
	assert.Equal(t, niriwindows.OutputScope("DP-1"), cfg.Scope())
}

func TestLoadEmptyNirilogEnablesDebug(t *testing.T) {
	clearEnv(t)
	t.Setenv("NIRI_SOCKET", "/niri.sock")
	t.Setenv("NIRILOG", "")
	t.Setenv("NIRIWINDOWS_CACHE", "memory")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("NIRI_SOCKET", "/env.sock")
	t.Setenv("NIRIWINDOWS_FORMAT", "json")

	cfg, err := Load([]string{
		"-socket", "/flag.sock",
		"-format", "text",
		"-workspace", "7",
		"-cache", "json",
		"-cache-path", "/tmp/status.json",
	})
	require.NoError(t, err)

	assert.Equal(t, "/flag.sock", cfg.SocketPath)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "/tmp/status.json", cfg.CachePath)
	assert.Equal(t, niriwindows.WorkspaceScope(7), cfg.Scope())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("NIRI_SOCKET", "/niri.sock")
	stateHome := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_STATE_HOME", stateHome)
	xdg.Reload()

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "\uebb5", cfg.Icon)
	assert.Equal(t, CacheSQLite, cfg.Cache)
	assert.Equal(t, filepath.Join(stateHome, "niriwindows", "status.db"), cfg.CachePath)
	assert.Equal(t, niriwindows.FocusedScope(), cfg.Scope())
}

func TestValidate(t *testing.T) {
	valid := Config{SocketPath: "/niri.sock", Format: "json", Cache: CacheSQLite}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "no socket", mutate: func(c *Config) { c.SocketPath = "" }, wantErr: true},
		{name: "bad format", mutate: func(c *Config) { c.Format = "yaml" }, wantErr: true},
		{name: "bad cache", mutate: func(c *Config) { c.Cache = "redis" }, wantErr: true},
		{name: "text format", mutate: func(c *Config) { c.Format = "text" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMissingSocket(t *testing.T) {
	err := Config{Format: "json", Cache: CacheMemory}.Validate()
	assert.ErrorIs(t, err, niri.ErrNotRunning)
}
