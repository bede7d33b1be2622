package config

import (
	"codeberg.org/miketth/niriwindows/pkg/niri"
	"codeberg.org/miketth/niriwindows/pkg/niriwindows"
	"flag"
	"fmt"
	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"os"
	"path/filepath"
)

const appName = "niriwindows"

const (
	CacheSQLite = "sqlite"
	CacheJSON   = "json"
	CacheMemory = "memory"
)

type Config struct {
	SocketPath string `env:"NIRI_SOCKET"`
	Icon       string `env:"NIRIWINDOWS_ICON" envDefault:""`
	Output     string `env:"NIRIWINDOWS_OUTPUT"`
	Workspace  uint64 `env:"NIRIWINDOWS_WORKSPACE"`
	Format     string `env:"NIRIWINDOWS_FORMAT" envDefault:"json"`
	Cache      string `env:"NIRIWINDOWS_CACHE" envDefault:"sqlite"`
	CachePath  string `env:"NIRIWINDOWS_CACHE_PATH"`

	Debug bool
}

// Load reads the environment first, command line flags override it.
func Load(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	// NIRILOG enables debug logging even when set to an empty value.
	_, debug := os.LookupEnv("NIRILOG")

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.StringVar(&cfg.SocketPath, "socket", cfg.SocketPath, "path to the niri socket")
	fs.BoolVar(&cfg.Debug, "debug", debug, "enable debug logging")
	fs.StringVar(&cfg.Icon, "icon", cfg.Icon, "glyph printed once per window")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "count windows on the active workspace of this output instead of the focused one")
	fs.Uint64Var(&cfg.Workspace, "workspace", cfg.Workspace, "count windows on this workspace id (0 means unset)")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format, json or text")
	fs.StringVar(&cfg.Cache, "cache", cfg.Cache, "status cache backend, sqlite, json or memory")
	fs.StringVar(&cfg.CachePath, "cache-path", cfg.CachePath, "status cache file")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	if cfg.CachePath == "" && cfg.Cache != CacheMemory {
		path, err := defaultCachePath(cfg.Cache)
		if err != nil {
			return Config{}, fmt.Errorf("default cache path: %w", err)
		}
		cfg.CachePath = path
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.SocketPath == "" {
		return fmt.Errorf("NIRI_SOCKET is not set, %w", niri.ErrNotRunning)
	}

	switch niriwindows.Format(c.Format) {
	case niriwindows.FormatJSON, niriwindows.FormatText:
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}

	switch c.Cache {
	case CacheSQLite, CacheJSON, CacheMemory:
	default:
		return fmt.Errorf("unknown cache %q", c.Cache)
	}

	return nil
}

// Scope maps the output and workspace settings onto a projection scope.
func (c Config) Scope() niriwindows.Scope {
	switch {
	case c.Workspace != 0:
		return niriwindows.WorkspaceScope(c.Workspace)
	case c.Output != "":
		return niriwindows.OutputScope(c.Output)
	}
	return niriwindows.FocusedScope()
}

func defaultCachePath(cache string) (string, error) {
	name := "status.db"
	if cache == CacheJSON {
		name = "status.json"
	}

	return xdg.StateFile(filepath.Join(appName, name))
}
