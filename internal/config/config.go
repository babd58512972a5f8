// Package config loads the graphfocus TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/anthonybishopric/graphfocus/pkg/settings"
)

// Config holds graphfocus configuration.
type Config struct {
	Render RenderConfig       `toml:"render"`
	Graph  settings.Overrides `toml:"graph"`
	Log    LogConfig          `toml:"log"`
	Server ServerConfig       `toml:"server"`
}

// RenderConfig controls the drawing surface.
type RenderConfig struct {
	Width        int    `toml:"width" validate:"gte=0"`
	Height       int    `toml:"height" validate:"gte=0"`
	FilterOrphan bool   `toml:"filter_orphan"`
	Title        string `toml:"title"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn warning error"`
	Format string `toml:"format" validate:"oneof=text json"`
}

// ServerConfig controls the HTTP mode.
type ServerConfig struct {
	Addr string `toml:"addr" validate:"required"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Render: RenderConfig{Width: 800, Height: 600, Title: "Graph Visualization"},
		Log:    LogConfig{Level: "info", Format: "text"},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// ConfigDir returns the graphfocus config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "graphfocus")
}

// DefaultPath is the config file used when no path is given.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file at path, or DefaultPath when path is empty.
// A missing default file yields the defaults; a missing explicit file is an
// error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

var validate = validator.New()

// Validate checks the config values and the graph settings they resolve to.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	if err := settings.Validate(settings.Resolve(c.Graph)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
