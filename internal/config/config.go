// Package config resolves runtime settings once at process start.
//
// Sources in priority order, each overriding the previous:
// 1. Built-in defaults
// 2. Config file named by TODO_CONFIG (.toml, .yaml or .yml)
// 3. Environment variables (TODO_FILENAME, TODO_DEBUG, TODO_THEME)
//
// The resolved Config is passed down explicitly; nothing below main
// reads the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFilename = "todos.txt"
	DefaultTheme    = "classic"

	EnvFilename = "TODO_FILENAME"
	EnvDebug    = "TODO_DEBUG"
	EnvTheme    = "TODO_THEME"
	EnvConfig   = "TODO_CONFIG"
)

// Config holds the settings shared by every command.
type Config struct {
	Filename string `toml:"filename" yaml:"filename"`
	Debug    bool   `toml:"debug" yaml:"debug"`
	Theme    string `toml:"theme" yaml:"theme"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Filename: DefaultFilename,
		Theme:    DefaultTheme,
	}
}

// Load builds the configuration from defaults, the optional config file and
// the environment. getenv is usually os.Getenv.
func Load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if p := strings.TrimSpace(getenv(EnvConfig)); p != "" {
		if err := loadFile(&cfg, p); err != nil {
			return Config{}, err
		}
	}

	if v := getenv(EnvFilename); v != "" {
		cfg.Filename = v
	}
	if v := getenv(EnvTheme); v != "" {
		cfg.Theme = v
	}
	if v := getenv(EnvDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvDebug, err)
		}
		cfg.Debug = b
	}

	if cfg.Filename == "" {
		cfg.Filename = DefaultFilename
	}
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	return cfg, nil
}

// loadFile decodes path over cfg; keys absent from the file keep their value.
func loadFile(cfg *Config, path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
	return nil
}
