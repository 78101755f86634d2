// Package config loads CLI settings from TOML files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Defaults.
const (
	DefaultFile     = "todos.json"
	DefaultListName = "Todos"
	DefaultTheme    = "classic"
	DefaultLogLevel = "warn"

	// ProjectFileName is looked up in the working directory.
	ProjectFileName = "todo.toml"
)

// Config holds all configuration options.
type Config struct {
	File     string `toml:"file"`
	ListName string `toml:"list_name"`
	Theme    string `toml:"theme"`
	LogLevel string `toml:"log_level"`
	Group    bool   `toml:"group"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	User     string // empty when no user config was found
	Project  string
	Explicit string
}

func Default() Config {
	return Config{
		File:     DefaultFile,
		ListName: DefaultListName,
		Theme:    DefaultTheme,
		LogLevel: DefaultLogLevel,
	}
}

// Load builds the configuration with this precedence (highest wins):
// 1. Defaults
// 2. User config ($XDG_CONFIG_HOME/todo/config.toml or ~/.config/todo/config.toml)
// 3. Project config (todo.toml in workDir)
// 4. Explicit config file via explicitPath (must exist)
// 5. Environment (TODO_FILE, TODO_LIST_NAME, TODO_THEME, TODO_LOG_LEVEL)
//
// CLI flags are applied by the caller on top of the result.
func Load(workDir, explicitPath string, getenv func(string) string) (Config, Sources, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Default()
	var src Sources

	if p := userConfigPath(getenv); p != "" {
		loaded, err := decodeIfExists(&cfg, p)
		if err != nil {
			return Config{}, Sources{}, fmt.Errorf("loading user config file %s: %w", p, err)
		}
		if loaded {
			src.User = p
		}
	}

	projectPath := filepath.Join(workDir, ProjectFileName)
	loaded, err := decodeIfExists(&cfg, projectPath)
	if err != nil {
		return Config{}, Sources{}, fmt.Errorf("loading project config file %s: %w", projectPath, err)
	}
	if loaded {
		src.Project = projectPath
	}

	if explicitPath != "" {
		p := resolve(workDir, explicitPath, getenv)
		if _, err := toml.DecodeFile(p, &cfg); err != nil {
			return Config{}, Sources{}, fmt.Errorf("loading config file %s: %w", p, err)
		}
		src.Explicit = p
	}

	applyEnv(&cfg, getenv)
	cfg.File = resolve(workDir, cfg.File, getenv)
	return cfg, src, nil
}

// ResolveFile makes a data file path given on the command line absolute
// against workDir, expanding a leading ~.
func ResolveFile(workDir, p string) string {
	return resolve(workDir, p, os.Getenv)
}

func decodeIfExists(cfg *Config, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return false, err
	}
	return true, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := strings.TrimSpace(getenv("TODO_FILE")); v != "" {
		cfg.File = v
	}
	if v := strings.TrimSpace(getenv("TODO_LIST_NAME")); v != "" {
		cfg.ListName = v
	}
	if v := strings.TrimSpace(getenv("TODO_THEME")); v != "" {
		cfg.Theme = v
	}
	if v := strings.TrimSpace(getenv("TODO_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
}

func userConfigPath(getenv func(string) string) string {
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "todo", "config.toml")
	}
	home := getenv("HOME")
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		home = h
	}
	return filepath.Join(home, ".config", "todo", "config.toml")
}

func resolve(workDir, p string, getenv func(string) string) string {
	if p == "" {
		return p
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home := getenv("HOME"); home != "" {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(workDir, p)
}
