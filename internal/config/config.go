package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/tabby/internal/logging"
)

// Config holds every tabby setting.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Editor  EditorConfig  `toml:"editor"`
	Shell   ShellConfig   `toml:"shell"`
	Plugins PluginsConfig `toml:"plugins"`
}

// LogConfig configures latest.log.
type LogConfig struct {
	// Level is the minimum level written: debug, info, warn or error.
	Level string `toml:"level"`
}

// EditorConfig configures editing behavior.
type EditorConfig struct {
	// PageSize is the number of lines PageUp and PageDown scroll.
	PageSize int `toml:"page_size"`
}

// ShellConfig selects the program used by the exec commands.
type ShellConfig struct {
	// Program is the shell executable.
	Program string `toml:"program"`
	// Flag makes Program run the following argument as a command line.
	Flag string `toml:"flag"`
}

// PluginsConfig controls plugin loading.
type PluginsConfig struct {
	// Enabled allows plugins to be loaded at all.
	Enabled bool `toml:"enabled"`
	// Watch reports changes to loaded plugin files.
	Watch bool `toml:"watch"`
}

// Default returns the built-in settings.
func Default() Config {
	cfg := Config{
		Log:     LogConfig{Level: "info"},
		Editor:  EditorConfig{PageSize: 10},
		Shell:   ShellConfig{Program: "sh", Flag: "-c"},
		Plugins: PluginsConfig{Enabled: true, Watch: true},
	}
	if runtime.GOOS == "windows" {
		cfg.Shell = ShellConfig{Program: "cmd", Flag: "/C"}
	}
	return cfg
}

// Load reads config.toml at path on top of the defaults.
// A missing file is not an error and yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := Parse(path, data, &cfg); err != nil {
		return Default(), err
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg. Keys absent from data keep the values
// already in cfg.
func Parse(source string, data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		pe := &ParseError{Path: source, Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return pe
	}
	return nil
}

// Validate checks every setting against its domain.
func (c *Config) Validate() error {
	if !logging.ValidLevel(c.Log.Level) {
		return &ValueError{Setting: "log.level", Value: c.Log.Level, Reason: "must be debug, info, warn or error"}
	}
	if c.Editor.PageSize < 1 {
		return &ValueError{Setting: "editor.page_size", Value: c.Editor.PageSize, Reason: "must be at least 1"}
	}
	if strings.TrimSpace(c.Shell.Program) == "" {
		return &ValueError{Setting: "shell.program", Value: c.Shell.Program, Reason: "must not be empty"}
	}
	return nil
}

// Marshal encodes cfg as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
