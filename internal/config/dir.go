package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirName is the name of the configuration directory under the home directory.
const DirName = ".tabby"

// File names inside the configuration directory.
const (
	AutoplugFile = "autoplug"
	ConfigFile   = "config.toml"
	LogFile      = "latest.log"
)

// Paths locates the files of a configuration directory.
type Paths struct {
	Dir      string
	Autoplug string
	Config   string
	Log      string
}

// PathsIn returns the file locations inside dir.
func PathsIn(dir string) Paths {
	return Paths{
		Dir:      dir,
		Autoplug: filepath.Join(dir, AutoplugFile),
		Config:   filepath.Join(dir, ConfigFile),
		Log:      filepath.Join(dir, LogFile),
	}
}

// DefaultDir returns ~/.tabby.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", fmt.Errorf("%w: %v", ErrNoHome, err)
	}
	return filepath.Join(home, DirName), nil
}

// Prepare creates dir if needed and makes sure the autoplug file exists.
// An empty dir selects DefaultDir. Failures here are fatal to startup.
func Prepare(dir string) (Paths, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return Paths{}, err
		}
		dir = d
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("%w %s: %v", ErrCreateDir, dir, err)
	}

	p := PathsIn(dir)
	f, err := os.OpenFile(p.Autoplug, os.O_CREATE|os.O_RDONLY, 0o644)
	if err != nil {
		return Paths{}, fmt.Errorf("%w: autoplug: %v", ErrCreateDir, err)
	}
	_ = f.Close()

	return p, nil
}
