// Package loader reads fsview configuration from files and the environment.
//
// Every source produces a generic map. Sources are layered with Merge and
// the result is decoded into a typed configuration by the config package.
package loader

import (
	"os"
	"path/filepath"
	"strings"
)

// Loader is a configuration source.
type Loader interface {
	// Load returns the source as a map, or nil, nil when the source does
	// not exist.
	Load() (map[string]any, error)
}

// FileSystem reads configuration files. Tests substitute an in-memory one.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the operating system.
type OSFS struct{}

// ReadFile implements FileSystem.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Format is a configuration file syntax.
type Format int

const (
	TOML Format = iota
	YAML
)

// String returns the format name.
func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "toml"
}

// FormatOf picks the format from the file extension: .yaml and .yml are
// YAML, anything else is TOML.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return TOML
}
