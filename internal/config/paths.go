// Package config resolves the statusline configuration.
//
// Configuration lives next to the statusline executable: a
// statusline-config.json file and an optional presets/ directory holding
// complete named configurations. The install directory can be overridden
// with the STATUSLINE_HOME environment variable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigFileName is the name of the configuration file in the install directory.
	ConfigFileName = "statusline-config.json"

	// PresetsDirName is the directory holding named preset files.
	PresetsDirName = "presets"

	// HomeEnvVar overrides the install directory.
	HomeEnvVar = "STATUSLINE_HOME"
)

// Paths contains the filesystem paths used by statusline.
type Paths struct {
	// Root is the install directory (default: directory of the executable)
	Root string

	// Config is the path to the configuration file
	Config string

	// Presets is the directory containing <name>.json preset files
	Presets string
}

// DefaultPaths returns the default paths for statusline.
// Paths can be overridden with environment variables:
// - STATUSLINE_HOME: Override the install directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv(HomeEnvVar)
	if root == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to locate executable: %w", err)
		}
		// Installs are commonly symlinked into a bin directory
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		root = filepath.Dir(exe)
	}

	return PathsAt(root), nil
}

// PathsAt returns the paths rooted at the given install directory.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:    root,
		Config:  filepath.Join(root, ConfigFileName),
		Presets: filepath.Join(root, PresetsDirName),
	}
}

// WithConfigFile returns a copy of p whose config file is overridden.
// Presets keep resolving relative to the install directory.
func (p Paths) WithConfigFile(path string) *Paths {
	if path != "" {
		p.Config = path
	}
	return &p
}

// PresetPath returns the path of the named preset file.
func (p *Paths) PresetPath(name string) string {
	return filepath.Join(p.Presets, name+".json")
}
