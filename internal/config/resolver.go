package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/danieljhkim/statusline/internal/fsops"
)

// Source records which layer produced the effective configuration.
type Source string

const (
	SourceDefault Source = "default"
	SourceFile    Source = "file"
	SourcePreset  Source = "preset"
)

// Resolution is the effective configuration plus where it came from.
type Resolution struct {
	Config Config
	Source Source

	// Path is the file the configuration was read from; empty for defaults.
	Path string

	// Preset is the preset the config file asked for, applied or not.
	Preset string
}

// Resolver merges defaults, the config file and an optional preset.
type Resolver struct {
	fs     fsops.FS
	paths  Paths
	logger *zap.Logger
}

// NewResolver creates a Resolver reading through fs.
func NewResolver(fs fsops.FS, paths Paths, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		fs:     fs,
		paths:  paths,
		logger: logger,
	}
}

// Paths returns the paths the resolver reads from.
func (r *Resolver) Paths() Paths {
	return r.paths
}

// Resolve returns the effective configuration. It never fails: unreadable
// or invalid files fall back to the previous layer.
func (r *Resolver) Resolve() Resolution {
	base, err := r.load(r.paths.Config)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Debug("config file not found, using defaults", zap.String("path", r.paths.Config))
		} else {
			r.logger.Warn("config file unusable, using defaults", zap.String("path", r.paths.Config), zap.Error(err))
		}
		return Resolution{Config: Default(), Source: SourceDefault}
	}

	res := Resolution{Config: base, Source: SourceFile, Path: r.paths.Config, Preset: base.Preset}
	if base.Preset == "" || base.Preset == DefaultPreset {
		return res
	}

	if err := r.fs.ValidateIdentifier(base.Preset); err != nil {
		r.logger.Warn("ignoring preset", zap.String("preset", base.Preset), zap.Error(fmt.Errorf("%w: %v", ErrInvalidPreset, err)))
		return res
	}

	presetPath := r.paths.PresetPath(base.Preset)
	preset, err := r.load(presetPath)
	if err != nil {
		r.logger.Warn("preset unusable, keeping base config", zap.String("preset", base.Preset), zap.Error(err))
		return res
	}

	r.logger.Debug("preset applied", zap.String("preset", base.Preset), zap.String("path", presetPath))
	return Resolution{Config: preset, Source: SourcePreset, Path: presetPath, Preset: base.Preset}
}

// load reads and parses one configuration file.
func (r *Resolver) load(path string) (Config, error) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// ListPresets returns the names of the preset files, sorted.
func (r *Resolver) ListPresets() ([]string, error) {
	entries, err := r.fs.ReadDir(r.paths.Presets)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read presets directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || fsops.IsHidden(name) || !strings.HasSuffix(name, ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(names)
	return names, nil
}
