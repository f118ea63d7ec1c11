package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultPaths(t *testing.T) {
	t.Run("returns paths next to the executable", func(t *testing.T) {
		t.Setenv(HomeEnvVar, "")

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}

		if paths.Root == "" {
			t.Error("Root should not be empty")
		}
		if paths.Config != filepath.Join(paths.Root, ConfigFileName) {
			t.Errorf("Config path incorrect: got %s", paths.Config)
		}
		if paths.Presets != filepath.Join(paths.Root, PresetsDirName) {
			t.Errorf("Presets path incorrect: got %s", paths.Presets)
		}
	})

	t.Run("respects STATUSLINE_HOME environment variable", func(t *testing.T) {
		customRoot := "/custom/statusline/path"
		t.Setenv(HomeEnvVar, customRoot)

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}

		if paths.Root != customRoot {
			t.Errorf("Expected root %s, got %s", customRoot, paths.Root)
		}
		if paths.Config != filepath.Join(customRoot, "statusline-config.json") {
			t.Errorf("Config should be under custom root, got: %s", paths.Config)
		}
		if paths.Presets != filepath.Join(customRoot, "presets") {
			t.Errorf("Presets should be under custom root, got: %s", paths.Presets)
		}
	})
}

func TestPaths_WithConfigFile(t *testing.T) {
	base := PathsAt("/opt/statusline")

	t.Run("overrides config only", func(t *testing.T) {
		got := base.WithConfigFile("/tmp/other.json")
		if got.Config != "/tmp/other.json" {
			t.Errorf("Config = %s, want /tmp/other.json", got.Config)
		}
		if got.Presets != base.Presets {
			t.Errorf("Presets = %s, want %s", got.Presets, base.Presets)
		}
		if base.Config != filepath.Join("/opt/statusline", ConfigFileName) {
			t.Errorf("original paths were mutated: %s", base.Config)
		}
	})

	t.Run("empty override keeps default", func(t *testing.T) {
		got := base.WithConfigFile("")
		if got.Config != base.Config {
			t.Errorf("Config = %s, want %s", got.Config, base.Config)
		}
	})
}

func TestPaths_PresetPath(t *testing.T) {
	paths := PathsAt("/opt/statusline")
	want := filepath.Join("/opt/statusline", "presets", "minimal.json")
	if got := paths.PresetPath("minimal"); got != want {
		t.Errorf("PresetPath = %s, want %s", got, want)
	}
}
