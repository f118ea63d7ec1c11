package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/statusline/internal/config"
	"github.com/danieljhkim/statusline/internal/fsops"
	"github.com/danieljhkim/statusline/internal/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and initialize the statusline configuration",
	Long: `Inspect and initialize the statusline configuration.

The configuration is read from statusline-config.json next to the statusline
executable (or $STATUSLINE_HOME). A "preset" field naming a file in the
presets/ directory replaces the whole configuration with that preset.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := currentOptions()
		logger := logging.New(opts.Debug, cmd.ErrOrStderr())
		defer func() { _ = logger.Sync() }()

		eng, err := engineFactory(opts, logger)
		if err != nil {
			return err
		}
		res := eng.Config()

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), configView{
				Source: res.Source,
				Path:   res.Path,
				Preset: res.Preset,
				Config: res.Config,
			})
		}

		out, err := formatYAML(res.Config)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "# source: %s\n", describeSource(res))
		fmt.Fprint(w, out)
		return nil
	},
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := resolvePaths(currentOptions())
		if err != nil {
			return err
		}

		fs := fsops.NewRealFS()
		exists, err := fs.Exists(paths.Config)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", paths.Config, err)
		}
		if exists && !configInitForce {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", paths.Config)
		}

		data, err := json.MarshalIndent(config.Default(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode default config: %w", err)
		}
		if err := fs.AtomicWrite(paths.Config, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote default configuration to %s", paths.Config))
		return nil
	},
}

var configPresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List available presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := currentOptions()
		paths, err := resolvePaths(opts)
		if err != nil {
			return err
		}

		resolver := config.NewResolver(fsops.NewRealFS(), *paths, logging.New(opts.Debug, cmd.ErrOrStderr()))
		names, err := resolver.ListPresets()
		if err != nil {
			return err
		}
		active := resolver.Resolve()

		if jsonOutput {
			if names == nil {
				names = []string{}
			}
			return outputJSON(cmd.OutOrStdout(), presetsView{
				Directory: paths.Presets,
				Presets:   names,
				Active:    activePreset(active),
			})
		}

		w := cmd.OutOrStdout()
		PrintSection(w, "Presets")
		PrintLabelValue(w, "Directory", paths.Presets)
		if len(names) == 0 {
			PrintEmptyState(w, "No presets found")
			return nil
		}
		for _, name := range names {
			marker := " "
			if name == activePreset(active) {
				marker = "*"
			}
			fmt.Fprintf(w, "  %s %s\n", marker, name)
		}
		return nil
	},
}

// configView is the JSON shape of `config show --json`.
type configView struct {
	Source config.Source `json:"source"`
	Path   string        `json:"path,omitempty"`
	Preset string        `json:"preset,omitempty"`
	Config config.Config `json:"config"`
}

// presetsView is the JSON shape of `config presets --json`.
type presetsView struct {
	Directory string   `json:"directory"`
	Presets   []string `json:"presets"`
	Active    string   `json:"active,omitempty"`
}

// activePreset returns the preset in effect, if one was applied.
func activePreset(res config.Resolution) string {
	if res.Source == config.SourcePreset {
		return res.Preset
	}
	return ""
}

func describeSource(res config.Resolution) string {
	switch res.Source {
	case config.SourcePreset:
		return fmt.Sprintf("preset %q (%s)", res.Preset, res.Path)
	case config.SourceFile:
		return fmt.Sprintf("file (%s)", res.Path)
	default:
		return "built-in defaults"
	}
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPresetsCmd)
}
