package config

import "encoding/json"

const (
	// DefaultPreset is the preset value that keeps the base configuration.
	DefaultPreset = "default"

	// DefaultSeparator joins line-1 components.
	DefaultSeparator = " -> "

	// DefaultMaxDepth bounds the recent-file scan.
	DefaultMaxDepth = 3

	// DefaultPathShortening is the segment count above which paths are shortened.
	DefaultPathShortening = 3
)

// defaultColors are passed through untouched; statusline never renders them.
var defaultColors = json.RawMessage(`{"enabled":true,"project":"cyan","branch":"green","accessed":"yellow","model":"magenta"}`)

// Default returns the hardcoded configuration used when no file loads.
func Default() Config {
	return Config{
		Preset:    DefaultPreset,
		Layout:    LayoutTwoLine,
		Separator: DefaultSeparator,
		Components: []Component{
			{ID: ComponentProject, Show: true, Position: At(1)},
			{ID: ComponentBranch, Show: true, Label: "Branch:", Position: At(2)},
			{ID: ComponentAccessed, Show: true, Label: "Accessed:", Position: At(3)},
			{ID: ComponentModel, Show: true, Position: Line2()},
		},
		Technical: Technical{
			MaxDepth:       DefaultMaxDepth,
			PathShortening: DefaultPathShortening,
		},
		Colors: append(json.RawMessage(nil), defaultColors...),
	}
}
