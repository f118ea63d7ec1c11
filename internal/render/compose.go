// Package render composes the status line text from resolved values.
package render

import (
	"sort"
	"strings"

	"github.com/danieljhkim/statusline/internal/config"
)

// StatusData holds the resolved value for each component.
type StatusData struct {
	ProjectName  string `json:"projectName"`
	Branch       string `json:"branch"`
	AccessedFile string `json:"accessedFile"`
	ModelName    string `json:"modelName"`
}

// value returns the string shown for a component id.
func (d StatusData) value(id config.ComponentID) string {
	switch id {
	case config.ComponentProject:
		return d.ProjectName
	case config.ComponentBranch:
		return d.Branch
	case config.ComponentAccessed:
		return d.AccessedFile
	case config.ComponentModel:
		return d.ModelName
	default:
		return ""
	}
}

// Lines is the composed output. Line2 is empty for one-line layouts.
type Lines struct {
	Line1 string
	Line2 string
}

// String renders the lines newline-terminated, omitting an empty Line2.
func (l Lines) String() string {
	var b strings.Builder
	b.WriteString(l.Line1)
	b.WriteByte('\n')
	if l.Line2 != "" {
		b.WriteString(l.Line2)
		b.WriteByte('\n')
	}
	return b.String()
}

// Compose builds the output lines for cfg. It is pure: identical inputs
// produce identical lines.
func Compose(cfg config.Config, data StatusData) Lines {
	var line1Comps []config.Component
	for _, comp := range cfg.Components {
		if comp.Show && !comp.Position.Line2 && comp.ID != config.ComponentModel {
			line1Comps = append(line1Comps, comp)
		}
	}
	sort.SliceStable(line1Comps, func(i, j int) bool {
		return line1Comps[i].Position.Index < line1Comps[j].Position.Index
	})

	var parts []string
	for _, comp := range line1Comps {
		if s := format(comp, data.value(comp.ID)); s != "" {
			parts = append(parts, s)
		}
	}

	lines := Lines{Line1: strings.Join(parts, cfg.Separator)}
	if model, ok := cfg.Component(config.ComponentModel); ok && model.Show {
		lines.Line2 = format(model, data.ModelName)
	}

	if cfg.Layout == config.LayoutOneLine {
		if lines.Line2 != "" {
			if lines.Line1 != "" {
				lines.Line1 += cfg.Separator
			}
			lines.Line1 += lines.Line2
		}
		lines.Line2 = ""
	}
	return lines
}

// format renders label, value and suffix. Empty values render nothing.
func format(comp config.Component, value string) string {
	if value == "" {
		return ""
	}
	s := value
	if comp.Label != "" {
		s = comp.Label + " " + s
	}
	return s + comp.Suffix
}
