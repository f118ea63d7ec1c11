package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Layout selects how many output lines are rendered.
type Layout string

const (
	// LayoutOneLine folds the model into the first line.
	LayoutOneLine Layout = "one-line"

	// LayoutTwoLine renders the model on its own second line.
	LayoutTwoLine Layout = "two-line"
)

// ComponentID identifies one segment of the status line.
type ComponentID string

const (
	ComponentProject  ComponentID = "project"
	ComponentBranch   ComponentID = "branch"
	ComponentAccessed ComponentID = "accessed"
	ComponentModel    ComponentID = "model"
)

// modifiedAlias is accepted in config files as another name for "accessed".
const modifiedAlias = "modified"

// ComponentIDs lists the recognized components in canonical order.
// Ids outside this set are ignored when decoding.
var ComponentIDs = []ComponentID{
	ComponentProject,
	ComponentBranch,
	ComponentAccessed,
	ComponentModel,
}

// line2Sentinel is the position value that places a component on line 2.
const line2Sentinel = "line2"

// Position is either a sort index among line-1 components or the line2 sentinel.
type Position struct {
	Line2 bool
	Index int
}

// At returns a line-1 position with the given sort index.
func At(index int) Position {
	return Position{Index: index}
}

// Line2 returns the position that places a component on the second line.
func Line2() Position {
	return Position{Line2: true}
}

// String returns "line2" or the decimal index.
func (p Position) String() string {
	if p.Line2 {
		return line2Sentinel
	}
	return strconv.Itoa(p.Index)
}

// MarshalJSON encodes the sentinel as a string and indexes as numbers.
func (p Position) MarshalJSON() ([]byte, error) {
	if p.Line2 {
		return json.Marshal(line2Sentinel)
	}
	return json.Marshal(p.Index)
}

// UnmarshalJSON accepts a number, a numeric string, or "line2".
func (p *Position) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = Position{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if strings.EqualFold(s, line2Sentinel) {
			*p = Line2()
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid position %q", s)
		}
		*p = At(n)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("invalid position %s", data)
	}
	*p = At(int(f))
	return nil
}

// Component describes how one status line segment is rendered.
type Component struct {
	ID       ComponentID `json:"-"`
	Show     bool        `json:"show"`
	Label    string      `json:"label,omitempty"`
	Suffix   string      `json:"suffix,omitempty"`
	Position Position    `json:"position"`
}

// Technical holds the filesystem scan bounds.
type Technical struct {
	MaxDepth       int `json:"maxDepth"`
	PathShortening int `json:"pathShortening"`
}

// Config is the effective configuration for one invocation.
type Config struct {
	Preset     string
	Layout     Layout
	Separator  string
	Components []Component
	Technical  Technical

	// Colors is carried through verbatim for the host terminal integration.
	Colors json.RawMessage
}

// Component returns the component with the given id.
func (c Config) Component(id ComponentID) (Component, bool) {
	for _, comp := range c.Components {
		if comp.ID == id {
			return comp, true
		}
	}
	return Component{}, false
}

// fileConfig is the on-disk shape. Pointer fields distinguish absent from zero.
type fileConfig struct {
	Preset     string               `json:"preset,omitempty"`
	Layout     string               `json:"layout,omitempty"`
	Separator  *string              `json:"separator,omitempty"`
	Components map[string]Component `json:"components,omitempty"`
	Technical  *fileTechnical       `json:"technical,omitempty"`
	Colors     json.RawMessage      `json:"colors,omitempty"`
}

type fileTechnical struct {
	MaxDepth       *int `json:"maxDepth,omitempty"`
	PathShortening *int `json:"pathShortening,omitempty"`
}

// Parse decodes a configuration document, applying defaults for anything
// the document leaves out.
func Parse(data []byte) (Config, error) {
	var raw fileConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return raw.hydrate(), nil
}

func (f fileConfig) hydrate() Config {
	def := Default()

	cfg := Config{
		Preset:    f.Preset,
		Layout:    parseLayout(f.Layout),
		Separator: def.Separator,
		Technical: def.Technical,
		Colors:    f.Colors,
	}

	if f.Separator != nil {
		cfg.Separator = *f.Separator
	}

	if f.Technical != nil {
		if v := f.Technical.MaxDepth; v != nil && *v >= 1 {
			cfg.Technical.MaxDepth = *v
		}
		if v := f.Technical.PathShortening; v != nil && *v >= 1 {
			cfg.Technical.PathShortening = *v
		}
	}

	if f.Components == nil {
		cfg.Components = def.Components
		return cfg
	}

	for _, id := range ComponentIDs {
		comp, ok := f.Components[string(id)]
		if !ok && id == ComponentAccessed {
			comp, ok = f.Components[modifiedAlias]
		}
		if !ok {
			continue
		}
		comp.ID = id
		cfg.Components = append(cfg.Components, comp)
	}
	return cfg
}

func parseLayout(s string) Layout {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(LayoutOneLine), "oneline", "single":
		return LayoutOneLine
	default:
		return LayoutTwoLine
	}
}

// MarshalJSON encodes the configuration in its on-disk shape, with
// components in canonical order.
func (c Config) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	write := func(key string, v interface{}) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		buf.Write(raw)
		return nil
	}

	if c.Preset != "" {
		if err := write("preset", c.Preset); err != nil {
			return nil, err
		}
	}
	if err := write("layout", c.Layout); err != nil {
		return nil, err
	}
	if err := write("separator", c.Separator); err != nil {
		return nil, err
	}
	if err := write("components", componentSet(c.Components)); err != nil {
		return nil, err
	}
	if err := write("technical", c.Technical); err != nil {
		return nil, err
	}
	if len(c.Colors) > 0 {
		if err := write("colors", c.Colors); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes through Parse so defaults apply.
func (c *Config) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// componentSet encodes components as an object keyed by id, preserving order.
type componentSet []Component

func (s componentSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, comp := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(string(comp.ID))
		buf.Write(k)
		buf.WriteByte(':')
		raw, err := json.Marshal(comp)
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
