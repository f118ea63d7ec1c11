// Package session reads the session metadata piped to statusline on stdin.
package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultModelName is reported when the input names no model.
	DefaultModelName = "Claude Sonnet 4"

	// modelPrefix is prepended to display names taken from the model object.
	modelPrefix = "Claude "
)

// ErrMalformedInput indicates stdin carried text that is not a JSON object.
var ErrMalformedInput = errors.New("malformed session input")

// Input is the session metadata document.
type Input struct {
	Model     *Model     `json:"model,omitempty"`
	ModelName string     `json:"modelName,omitempty"`
	Workspace *Workspace `json:"workspace,omitempty"`
}

// Model is either an object with display_name/name or a bare string.
type Model struct {
	DisplayName string `json:"display_name,omitempty"`
	Name        string `json:"name,omitempty"`

	// Plain is set when the document carried the model as a string.
	Plain string `json:"-"`
}

// UnmarshalJSON accepts both the object and the string form.
func (m *Model) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &m.Plain)
	}
	if len(data) > 0 && data[0] != '{' {
		// Numbers, arrays and booleans carry no usable name
		return nil
	}

	type plainModel Model
	var pm plainModel
	if err := json.Unmarshal(data, &pm); err != nil {
		return err
	}
	*m = Model(pm)
	return nil
}

// Workspace describes the directory the session is working in.
type Workspace struct {
	CurrentDir string `json:"current_dir,omitempty"`
}

// Parse decodes the session document. Blank text yields (nil, nil).
func Parse(data []byte) (*Input, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return &in, nil
}

// ModelName returns the model to display, never empty.
func ModelName(in *Input) string {
	if in == nil {
		return DefaultModelName
	}
	if in.Model != nil && in.Model.DisplayName != "" {
		return modelPrefix + in.Model.DisplayName
	}
	if in.Model != nil && in.Model.Name != "" {
		return modelPrefix + in.Model.Name
	}
	if in.ModelName != "" {
		return in.ModelName
	}
	if in.Model != nil && strings.TrimSpace(in.Model.Plain) != "" {
		return in.Model.Plain
	}
	return DefaultModelName
}

// WorkingDirectory returns workspace.current_dir, or cwd when absent.
func WorkingDirectory(in *Input, cwd string) string {
	if in != nil && in.Workspace != nil && in.Workspace.CurrentDir != "" {
		return in.Workspace.CurrentDir
	}
	return cwd
}
