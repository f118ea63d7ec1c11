package config

import "errors"

var (
	// ErrInvalidConfig indicates a configuration document could not be decoded.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidPreset indicates a preset name is not a safe file identifier.
	ErrInvalidPreset = errors.New("invalid preset name")
)
