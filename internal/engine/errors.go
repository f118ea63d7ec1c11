package engine

import "errors"

var (
	// ErrInvalidRequest indicates a nil or incomplete request.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNoWorkingDirectory indicates neither the input nor the process
	// supplied a working directory.
	ErrNoWorkingDirectory = errors.New("no working directory")
)
