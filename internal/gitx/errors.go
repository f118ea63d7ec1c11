package gitx

import "errors"

// ErrNotInRepo indicates no repository was found from the start path.
var ErrNotInRepo = errors.New("not in a git repository")
