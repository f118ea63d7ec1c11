package engine

import (
	"github.com/danieljhkim/statusline/internal/config"
	"github.com/danieljhkim/statusline/internal/gitx"
	"github.com/danieljhkim/statusline/internal/recent"
	"github.com/danieljhkim/statusline/internal/render"
	"github.com/danieljhkim/statusline/internal/session"
)

// StatusRequest represents a request to render the status line.
type StatusRequest struct {
	// Input is the parsed session document; nil when none was piped in
	Input *session.Input

	// CWD is the process working directory, used when the input names none
	CWD string
}

// StatusResult represents the rendered status line and how it was derived.
type StatusResult struct {
	// Config is the effective configuration and its source
	Config config.Resolution

	// WorkingDir is the directory the session reported (or the CWD)
	WorkingDir string

	// Repo is the repository scoping the project; nil when none was found
	Repo *gitx.RepoInfo

	// Recent is the outcome of the recent-file search
	Recent recent.Result

	// Data is the value of each component before formatting
	Data render.StatusData

	// Lines is the composed output
	Lines render.Lines
}
