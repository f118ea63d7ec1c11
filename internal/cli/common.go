package cli

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/danieljhkim/statusline/internal/config"
	"github.com/danieljhkim/statusline/internal/engine"
	"github.com/danieljhkim/statusline/internal/fsops"
	"github.com/danieljhkim/statusline/internal/gitx"
	"github.com/danieljhkim/statusline/internal/logging"
	"github.com/danieljhkim/statusline/internal/recent"
	"github.com/danieljhkim/statusline/internal/session"
)

// options collects everything read from flags and the environment, so the
// rest of the program never consults ambient state.
type options struct {
	// ConfigPath overrides the config file location
	ConfigPath string

	// Debug enables diagnostics on stderr
	Debug bool
}

// currentOptions merges the global flags with the environment.
func currentOptions() options {
	return options{
		ConfigPath: configPath,
		Debug:      debugOutput || logging.DebugEnabled(os.Getenv),
	}
}

// resolvePaths returns the install paths with the config override applied.
func resolvePaths(opts options) (*config.Paths, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}
	return paths.WithConfigFile(opts.ConfigPath), nil
}

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine(opts options, logger *zap.Logger) (*engine.Engine, error) {
	paths, err := resolvePaths(opts)
	if err != nil {
		return nil, err
	}

	fs := fsops.NewRealFS()
	gitRepo := gitx.NewRealGitRepo(fs)
	resolver := config.NewResolver(fs, *paths, logger.Named("config"))
	finder := recent.NewFinder(fs, logger.Named("recent"))

	return engine.New(gitRepo, resolver, finder, logger.Named("engine")), nil
}

// engineFactory is swapped in tests.
var engineFactory = newEngine

// newSessionReader polls real files and reads other readers directly.
func newSessionReader(in io.Reader, logger *zap.Logger) *session.Reader {
	if f, ok := in.(*os.File); ok {
		return session.NewStdinReader(f, logger.Named("session"))
	}
	return session.NewReader(in, logger.Named("session"))
}
