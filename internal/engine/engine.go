// Package engine provides the status line pipeline.
//
// The engine is the orchestration layer between the CLI and the leaf
// packages. It resolves the configuration, locates the repository, finds
// the most recently modified file and composes the output lines.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Status: Runs the pipeline for one invocation
//   - FallbackLines: Fixed output used when the pipeline fails
package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/danieljhkim/statusline/internal/config"
	"github.com/danieljhkim/statusline/internal/gitx"
	"github.com/danieljhkim/statusline/internal/recent"
	"github.com/danieljhkim/statusline/internal/render"
	"github.com/danieljhkim/statusline/internal/session"
)

// fallbackLine1 is printed in place of the status when the pipeline fails.
const fallbackLine1 = "statusline unavailable"

// FallbackLines returns the fixed output printed when rendering fails.
func FallbackLines() render.Lines {
	return render.Lines{
		Line1: fallbackLine1,
		Line2: session.DefaultModelName,
	}
}

// Engine orchestrates the status line pipeline.
// It is the main API surface called by the CLI.
type Engine struct {
	gitRepo  gitx.GitRepo
	resolver *config.Resolver
	finder   *recent.Finder
	logger   *zap.Logger
}

// New creates a new Engine with the given dependencies.
func New(
	gitRepo gitx.GitRepo,
	resolver *config.Resolver,
	finder *recent.Finder,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		gitRepo:  gitRepo,
		resolver: resolver,
		finder:   finder,
		logger:   logger,
	}
}

// Config returns the effective configuration without running the pipeline.
func (e *Engine) Config() config.Resolution {
	return e.resolver.Resolve()
}

// Status runs the pipeline and returns the composed lines.
// Component failures degrade to fallback values; only an unusable request
// is reported as an error.
func (e *Engine) Status(ctx context.Context, req *StatusRequest) (*StatusResult, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil status request", ErrInvalidRequest)
	}
	start := time.Now()

	res := &StatusResult{Config: e.resolver.Resolve()}
	cfg := res.Config.Config
	e.logger.Debug("config resolved",
		zap.String("source", string(res.Config.Source)),
		zap.String("path", res.Config.Path),
		zap.String("layout", string(cfg.Layout)))

	res.WorkingDir = session.WorkingDirectory(req.Input, req.CWD)
	if res.WorkingDir == "" {
		return nil, ErrNoWorkingDirectory
	}

	res.Data.ModelName = session.ModelName(req.Input)

	projectRoot := res.WorkingDir
	repo, err := e.gitRepo.Locate(res.WorkingDir)
	if err == nil {
		res.Repo = repo
		projectRoot = repo.Root
		res.Data.ProjectName = repo.ProjectName()
		res.Data.Branch = repo.DisplayBranch(e.gitRepo.Branch(ctx, repo.BranchPath()))
	} else {
		if !errors.Is(err, gitx.ErrNotInRepo) {
			e.logger.Warn("repository lookup failed", zap.String("dir", res.WorkingDir), zap.Error(err))
		}
		res.Data.ProjectName = filepath.Base(res.WorkingDir)
		res.Data.Branch = gitx.BranchNoGit
	}

	res.Recent = e.finder.Find(projectRoot, cfg.Technical.MaxDepth, cfg.Technical.PathShortening)
	res.Data.AccessedFile = res.Recent.DisplayPath

	res.Lines = render.Compose(cfg, res.Data)

	e.logger.Debug("status composed",
		zap.String("project", res.Data.ProjectName),
		zap.String("branch", res.Data.Branch),
		zap.String("accessed", res.Data.AccessedFile),
		zap.String("model", res.Data.ModelName),
		zap.Bool("deepContent", res.Recent.HasDeepContent),
		zap.Duration("elapsed", time.Since(start)))

	return res, nil
}
