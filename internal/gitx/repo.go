// Package gitx locates git repositories and queries their current branch.
package gitx

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/danieljhkim/statusline/internal/fsops"
)

const (
	// markerName is the entry that marks a repository root.
	markerName = ".git"

	// BranchNoGit is reported when git is not installed or no repository exists.
	BranchNoGit = "no-git"

	// BranchFallback is reported when git runs but cannot name the branch.
	BranchFallback = "main"
)

// RepoInfo describes the repository that scopes the status line.
type RepoInfo struct {
	// Root is the project root. For multi-repo layouts it is the directory
	// holding the repositories, not a repository itself.
	Root string

	// IsMultiRepo is set when the root was found by scanning subdirectories.
	IsMultiRepo bool

	// ActiveRepoName is the most recently modified nested repository.
	ActiveRepoName string
}

// ProjectName returns the display name of the project.
func (i *RepoInfo) ProjectName() string {
	return filepath.Base(i.Root)
}

// BranchPath returns the directory whose branch should be reported.
func (i *RepoInfo) BranchPath() string {
	if i.IsMultiRepo {
		return filepath.Join(i.Root, i.ActiveRepoName)
	}
	return i.Root
}

// DisplayBranch formats branch for display, prefixing the active
// repository name in multi-repo layouts.
func (i *RepoInfo) DisplayBranch(branch string) string {
	if i.IsMultiRepo && i.ActiveRepoName != "" {
		return i.ActiveRepoName + "/" + branch
	}
	return branch
}

// GitRepo provides an abstraction for git repository operations.
type GitRepo interface {
	// Discover finds the git repository root starting from cwd.
	Discover(cwd string) (root string, err error)

	// DiscoverNested finds the most recently modified repository directly
	// below dir.
	DiscoverNested(dir string) (*RepoInfo, error)

	// Locate runs Discover and falls back to DiscoverNested.
	Locate(start string) (*RepoInfo, error)

	// Branch returns the current branch name; it never fails.
	Branch(ctx context.Context, path string) string
}

// RealGitRepo implements GitRepo using the filesystem and the git binary.
type RealGitRepo struct {
	fs     fsops.FS
	binary string
}

// NewRealGitRepo creates a new RealGitRepo.
func NewRealGitRepo(fs fsops.FS) *RealGitRepo {
	return &RealGitRepo{fs: fs, binary: "git"}
}

// Discover finds the git repository root by walking up from cwd looking for .git.
func (g *RealGitRepo) Discover(cwd string) (string, error) {
	absPath, err := filepath.Abs(cwd)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	current := absPath
	for {
		if g.hasMarker(current) {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current || parent == "" {
			// Reached root directory
			return "", ErrNotInRepo
		}
		current = parent
	}
}

// DiscoverNested scans the immediate subdirectories of dir for repositories
// and returns the most recently modified one. Ties keep the first in
// lexical order.
func (g *RealGitRepo) DiscoverNested(dir string) (*RepoInfo, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	entries, err := g.fs.ReadDir(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", absPath, err)
	}

	var (
		active  string
		newest  time.Time
		matched bool
	)
	for _, entry := range entries {
		if !entry.IsDir() || fsops.IsHidden(entry.Name()) {
			continue
		}
		if !g.hasMarker(filepath.Join(absPath, entry.Name())) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !matched || info.ModTime().After(newest) {
			active = entry.Name()
			newest = info.ModTime()
			matched = true
		}
	}

	if !matched {
		return nil, ErrNotInRepo
	}
	return &RepoInfo{
		Root:           absPath,
		IsMultiRepo:    true,
		ActiveRepoName: active,
	}, nil
}

// Locate finds the repository scoping start: an ancestor holding .git, or
// failing that a directory of nested repositories.
func (g *RealGitRepo) Locate(start string) (*RepoInfo, error) {
	root, err := g.Discover(start)
	if err == nil {
		return &RepoInfo{Root: root}, nil
	}
	if !errors.Is(err, ErrNotInRepo) {
		return nil, err
	}
	return g.DiscoverNested(start)
}

// Branch runs `git -C <path> branch --show-current`. A missing git binary
// yields BranchNoGit; any other failure or empty output yields BranchFallback.
func (g *RealGitRepo) Branch(ctx context.Context, path string) string {
	bin, err := exec.LookPath(g.binary)
	if err != nil {
		return BranchNoGit
	}

	cmd := exec.CommandContext(ctx, bin, "-C", path, "branch", "--show-current")
	output, err := cmd.Output()
	if err != nil {
		return BranchFallback
	}

	branch := strings.TrimSpace(string(output))
	if branch == "" {
		// Detached HEAD prints nothing
		return BranchFallback
	}
	return branch
}

// hasMarker reports whether dir contains .git. It can be a directory or a
// file (for worktrees/submodules).
func (g *RealGitRepo) hasMarker(dir string) bool {
	info, err := g.fs.Stat(filepath.Join(dir, markerName))
	if err != nil {
		return false
	}
	return info.IsDir() || info.Mode().IsRegular()
}

// FakeGitRepo implements GitRepo with predetermined values for testing.
type FakeGitRepo struct {
	info   *RepoInfo
	branch string
	err    error
}

// NewFakeGitRepo creates a FakeGitRepo rooted at root on the given branch.
func NewFakeGitRepo(root, branch string) *FakeGitRepo {
	return &FakeGitRepo{
		info:   &RepoInfo{Root: root},
		branch: branch,
	}
}

// NewFakeMultiRepo creates a FakeGitRepo for a multi-repo layout.
func NewFakeMultiRepo(root, activeRepo, branch string) *FakeGitRepo {
	return &FakeGitRepo{
		info:   &RepoInfo{Root: root, IsMultiRepo: true, ActiveRepoName: activeRepo},
		branch: branch,
	}
}

// SetError sets an error to be returned by all lookups.
func (g *FakeGitRepo) SetError(err error) {
	g.err = err
}

// Discover returns the predetermined root.
func (g *FakeGitRepo) Discover(cwd string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	if g.info.IsMultiRepo {
		return "", ErrNotInRepo
	}
	return g.info.Root, nil
}

// DiscoverNested returns the predetermined multi-repo info.
func (g *FakeGitRepo) DiscoverNested(dir string) (*RepoInfo, error) {
	if g.err != nil {
		return nil, g.err
	}
	if !g.info.IsMultiRepo {
		return nil, ErrNotInRepo
	}
	info := *g.info
	return &info, nil
}

// Locate returns the predetermined info.
func (g *FakeGitRepo) Locate(start string) (*RepoInfo, error) {
	if g.err != nil {
		return nil, g.err
	}
	info := *g.info
	return &info, nil
}

// Branch returns the predetermined branch.
func (g *FakeGitRepo) Branch(ctx context.Context, path string) string {
	return g.branch
}
