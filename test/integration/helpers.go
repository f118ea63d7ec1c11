package integration

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/danieljhkim/statusline/internal/config"
	"github.com/danieljhkim/statusline/internal/engine"
	"github.com/danieljhkim/statusline/internal/fsops"
	"github.com/danieljhkim/statusline/internal/gitx"
	"github.com/danieljhkim/statusline/internal/recent"
	"github.com/danieljhkim/statusline/internal/session"
)

// testEnv is an install directory plus a workspace tree on disk.
type testEnv struct {
	t     *testing.T
	home  *config.Paths
	root  string
	clock time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		t:     t,
		home:  config.PathsAt(t.TempDir()),
		root:  t.TempDir(),
		clock: time.Now().Add(-24 * time.Hour),
	}
}

// path returns an absolute path under the workspace tree.
func (e *testEnv) path(rel ...string) string {
	return filepath.Join(append([]string{e.root}, rel...)...)
}

// touch writes a file and gives it an mtime later than every earlier touch.
func (e *testEnv) touch(rel ...string) string {
	e.t.Helper()
	p := e.path(rel...)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		e.t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
		e.t.Fatalf("failed to write %s: %v", p, err)
	}
	e.clock = e.clock.Add(time.Minute)
	if err := os.Chtimes(p, e.clock, e.clock); err != nil {
		e.t.Fatalf("Chtimes failed: %v", err)
	}
	return p
}

// writeConfig writes the install config file.
func (e *testEnv) writeConfig(content string) {
	e.t.Helper()
	if err := os.WriteFile(e.home.Config, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to write config: %v", err)
	}
}

// writePreset writes presets/<name>.json.
func (e *testEnv) writePreset(name, content string) {
	e.t.Helper()
	p := e.home.PresetPath(name)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		e.t.Fatalf("failed to create presets dir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to write preset: %v", err)
	}
}

// initRepo makes dir a git repository whose HEAD points at branch.
func (e *testEnv) initRepo(dir, branch string) {
	e.t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		e.t.Skip("git not installed")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		e.t.Fatalf("failed to create repo dir: %v", err)
	}
	runGit(e.t, dir, "init")
	runGit(e.t, dir, "symbolic-ref", "HEAD", "refs/heads/"+branch)
}

// render runs the whole pipeline with real dependencies.
func (e *testEnv) render(input string) string {
	e.t.Helper()
	fs := fsops.NewRealFS()
	eng := engine.New(
		gitx.NewRealGitRepo(fs),
		config.NewResolver(fs, *e.home, nil),
		recent.NewFinder(fs, nil),
		nil,
	)

	in, err := session.Parse([]byte(input))
	if err != nil {
		e.t.Fatalf("session.Parse failed: %v", err)
	}
	res, err := eng.Status(context.Background(), &engine.StatusRequest{Input: in, CWD: e.root})
	if err != nil {
		e.t.Fatalf("Status failed: %v", err)
	}
	return res.Lines.String()
}

// sessionAt returns a session document for the given working directory.
func sessionAt(dir, model string) string {
	return `{"model":{"display_name":"` + model + `"},"workspace":{"current_dir":"` + filepath.ToSlash(dir) + `"}}`
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}
