package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danieljhkim/statusline/internal/config"
	"github.com/danieljhkim/statusline/internal/fsops"
	"github.com/danieljhkim/statusline/internal/gitx"
	"github.com/danieljhkim/statusline/internal/recent"
	"github.com/danieljhkim/statusline/internal/session"
)

// newTestEngine wires an engine around gitRepo with config read from home.
func newTestEngine(t *testing.T, gitRepo gitx.GitRepo, home string) *Engine {
	t.Helper()
	fs := fsops.NewRealFS()
	paths := config.PathsAt(home)
	return New(gitRepo, config.NewResolver(fs, *paths, nil), recent.NewFinder(fs, nil), nil)
}

func writeFile(t *testing.T, path, content string, age time.Duration) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	mtime := time.Now().Add(-age)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
}

func parseInput(t *testing.T, doc string) *session.Input {
	t.Helper()
	in, err := session.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return in
}

func TestEngine_Status(t *testing.T) {
	ctx := context.Background()

	t.Run("git repository with default config", func(t *testing.T) {
		proj := filepath.Join(t.TempDir(), "proj")
		writeFile(t, filepath.Join(proj, "package.json"), "{}", time.Hour)
		writeFile(t, filepath.Join(proj, "src", "app.ts"), "export {}", time.Minute)

		eng := newTestEngine(t, gitx.NewFakeGitRepo(proj, "main"), t.TempDir())
		req := &StatusRequest{
			Input: parseInput(t, `{"model":{"display_name":"Sonnet 4"},"workspace":{"current_dir":"`+filepath.ToSlash(proj)+`"}}`),
			CWD:   "/somewhere/else",
		}

		result, err := eng.Status(ctx, req)
		if err != nil {
			t.Fatalf("Status failed: %v", err)
		}

		want := "proj -> Branch: main -> Accessed: src/app.ts\nClaude Sonnet 4\n"
		if got := result.Lines.String(); got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
		if result.Config.Source != config.SourceDefault {
			t.Errorf("Source = %q, want default", result.Config.Source)
		}
		if result.Repo == nil || result.Repo.Root != proj {
			t.Errorf("Repo = %+v", result.Repo)
		}
	})

	t.Run("no input, no repository, empty directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "scratch")
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}

		fake := gitx.NewFakeGitRepo(dir, "unused")
		fake.SetError(gitx.ErrNotInRepo)
		eng := newTestEngine(t, fake, t.TempDir())

		result, err := eng.Status(ctx, &StatusRequest{CWD: dir})
		if err != nil {
			t.Fatalf("Status failed: %v", err)
		}

		want := "scratch -> Branch: no-git -> Accessed: no recent files\nClaude Sonnet 4\n"
		if got := result.Lines.String(); got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
		if result.Repo != nil {
			t.Errorf("Repo = %+v, want nil", result.Repo)
		}
	})

	t.Run("multi-repo layout prefixes branch", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "workspace")
		writeFile(t, filepath.Join(root, "api", "main.go"), "package main", time.Minute)

		eng := newTestEngine(t, gitx.NewFakeMultiRepo(root, "api", "feature/x"), t.TempDir())
		result, err := eng.Status(ctx, &StatusRequest{CWD: root})
		if err != nil {
			t.Fatalf("Status failed: %v", err)
		}

		if result.Data.ProjectName != "workspace" {
			t.Errorf("ProjectName = %q, want workspace", result.Data.ProjectName)
		}
		if result.Data.Branch != "api/feature/x" {
			t.Errorf("Branch = %q, want api/feature/x", result.Data.Branch)
		}
		if result.Data.AccessedFile != "api/main.go" {
			t.Errorf("AccessedFile = %q, want api/main.go", result.Data.AccessedFile)
		}
	})

	t.Run("one-line preset from config", func(t *testing.T) {
		home := t.TempDir()
		writeFile(t, filepath.Join(home, config.ConfigFileName), `{"preset":"compact"}`, 0)
		writeFile(t, filepath.Join(home, "presets", "compact.json"), `{
			"layout": "one-line",
			"separator": " | ",
			"components": {
				"project": {"show": true, "position": 1},
				"model":   {"show": true, "label": "on", "position": "line2"}
			}
		}`, 0)

		proj := filepath.Join(t.TempDir(), "proj")
		writeFile(t, filepath.Join(proj, "a.txt"), "a", time.Minute)

		eng := newTestEngine(t, gitx.NewFakeGitRepo(proj, "main"), home)
		result, err := eng.Status(ctx, &StatusRequest{
			Input: parseInput(t, `{"model":"claude-haiku"}`),
			CWD:   proj,
		})
		if err != nil {
			t.Fatalf("Status failed: %v", err)
		}

		if got := result.Lines.String(); got != "proj | on claude-haiku\n" {
			t.Errorf("output = %q", got)
		}
		if result.Config.Source != config.SourcePreset {
			t.Errorf("Source = %q, want preset", result.Config.Source)
		}
	})

	t.Run("unexpected lookup error degrades to no-git", func(t *testing.T) {
		dir := t.TempDir()
		fake := gitx.NewFakeGitRepo(dir, "main")
		fake.SetError(os.ErrPermission)
		eng := newTestEngine(t, fake, t.TempDir())

		result, err := eng.Status(ctx, &StatusRequest{CWD: dir})
		if err != nil {
			t.Fatalf("Status failed: %v", err)
		}
		if result.Data.Branch != gitx.BranchNoGit {
			t.Errorf("Branch = %q, want %q", result.Data.Branch, gitx.BranchNoGit)
		}
	})

	t.Run("nil request", func(t *testing.T) {
		eng := newTestEngine(t, gitx.NewFakeGitRepo("/", "main"), t.TempDir())
		if _, err := eng.Status(ctx, nil); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("no working directory", func(t *testing.T) {
		eng := newTestEngine(t, gitx.NewFakeGitRepo("/", "main"), t.TempDir())
		if _, err := eng.Status(ctx, &StatusRequest{}); !errors.Is(err, ErrNoWorkingDirectory) {
			t.Errorf("expected ErrNoWorkingDirectory, got %v", err)
		}
	})
}

func TestEngine_Config(t *testing.T) {
	home := t.TempDir()
	writeFile(t, filepath.Join(home, config.ConfigFileName), `{"separator":" :: "}`, 0)

	eng := newTestEngine(t, gitx.NewFakeGitRepo("/", "main"), home)
	res := eng.Config()
	if res.Source != config.SourceFile {
		t.Errorf("Source = %q, want file", res.Source)
	}
	if res.Config.Separator != " :: " {
		t.Errorf("Separator = %q", res.Config.Separator)
	}
}

func TestFallbackLines(t *testing.T) {
	got := FallbackLines().String()
	if got != "statusline unavailable\nClaude Sonnet 4\n" {
		t.Errorf("FallbackLines() = %q", got)
	}
}
