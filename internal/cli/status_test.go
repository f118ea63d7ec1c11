package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/danieljhkim/statusline/internal/engine"
)

// newProject creates <tmp>/proj with one recently modified file and no git.
func newProject(t *testing.T) string {
	t.Helper()
	proj := filepath.Join(t.TempDir(), "proj")
	file := filepath.Join(proj, "src", "app.ts")
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(file, []byte("export {}"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	mtime := time.Now().Add(-time.Minute)
	if err := os.Chtimes(file, mtime, mtime); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
	return proj
}

func sessionJSON(dir string) string {
	return `{"model":{"display_name":"Opus 4"},"workspace":{"current_dir":"` + filepath.ToSlash(dir) + `"}}`
}

func TestStatusCommand(t *testing.T) {
	t.Run("renders from session input", func(t *testing.T) {
		isolateHome(t)
		proj := newProject(t)

		out, _, err := executeCmd(t, sessionJSON(proj))
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		want := "proj -> Branch: no-git -> Accessed: src/app.ts\nClaude Opus 4\n"
		if out != want {
			t.Errorf("output = %q, want %q", out, want)
		}
	})

	t.Run("config file is honoured", func(t *testing.T) {
		paths := isolateHome(t)
		proj := newProject(t)
		cfg := `{"layout":"one-line","separator":" | ","components":{
			"project":{"show":true,"position":1},
			"model":{"show":true,"position":"line2"}
		}}`
		if err := os.WriteFile(paths.Config, []byte(cfg), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		out, _, err := executeCmd(t, sessionJSON(proj))
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if want := "proj | Claude Opus 4\n"; out != want {
			t.Errorf("output = %q, want %q", out, want)
		}
	})

	t.Run("config flag overrides location", func(t *testing.T) {
		isolateHome(t)
		proj := newProject(t)
		alt := filepath.Join(t.TempDir(), "alt.json")
		if err := os.WriteFile(alt, []byte(`{"components":{"project":{"show":true,"label":"P","position":1}}}`), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		out, _, err := executeCmd(t, sessionJSON(proj), "--config", alt)
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if want := "P proj\n"; out != want {
			t.Errorf("output = %q, want %q", out, want)
		}
	})

	t.Run("malformed input still renders", func(t *testing.T) {
		isolateHome(t)

		out, _, err := executeCmd(t, `{"model": `)
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		if len(lines) != 2 {
			t.Fatalf("expected two lines, got %q", out)
		}
		if lines[1] != "Claude Sonnet 4" {
			t.Errorf("line 2 = %q, want default model", lines[1])
		}
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		isolateHome(t)
		proj := newProject(t)

		out, _, err := executeCmd(t, sessionJSON(proj), "--no-such-flag")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.HasSuffix(out, "Claude Opus 4\n") {
			t.Errorf("unexpected output %q", out)
		}
	})
}

func TestStatusCommand_Fallback(t *testing.T) {
	isolateHome(t)

	orig := engineFactory
	defer func() { engineFactory = orig }()

	t.Run("engine construction error", func(t *testing.T) {
		engineFactory = func(options, *zap.Logger) (*engine.Engine, error) {
			return nil, errors.New("boom")
		}

		out, stderr, err := executeCmd(t, "{}")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if want := "statusline unavailable\nClaude Sonnet 4\n"; out != want {
			t.Errorf("output = %q, want %q", out, want)
		}
		if stderr != "" {
			t.Errorf("expected quiet stderr without debug, got %q", stderr)
		}
	})

	t.Run("panic is recovered", func(t *testing.T) {
		engineFactory = func(options, *zap.Logger) (*engine.Engine, error) {
			panic("unexpected")
		}

		out, _, err := executeCmd(t, "{}")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if want := "statusline unavailable\nClaude Sonnet 4\n"; out != want {
			t.Errorf("output = %q, want %q", out, want)
		}
	})

	t.Run("debug reports the failure on stderr", func(t *testing.T) {
		engineFactory = func(options, *zap.Logger) (*engine.Engine, error) {
			return nil, errors.New("boom")
		}

		out, stderr, err := executeCmd(t, "{}", "--debug")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if want := "statusline unavailable\nClaude Sonnet 4\n"; out != want {
			t.Errorf("output = %q, want %q", out, want)
		}
		if !strings.Contains(stderr, "boom") {
			t.Errorf("expected stderr to mention the error, got %q", stderr)
		}
	})
}

func TestRenderStatus_DebugKeepsStdoutClean(t *testing.T) {
	isolateHome(t)
	proj := newProject(t)

	var stderr strings.Builder
	opts := options{Debug: true}
	lines := renderStatus(context.Background(), strings.NewReader(sessionJSON(proj)), &stderr, opts, zap.NewNop())

	if lines.Line1 != "proj -> Branch: no-git -> Accessed: src/app.ts" {
		t.Errorf("Line1 = %q", lines.Line1)
	}
	if lines.Line2 != "Claude Opus 4" {
		t.Errorf("Line2 = %q", lines.Line2)
	}
}
