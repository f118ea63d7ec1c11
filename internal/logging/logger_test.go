package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestDebugEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{" true ", true},
		{"1", true},
		{"", false},
		{"false", false},
		{"yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			getenv := func(key string) string {
				if key == DebugEnvVar {
					return tt.value
				}
				return ""
			}
			if got := DebugEnabled(getenv); got != tt.want {
				t.Errorf("DebugEnabled(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("disabled logger writes nothing", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(false, &buf)
		logger.Warn("should not appear", zap.String("k", "v"))
		_ = logger.Sync()

		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("enabled logger writes to the given writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(true, &buf)
		logger.Debug("config resolved", zap.String("source", "default"))
		_ = logger.Sync()

		out := buf.String()
		if !strings.Contains(out, "DEBUG") || !strings.Contains(out, "config resolved") {
			t.Errorf("unexpected log output: %q", out)
		}
		if !strings.Contains(out, `"source": "default"`) {
			t.Errorf("expected structured field in output: %q", out)
		}
	})

	t.Run("nil writer disables logging", func(t *testing.T) {
		if New(true, nil).Core().Enabled(zap.DebugLevel) {
			t.Error("expected disabled core for nil writer")
		}
	})
}
