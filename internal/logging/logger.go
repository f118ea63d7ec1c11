// Package logging builds the diagnostic logger.
//
// Diagnostics are off by default and never share a stream with the status
// output: when enabled they go to stderr.
package logging

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugEnvVar enables diagnostics when set to "true" (or "1").
const DebugEnvVar = "STATUSLINE_DEBUG"

// DebugEnabled reports whether the debug environment variable is set,
// reading it through getenv.
func DebugEnabled(getenv func(string) string) bool {
	v := strings.TrimSpace(getenv(DebugEnvVar))
	return strings.EqualFold(v, "true") || v == "1"
}

// New returns a no-op logger, or a console logger writing to w when debug is set.
func New(debug bool, w io.Writer) *zap.Logger {
	if !debug || w == nil {
		return zap.NewNop()
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core).Named("statusline")
}
