package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danieljhkim/statusline/internal/engine"
	"github.com/danieljhkim/statusline/internal/logging"
	"github.com/danieljhkim/statusline/internal/render"
)

// runStatus renders the status line. It always succeeds: failures are
// replaced by the fallback lines.
func runStatus(cmd *cobra.Command, args []string) error {
	opts := currentOptions()
	logger := logging.New(opts.Debug, cmd.ErrOrStderr())
	defer func() { _ = logger.Sync() }()

	lines := renderStatus(cmd.Context(), cmd.InOrStdin(), cmd.ErrOrStderr(), opts, logger)
	_, _ = fmt.Fprint(cmd.OutOrStdout(), lines.String())
	return nil
}

// renderStatus runs the pipeline, recovering from any failure.
func renderStatus(ctx context.Context, in io.Reader, errOut io.Writer, opts options, logger *zap.Logger) (lines render.Lines) {
	fail := func(err error) render.Lines {
		logger.Error("rendering failed, printing fallback", zap.Error(err))
		if opts.Debug {
			_, _ = fmt.Fprintln(errOut, formatError(err))
		}
		return engine.FallbackLines()
	}

	defer func() {
		if r := recover(); r != nil {
			lines = fail(fmt.Errorf("panic: %v", r))
		}
	}()

	eng, err := engineFactory(opts, logger)
	if err != nil {
		return fail(err)
	}

	input, err := newSessionReader(in, logger).Read(ctx)
	if err != nil {
		logger.Warn("ignoring session input", zap.Error(err))
		input = nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		logger.Warn("failed to get current directory", zap.Error(err))
	}

	result, err := eng.Status(ctx, &engine.StatusRequest{Input: input, CWD: cwd})
	if err != nil {
		return fail(err)
	}
	return result.Lines
}
