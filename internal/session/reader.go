package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

const (
	// pollAttempts bounds how many times stdin is probed before giving up.
	pollAttempts = 5

	// pollInterval separates probes so a slow writer can catch up.
	pollInterval = 10 * time.Millisecond
)

// Reader reads the session document without blocking on an idle stdin.
type Reader struct {
	in     io.Reader
	ready  func() (bool, error)
	logger *zap.Logger
}

// NewReader reads from r, which is assumed to be ready.
func NewReader(r io.Reader, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{
		in:     r,
		ready:  func() (bool, error) { return true, nil },
		logger: logger,
	}
}

// NewStdinReader reads from f, typically os.Stdin. Terminals are never read
// and pipes are only read once the poll reports data.
func NewStdinReader(f *os.File, logger *zap.Logger) *Reader {
	r := NewReader(f, logger)
	r.ready = func() (bool, error) {
		fd := f.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			return false, nil
		}
		return inputReady(f)
	}
	return r
}

// Read returns the parsed session input, or nil when none was provided.
// Malformed input is reported as ErrMalformedInput.
func (r *Reader) Read(ctx context.Context) (*Input, error) {
	ok, err := r.waitReady(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		r.logger.Debug("no session input available")
		return nil, nil
	}

	data, err := io.ReadAll(r.in)
	if err != nil {
		return nil, fmt.Errorf("failed to read session input: %w", err)
	}
	r.logger.Debug("session input read", zap.Int("bytes", len(data)))

	return Parse(data)
}

// waitReady polls readiness a bounded number of times.
func (r *Reader) waitReady(ctx context.Context) (bool, error) {
	for attempt := 0; attempt < pollAttempts; attempt++ {
		ok, err := r.ready()
		if err != nil {
			return false, fmt.Errorf("failed to poll session input: %w", err)
		}
		if ok {
			return true, nil
		}
		if attempt == pollAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
	return false, nil
}
