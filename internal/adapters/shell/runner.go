// Package shell provides the process runner that drives the external renderer.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"syscall"
	"time"

	"go.trai.ch/plate/internal/core/domain"
	"go.trai.ch/plate/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProcessRunner = (*Runner)(nil)

// DefaultWaitDelay bounds how long Run waits for output streams to close
// after the renderer exits or is killed.
const DefaultWaitDelay = 5 * time.Second

// Runner implements ports.ProcessRunner using os/exec.
type Runner struct {
	logger    ports.Logger
	waitDelay time.Duration
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger:    logger,
		waitDelay: DefaultWaitDelay,
	}
}

// Run starts argv, feeds it stdin, and collects both output streams until
// the process exits.
//
// Failure to start is reported as domain.ErrRendererUnavailable. A process
// that closes its input early is not an error: writing stops, the streams
// are still drained, and the result has InputClosed set. A non-zero exit is
// reported through the result only.
func (r *Runner) Run(ctx context.Context, argv []string, stdin []byte) (*domain.ProcessResult, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, errors.Join(domain.ErrRendererUnavailable, zerr.New("empty renderer command"))
	}

	name := argv[0]
	cmd := exec.CommandContext(ctx, name, argv[1:]...) //nolint:gosec // renderer comes from project configuration
	cmd.WaitDelay = r.waitDelay

	var stdout, stderr bytes.Buffer
	stderrLog := &logWriter{logger: r.logger}
	cmd.Stdout = &stdout
	cmd.Stderr = io.MultiWriter(&stderr, stderrLog)

	in, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Join(domain.ErrProcessIOFailed, zerr.Wrap(err, "failed to create stdin pipe"))
	}

	if err := cmd.Start(); err != nil {
		_ = in.Close()
		wrapped := zerr.With(zerr.Wrap(err, "failed to start renderer"), "renderer", name)
		if isUnavailable(err) {
			return nil, errors.Join(domain.ErrRendererUnavailable, wrapped)
		}
		return nil, errors.Join(domain.ErrProcessIOFailed, wrapped)
	}

	res := &domain.ProcessResult{}

	ioErr := feed(in, stdin)
	if ioErr != nil && isClosedPipe(ioErr) {
		res.InputClosed = true
		ioErr = nil
	}

	waitErr := cmd.Wait()
	_ = stderrLog.Close()

	res.Stdout = stdout.Bytes()
	res.Stderr = stderr.Bytes()
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	} else {
		res.ExitCode = -1
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			res.TimedOut = true
			return res, nil
		}
		return nil, zerr.Wrap(ctxErr, "renderer interrupted")
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(waitErr, &exitErr), errors.Is(waitErr, exec.ErrWaitDelay):
		default:
			return nil, errors.Join(domain.ErrProcessIOFailed,
				zerr.With(zerr.Wrap(waitErr, "failed waiting for renderer"), "renderer", name))
		}
	}

	if ioErr != nil {
		return nil, errors.Join(domain.ErrProcessIOFailed,
			zerr.With(zerr.Wrap(ioErr, "failed writing to renderer"), "renderer", name))
	}

	return res, nil
}

// feed writes data to the process input and closes it.
func feed(in io.WriteCloser, data []byte) error {
	_, werr := in.Write(data)
	cerr := in.Close()
	if werr != nil {
		return werr
	}
	if cerr != nil && !errors.Is(cerr, os.ErrClosed) {
		return cerr
	}
	return nil
}

// isUnavailable reports whether a start error means the executable is
// missing or cannot be executed.
func isUnavailable(err error) bool {
	return errors.Is(err, exec.ErrNotFound) ||
		errors.Is(err, exec.ErrDot) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, syscall.ENOEXEC)
}

// isClosedPipe reports whether a write error means the reader went away.
// EINVAL is what Windows reports for a pipe the child already closed.
func isClosedPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, os.ErrClosed)
}

// logWriter forwards renderer stderr to the debug log, one line at a time.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := string(bytes.TrimSuffix(line, []byte{'\r'}))
	if w.logger != nil {
		w.logger.Debug("renderer: " + msg)
	}
}
