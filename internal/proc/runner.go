package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/kmax12/gridstatusio/internal/domain"
)

// Runner executes tool invocations against an explicit working directory.
//
// Tool output streams through untouched: the invoked program's own
// diagnostics are the primary failure output, gsdev only frames them with
// structured log context.
type Runner struct {
	Stdout io.Writer
	Stderr io.Writer

	log *logrus.Logger
}

var _ domain.CommandRunner = (*Runner)(nil)

// NewRunner returns a Runner wired to the process's stdout and stderr.
func NewRunner(log *logrus.Logger) *Runner {
	return &Runner{Stdout: os.Stdout, Stderr: os.Stderr, log: log}
}

// Run executes iv and blocks until the tool finishes.
func (r *Runner) Run(ctx context.Context, iv domain.Invocation) error {
	return r.exec(ctx, iv, r.Stdout)
}

// Output executes iv and returns its captured stdout. Stderr still streams
// through.
func (r *Runner) Output(ctx context.Context, iv domain.Invocation) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.exec(ctx, iv, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Runner) exec(ctx context.Context, iv domain.Invocation, stdout io.Writer) error {
	entry := r.log.WithFields(logrus.Fields{"tool": iv.Tool, "dir": iv.Dir})
	entry.WithField("argv", iv.Argv()).Debug("invoking")

	cmd := exec.CommandContext(ctx, iv.Tool, iv.Args...)
	cmd.Dir = iv.Dir
	cmd.Env = append(os.Environ(), iv.Env...)
	cmd.Stdout = stdout
	cmd.Stderr = r.Stderr

	// Tools get their own process group so that cancellation kills the whole
	// tool tree, not just the direct child.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%s interrupted: %w", iv.Tool, ctx.Err())
	}
	var xe *exec.ExitError
	if errors.As(err, &xe) {
		code := xe.ExitCode()
		entry.WithField("exit_code", code).Debug("tool failed")
		return &domain.ExitError{Tool: iv.Tool, Code: code}
	}
	return fmt.Errorf("starting %s: %w", iv.Tool, err)
}
