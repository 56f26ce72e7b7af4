package proc

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kmax12/gridstatusio/internal/domain"
)

func testRunner() *Runner {
	log := logrus.New()
	log.SetOutput(io.Discard)
	r := NewRunner(log)
	r.Stdout = io.Discard
	r.Stderr = io.Discard
	return r
}

func TestRunExitCode(t *testing.T) {
	r := testRunner()
	err := r.Run(context.Background(), domain.Invocation{
		Tool: "sh", Args: []string{"-c", "exit 7"}, Dir: t.TempDir(),
	})

	var xe *domain.ExitError
	if !errors.As(err, &xe) {
		t.Fatalf("want ExitError, got %v", err)
	}
	if xe.Code != 7 {
		t.Fatalf("want exit code 7, got %d", xe.Code)
	}
	if got := domain.ExitCodeOf(err); got != 7 {
		t.Fatalf("ExitCodeOf = %d, want 7", got)
	}
}

func TestRunMissingTool(t *testing.T) {
	r := testRunner()
	err := r.Run(context.Background(), domain.Invocation{
		Tool: "gsdev-no-such-tool", Dir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("want error for missing tool")
	}
	var xe *domain.ExitError
	if errors.As(err, &xe) {
		t.Fatalf("start failure must not be an ExitError: %v", err)
	}
}

func TestOutputCaptures(t *testing.T) {
	r := testRunner()
	out, err := r.Output(context.Background(), domain.Invocation{
		Tool: "sh", Args: []string{"-c", "echo 0.5.0"}, Dir: t.TempDir(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(out)); got != "0.5.0" {
		t.Fatalf("captured %q, want 0.5.0", got)
	}
}

func TestRunAppendsEnv(t *testing.T) {
	r := testRunner()
	err := r.Run(context.Background(), domain.Invocation{
		Tool: "sh",
		Args: []string{"-c", `test "$GSDEV_PROBE" = yes`},
		Dir:  t.TempDir(),
		Env:  []string{"GSDEV_PROBE=yes"},
	})
	if err != nil {
		t.Fatalf("env not passed through: %v", err)
	}
}

func TestRunUsesDir(t *testing.T) {
	dir := t.TempDir()
	r := testRunner()
	out, err := r.Output(context.Background(), domain.Invocation{Tool: "pwd", Dir: dir})
	if err != nil {
		t.Fatal(err)
	}

	got, err := filepath.EvalSymlinks(strings.TrimSpace(string(out)))
	if err != nil {
		t.Fatal(err)
	}
	want, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("ran in %q, want %q", got, want)
	}
}

func TestRunCancelKillsProcessGroup(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	r := testRunner()
	start := time.Now()
	err := r.Run(ctx, domain.Invocation{
		Tool: "sh", Args: []string{"-c", "sleep 10"}, Dir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("want error after cancellation")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("cancellation took %s", elapsed)
	}
}
