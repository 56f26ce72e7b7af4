package docs

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmax12/gridstatusio/internal/domain"
)

type fakeRunner struct {
	calls []domain.Invocation
	errs  map[int]error
}

func (f *fakeRunner) Run(_ context.Context, iv domain.Invocation) error {
	idx := len(f.calls)
	f.calls = append(f.calls, iv)
	return f.errs[idx]
}

func (f *fakeRunner) Output(ctx context.Context, iv domain.Invocation) ([]byte, error) {
	return nil, f.Run(ctx, iv)
}

func newTestService(runner domain.CommandRunner) *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New("/work", "sphinx-build", "docs", runner, log)
}

func TestBuildCleansThenRenders(t *testing.T) {
	runner := &fakeRunner{}

	require.NoError(t, newTestService(runner).Build(context.Background()))

	out := filepath.Join("docs", "_build")
	require.Len(t, runner.calls, 2)
	assert.Equal(t, "sphinx-build", runner.calls[0].Tool)
	assert.Equal(t, []string{"-M", "clean", "docs", out}, runner.calls[0].Args)
	assert.Equal(t, []string{"-M", "html", "docs", out, "-j", "auto"}, runner.calls[1].Args)
	assert.Equal(t, "/work", runner.calls[1].Dir)
}

func TestBuildStopsWhenCleanFails(t *testing.T) {
	runner := &fakeRunner{errs: map[int]error{0: &domain.ExitError{Tool: "sphinx-build", Code: 2}}}

	err := newTestService(runner).Build(context.Background())
	require.Error(t, err)
	assert.Len(t, runner.calls, 1)
	assert.Equal(t, 2, domain.ExitCodeOf(err))
}

func TestBuildReportsRenderFailure(t *testing.T) {
	runner := &fakeRunner{errs: map[int]error{1: &domain.ExitError{Tool: "sphinx-build", Code: 2}}}

	err := newTestService(runner).Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building docs")
	assert.Len(t, runner.calls, 2)
}
