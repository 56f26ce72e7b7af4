package packager

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmax12/gridstatusio/internal/config"
	"github.com/kmax12/gridstatusio/internal/digest"
	"github.com/kmax12/gridstatusio/internal/domain"
)

type fakeRunner struct {
	calls  []domain.Invocation
	onRun  func(iv domain.Invocation) error
	output string
	outErr error
}

func (f *fakeRunner) Run(_ context.Context, iv domain.Invocation) error {
	f.calls = append(f.calls, iv)
	if f.onRun != nil {
		return f.onRun(iv)
	}
	return nil
}

func (f *fakeRunner) Output(_ context.Context, iv domain.Invocation) ([]byte, error) {
	f.calls = append(f.calls, iv)
	if f.outErr != nil {
		return nil, f.outErr
	}
	return []byte(f.output), nil
}

func newTestService(t *testing.T, workdir string, runner domain.CommandRunner) *Service {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := config.ProjectConfig{
		Name:        "gridstatusio",
		PackageDir:  "gridstatusio",
		DistDir:     "dist",
		DocsDir:     "docs",
		UnpackedDir: "unpacked_sdist",
	}
	return New(workdir, "python3", cfg, runner, log)
}

func sdistFiles() map[string]string {
	return map[string]string{
		"PKG-INFO":                 "Name: gridstatusio\n",
		"gridstatusio/__init__.py": "",
		"setup.cfg":                "[metadata]\nname = gridstatusio\n",
	}
}

func TestUpgrade(t *testing.T) {
	for _, req := range []domain.BuildRequirement{
		domain.ReqPip, domain.ReqBuild, domain.ReqSetuptools,
	} {
		t.Run(string(req), func(t *testing.T) {
			dir := t.TempDir()
			runner := &fakeRunner{}

			err := newTestService(t, dir, runner).Upgrade(context.Background(), req)
			require.NoError(t, err)

			require.Len(t, runner.calls, 1)
			assert.Equal(t, "python3", runner.calls[0].Tool)
			assert.Equal(t, []string{"-m", "pip", "install", "--upgrade", string(req)}, runner.calls[0].Args)
			assert.Equal(t, dir, runner.calls[0].Dir)
		})
	}
}

func TestUpgradeFailurePropagates(t *testing.T) {
	runner := &fakeRunner{onRun: func(domain.Invocation) error {
		return &domain.ExitError{Tool: "python3", Code: 1}
	}}

	err := newTestService(t, t.TempDir(), runner).Upgrade(context.Background(), domain.ReqPip)
	require.Error(t, err)
	assert.Equal(t, 1, domain.ExitCodeOf(err))
}

func TestBuildVerifiesArtifact(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{output: "0.5.0\n"}
	runner.onRun = func(domain.Invocation) error {
		writeSdist(t, filepath.Join(dir, "dist", "gridstatusio-0.5.0.tar.gz"),
			"gridstatusio-0.5.0", sdistFiles())
		return nil
	}

	art, err := newTestService(t, dir, runner).Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "dist", "gridstatusio-0.5.0.tar.gz"), art.Path)
	assert.Equal(t, "0.5.0", art.Version)

	sums, err := digest.File(art.Path)
	require.NoError(t, err)
	assert.Equal(t, sums.SHA256, art.SHA256)
	assert.Equal(t, sums.Blake2b256, art.Blake2b256)

	assert.FileExists(t, filepath.Join(dir, "unpacked_sdist", "PKG-INFO"))
	assert.NoDirExists(t, filepath.Join(dir, "gridstatusio-0.5.0"))

	raw, err := os.ReadFile(art.Path + ".digests")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "sha256  "+art.SHA256+"  gridstatusio-0.5.0.tar.gz")
	assert.Contains(t, string(raw), "blake2b_256  "+art.Blake2b256+"  gridstatusio-0.5.0.tar.gz")

	require.Len(t, runner.calls, 2)
	assert.Equal(t, []string{"-m", "build"}, runner.calls[0].Args)
	assert.Equal(t, []string{"-c", "import setuptools; setuptools.setup()", "--version"}, runner.calls[1].Args)
}

func TestBuildFailurePropagates(t *testing.T) {
	runner := &fakeRunner{onRun: func(domain.Invocation) error {
		return &domain.ExitError{Tool: "python3", Code: 1}
	}}

	_, err := newTestService(t, t.TempDir(), runner).Build(context.Background())
	require.Error(t, err)

	// Verification must not start after a failed build.
	assert.Len(t, runner.calls, 1)
}

func TestBuildNoArtifact(t *testing.T) {
	runner := &fakeRunner{output: "0.5.0\n"}

	_, err := newTestService(t, t.TempDir(), runner).Build(context.Background())
	assert.ErrorIs(t, err, ErrNoArtifact)
}

func TestBuildVersionDrift(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{output: "0.5.0\n"}
	runner.onRun = func(domain.Invocation) error {
		writeSdist(t, filepath.Join(dir, "dist", "gridstatusio-0.4.9.tar.gz"),
			"gridstatusio-0.4.9", sdistFiles())
		return nil
	}

	_, err := newTestService(t, dir, runner).Build(context.Background())
	require.ErrorIs(t, err, ErrVersionDrift)
	assert.Contains(t, err.Error(), "0.5.0")
	assert.Contains(t, err.Error(), "gridstatusio-0.4.9.tar.gz")
}

func TestBuildPicksNewestArchive(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "dist", "gridstatusio-0.4.0.tar.gz")
	writeSdist(t, stale, "gridstatusio-0.4.0", sdistFiles())
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	runner := &fakeRunner{output: "0.5.0\n"}
	runner.onRun = func(domain.Invocation) error {
		writeSdist(t, filepath.Join(dir, "dist", "gridstatusio-0.5.0.tar.gz"),
			"gridstatusio-0.5.0", sdistFiles())
		return nil
	}

	art, err := newTestService(t, dir, runner).Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "gridstatusio-0.5.0.tar.gz", filepath.Base(art.Path))
}

func TestBuildReplacesPreviousUnpack(t *testing.T) {
	dir := t.TempDir()
	leftover := filepath.Join(dir, "unpacked_sdist", "leftover.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(leftover), 0o755))
	require.NoError(t, os.WriteFile(leftover, []byte("old"), 0o644))

	runner := &fakeRunner{output: "0.5.0\n"}
	runner.onRun = func(domain.Invocation) error {
		writeSdist(t, filepath.Join(dir, "dist", "gridstatusio-0.5.0.tar.gz"),
			"gridstatusio-0.5.0", sdistFiles())
		return nil
	}

	_, err := newTestService(t, dir, runner).Build(context.Background())
	require.NoError(t, err)

	assert.NoFileExists(t, leftover)
	assert.FileExists(t, filepath.Join(dir, "unpacked_sdist", "PKG-INFO"))
}

func TestBuildVersionIgnoresSetupNoise(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{output: "warning: no files matched\n0.5.0\n"}
	runner.onRun = func(domain.Invocation) error {
		writeSdist(t, filepath.Join(dir, "dist", "gridstatusio-0.5.0.tar.gz"),
			"gridstatusio-0.5.0", sdistFiles())
		return nil
	}

	art, err := newTestService(t, dir, runner).Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.5.0", art.Version)
}

func TestBuildEmptyVersionOutput(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{output: "\n"}
	runner.onRun = func(domain.Invocation) error {
		writeSdist(t, filepath.Join(dir, "dist", "gridstatusio-0.5.0.tar.gz"),
			"gridstatusio-0.5.0", sdistFiles())
		return nil
	}

	_, err := newTestService(t, dir, runner).Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}
