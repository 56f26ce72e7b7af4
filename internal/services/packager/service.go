package packager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kmax12/gridstatusio/internal/config"
	"github.com/kmax12/gridstatusio/internal/digest"
	"github.com/kmax12/gridstatusio/internal/domain"
)

var (
	// ErrNoArtifact is returned when the build left nothing in the dist dir.
	ErrNoArtifact = errors.New("no source distribution found")
	// ErrVersionDrift is returned when the built archive does not carry the
	// version the package metadata declares.
	ErrVersionDrift = errors.New("archive does not match declared version")
)

// Service upgrades packaging prerequisites and produces verified sdists.
type Service struct {
	workdir  string
	python   string
	name     string
	distDir  string
	unpacked string
	runner   domain.CommandRunner
	log      *logrus.Logger
}

var _ domain.Packager = (*Service)(nil)

// New returns a packager for the distribution named in cfg.
func New(workdir, python string, cfg config.ProjectConfig, runner domain.CommandRunner, log *logrus.Logger) *Service {
	return &Service{
		workdir:  workdir,
		python:   python,
		name:     cfg.Name,
		distDir:  cfg.DistDir,
		unpacked: cfg.UnpackedDir,
		runner:   runner,
		log:      log,
	}
}

// Upgrade brings one packaging prerequisite to its latest release.
func (s *Service) Upgrade(ctx context.Context, req domain.BuildRequirement) error {
	s.log.WithField("requirement", req).Info("upgrading packaging prerequisite")
	err := s.runner.Run(ctx, domain.Invocation{
		Tool: s.python,
		Args: []string{"-m", "pip", "install", "--upgrade", string(req)},
		Dir:  s.workdir,
	})
	if err != nil {
		return fmt.Errorf("upgrading %s: %w", req, err)
	}
	return nil
}

// Build produces the source distribution and verifies it end to end: build,
// locate the archive, cross-check the declared version, unpack it next to
// the tree for inspection, and record its checksums.
func (s *Service) Build(ctx context.Context) (domain.Artifact, error) {
	err := s.runner.Run(ctx, domain.Invocation{
		Tool: s.python,
		Args: []string{"-m", "build"},
		Dir:  s.workdir,
	})
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("building distribution: %w", err)
	}

	version, err := s.resolveVersion(ctx)
	if err != nil {
		return domain.Artifact{}, err
	}
	archive, err := s.locateSdist()
	if err != nil {
		return domain.Artifact{}, err
	}
	if want := fmt.Sprintf("%s-%s.tar.gz", s.name, version); filepath.Base(archive) != want {
		return domain.Artifact{}, fmt.Errorf("%w: metadata declares %s, newest archive is %s",
			ErrVersionDrift, version, filepath.Base(archive))
	}

	if err := s.unpack(archive); err != nil {
		return domain.Artifact{}, err
	}

	sums, err := digest.File(archive)
	if err != nil {
		return domain.Artifact{}, err
	}
	if err := s.writeDigests(archive, sums); err != nil {
		return domain.Artifact{}, err
	}

	art := domain.Artifact{
		Path:       archive,
		Version:    version,
		SHA256:     sums.SHA256,
		Blake2b256: sums.Blake2b256,
	}
	s.log.WithFields(logrus.Fields{
		"archive": filepath.Base(archive),
		"version": version,
		"sha256":  sums.SHA256,
	}).Info("built source distribution")
	return art, nil
}

// resolveVersion asks setuptools for the version the package metadata
// declares. The answer is the last line of output, so stray setup warnings
// do not poison it.
func (s *Service) resolveVersion(ctx context.Context) (string, error) {
	out, err := s.runner.Output(ctx, domain.Invocation{
		Tool: s.python,
		Args: []string{"-c", "import setuptools; setuptools.setup()", "--version"},
		Dir:  s.workdir,
	})
	if err != nil {
		return "", fmt.Errorf("resolving package version: %w", err)
	}
	version := strings.TrimSpace(string(out))
	if i := strings.LastIndexByte(version, '\n'); i >= 0 {
		version = strings.TrimSpace(version[i+1:])
	}
	if version == "" {
		return "", errors.New("resolving package version: setuptools printed nothing")
	}
	return version, nil
}

// locateSdist returns the newest matching archive in the dist dir. Older
// builds may linger there; modification time decides.
func (s *Service) locateSdist() (string, error) {
	pattern := filepath.Join(s.workdir, s.distDir, s.name+"-*.tar.gz")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: no %s-*.tar.gz in %s", ErrNoArtifact, s.name, s.distDir)
	}

	newest, newestMod := "", int64(0)
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return "", err
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest, newestMod = m, mod
		}
	}
	return newest, nil
}

// unpack extracts the archive and renames its top-level directory to the
// stable unpacked path, replacing the previous unpack.
func (s *Service) unpack(archive string) error {
	top, err := extractTarGz(archive, s.workdir)
	if err != nil {
		return err
	}
	dest := filepath.Join(s.workdir, s.unpacked)
	if err := os.RemoveAll(dest); err != nil {
		return err
	}
	if err := os.Rename(filepath.Join(s.workdir, top), dest); err != nil {
		return fmt.Errorf("renaming unpacked tree: %w", err)
	}
	return nil
}

// writeDigests records the checksum pair next to the archive, in checksum
// tool format: <algorithm>  <hex>  <file>.
func (s *Service) writeDigests(archive string, sums digest.Pair) error {
	base := filepath.Base(archive)
	content := fmt.Sprintf("sha256  %s  %s\nblake2b_256  %s  %s\n",
		sums.SHA256, base, sums.Blake2b256, base)
	if err := os.WriteFile(archive+".digests", []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing digests: %w", err)
	}
	return nil
}
