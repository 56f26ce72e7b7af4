package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmax12/gridstatusio/internal/domain"
)

func TestNewWiresRegistry(t *testing.T) {
	a, err := New(Config{Workdir: t.TempDir()})
	require.NoError(t, err)

	names := a.Registry.Names()
	assert.Len(t, names, 13)
	assert.Equal(t, domain.TaskClean, names[0])

	for _, name := range names {
		_, err := a.Registry.Plan(name)
		assert.NoError(t, err, name)
	}
}

func TestNewPackagePlanUpgradesFirst(t *testing.T) {
	a, err := New(Config{Workdir: t.TempDir()})
	require.NoError(t, err)

	plan, err := a.Registry.Plan(domain.TaskPackage)
	require.NoError(t, err)
	assert.Equal(t, []domain.TaskName{
		domain.TaskUpgradePip,
		domain.TaskUpgradeBuild,
		domain.TaskUpgradeSetuptools,
		domain.TaskPackage,
	}, plan)
}

func TestNewDocsPlanCleansFirst(t *testing.T) {
	a, err := New(Config{Workdir: t.TempDir()})
	require.NoError(t, err)

	plan, err := a.Registry.Plan(domain.TaskDocs)
	require.NoError(t, err)
	assert.Equal(t, []domain.TaskName{domain.TaskClean, domain.TaskDocs}, plan)
}

func TestNewStandaloneTaskPlans(t *testing.T) {
	a, err := New(Config{Workdir: t.TempDir()})
	require.NoError(t, err)

	for _, name := range []domain.TaskName{
		domain.TaskClean, domain.TaskTest, domain.TaskTestSlow,
		domain.TaskInstallDepsDev, domain.TaskInstallDepsTest, domain.TaskInstallDepsDocs,
		domain.TaskLint, domain.TaskLintFix,
		domain.TaskUpgradePip, domain.TaskUpgradeBuild, domain.TaskUpgradeSetuptools,
	} {
		plan, err := a.Registry.Plan(name)
		require.NoError(t, err)
		assert.Equal(t, []domain.TaskName{name}, plan, "task %s must stand alone", name)
	}
}

func TestNewTestRetryPolicy(t *testing.T) {
	a, err := New(Config{Workdir: t.TempDir()})
	require.NoError(t, err)

	fast, ok := a.Registry.Lookup(domain.TaskTest)
	require.True(t, ok)
	require.NotNil(t, fast.Retry)
	assert.Equal(t, 5, fast.Retry.Retries)
	assert.Equal(t, 3*time.Second, fast.Retry.Delay)

	slow, ok := a.Registry.Lookup(domain.TaskTestSlow)
	require.True(t, ok)
	assert.Nil(t, slow.Retry)
}

func TestNewMissingWorkdir(t *testing.T) {
	_, err := New(Config{Workdir: filepath.Join(t.TempDir(), "absent")})
	assert.Error(t, err)
}

func TestNewWorkdirIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := New(Config{Workdir: path})
	assert.Error(t, err)
}

func TestNewBadLogLevel(t *testing.T) {
	_, err := New(Config{Workdir: t.TempDir(), LogLevel: "noisy"})
	assert.Error(t, err)
}

func TestNewBadLogFormat(t *testing.T) {
	_, err := New(Config{Workdir: t.TempDir(), LogFormat: "xml"})
	assert.Error(t, err)
}
