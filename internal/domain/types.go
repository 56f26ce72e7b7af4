package domain

import (
	"strings"
	"time"
)

// TaskName identifies a registered workflow task.
type TaskName string

// The build targets. Each maps one to one onto a CLI subcommand.
const (
	TaskClean             TaskName = "clean"
	TaskTest              TaskName = "test"
	TaskTestSlow          TaskName = "test-slow"
	TaskInstallDepsDev    TaskName = "installdeps-dev"
	TaskInstallDepsTest   TaskName = "installdeps-test"
	TaskInstallDepsDocs   TaskName = "installdeps-docs"
	TaskLint              TaskName = "lint"
	TaskLintFix           TaskName = "lint-fix"
	TaskUpgradePip        TaskName = "upgradepip"
	TaskUpgradeBuild      TaskName = "upgradebuild"
	TaskUpgradeSetuptools TaskName = "upgradesetuptools"
	TaskPackage           TaskName = "package"
	TaskDocs              TaskName = "docs"
)

func (n TaskName) String() string { return string(n) }

// TaskState is the per-run lifecycle state of a task.
type TaskState string

const (
	StatePending   TaskState = "pending"
	StateRunning   TaskState = "running"
	StateSucceeded TaskState = "succeeded"
	StateFailed    TaskState = "failed"
	StateSkipped   TaskState = "skipped"
)

// Terminal reports whether the state is final for the run.
func (s TaskState) Terminal() bool {
	switch s {
	case StateSucceeded, StateFailed, StateSkipped:
		return true
	}
	return false
}

// Extras names an optional-dependency group of the Python package.
type Extras string

const (
	ExtrasDev  Extras = "dev"
	ExtrasTest Extras = "test"
	ExtrasDocs Extras = "docs"
)

// Valid reports whether the group is one gsdev knows how to install.
func (e Extras) Valid() bool {
	switch e {
	case ExtrasDev, ExtrasTest, ExtrasDocs:
		return true
	}
	return false
}

// TestMode selects the marker partition for a test run.
type TestMode string

const (
	// TestDefault runs everything outside the slow marker.
	TestDefault TestMode = "default"
	// TestSlow runs exactly the slow-marked tests.
	TestSlow TestMode = "slow"
)

// BuildRequirement is a packaging prerequisite upgraded before building.
type BuildRequirement string

const (
	ReqPip        BuildRequirement = "pip"
	ReqBuild      BuildRequirement = "build"
	ReqSetuptools BuildRequirement = "setuptools"
)

// Invocation describes one external tool call. Dir is the working tree the
// tool runs against; Env entries are appended to the inherited environment.
type Invocation struct {
	Tool string
	Args []string
	Dir  string
	Env  []string
}

// Argv renders the full command line for logging.
func (iv Invocation) Argv() string {
	return strings.Join(append([]string{iv.Tool}, iv.Args...), " ")
}

// TaskResult records the outcome of one task within a run.
type TaskResult struct {
	Name     TaskName      `json:"name"`
	State    TaskState     `json:"state"`
	Attempts int           `json:"attempts"`
	Duration time.Duration `json:"duration_ns"`
	ExitCode int           `json:"exit_code"`
	Err      string        `json:"error,omitempty"`
}

// RunReport summarises one engine run, persisted after every real run.
type RunReport struct {
	RunID    string        `json:"run_id"`
	Target   TaskName      `json:"target"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration_ns"`
	Success  bool          `json:"success"`
	Tasks    []TaskResult  `json:"tasks"`
}

// Artifact describes a built and verified source distribution.
type Artifact struct {
	Path       string `json:"path"`
	Version    string `json:"version"`
	SHA256     string `json:"sha256"`
	Blake2b256 string `json:"blake2b_256"`
}
