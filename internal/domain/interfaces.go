package domain

import "context"

// CommandRunner executes external tools. It is the single seam between the
// services and the operating system.
type CommandRunner interface {
	// Run executes iv and blocks until it finishes, streaming the tool's
	// output through. A nonzero exit status is returned as *ExitError.
	Run(ctx context.Context, iv Invocation) error

	// Output executes iv and returns its captured stdout. Stderr still
	// streams through.
	Output(ctx context.Context, iv Invocation) ([]byte, error)
}

// Cleaner removes generated and cache artifacts from the working tree.
type Cleaner interface {
	Clean(ctx context.Context) (removed int, err error)
}

// DepsInstaller installs the package together with one extras group.
type DepsInstaller interface {
	Install(ctx context.Context, extras Extras) error
}

// Linter runs the static-analysis and formatting gates.
type Linter interface {
	Check(ctx context.Context) error
	Fix(ctx context.Context) error
}

// Tester invokes the test suite under a marker partition.
type Tester interface {
	Run(ctx context.Context, mode TestMode) error
}

// Packager upgrades packaging prerequisites and builds the verified
// source distribution.
type Packager interface {
	Upgrade(ctx context.Context, req BuildRequirement) error
	Build(ctx context.Context) (Artifact, error)
}

// DocsBuilder renders the HTML documentation.
type DocsBuilder interface {
	Build(ctx context.Context) error
}
