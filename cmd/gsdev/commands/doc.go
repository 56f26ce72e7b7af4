// Package commands defines the gsdev CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - clean              Remove bytecode, tool caches and coverage fragments
//   - test               Run the fast test suite (slow marker excluded)
//   - test-slow          Run only the slow-marked tests
//   - installdeps-dev    Editable install with dev extras plus pre-commit hooks
//   - installdeps-test   Editable install with test extras
//   - installdeps-docs   Editable install with docs extras
//   - lint               Check lint rules and formatting
//   - lint-fix           Apply auto-fixes and reformat
//   - upgradepip         Upgrade pip
//   - upgradebuild       Upgrade the build frontend
//   - upgradesetuptools  Upgrade setuptools
//   - package            Build and verify the source distribution
//   - docs               Render the HTML documentation
//   - tasks              List targets, dependencies and last outcomes
//
// # Implementation
//
// The root command loads configuration and builds the dependency graph
// (runner, services, task registry, engine) before any subcommand runs, so
// handlers share one app context. Task subcommands dispatch their target
// through the engine, which resolves dependencies declared on the tasks
// themselves.
package commands
