// Package deps installs the Python package with its optional dependency
// groups and registers the repository's pre-commit hooks.
package deps
