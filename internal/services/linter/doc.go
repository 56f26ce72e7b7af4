// Package linter drives the ruff lint and format gates.
package linter
