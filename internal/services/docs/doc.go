// Package docs renders the Sphinx HTML documentation.
package docs
