// Package config loads gsdev settings from defaults, an optional YAML file
// and GSDEV_* environment variables, in that order of precedence.
package config
