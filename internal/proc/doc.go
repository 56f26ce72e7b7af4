// Package proc executes external tools for the workflow services.
package proc
