// Package app wires application dependencies for the CLI.
//
// It builds the concrete runner, services, task registry and engine from
// Config, exposing them via the App struct for commands to use.
package app
