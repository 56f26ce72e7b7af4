// Package domain defines core data models and interfaces shared across gsdev.
// It contains plain types (tasks, invocations, run reports) and contracts
// (interfaces) only.
package domain
