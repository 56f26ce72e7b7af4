// Package workflow wires named tasks into a dependency graph and runs them.
//
// Tasks declare their dependencies as data; the registry validates the graph
// once at wiring time and derives deterministic execution plans from it. The
// engine walks a plan sequentially, applying per-task retry policies, and
// records every outcome in a run report.
package workflow
