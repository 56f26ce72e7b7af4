// Package store provides file-based persistence for gsdev's run state.
//
// Reports are serialised as JSON under the .gsdev directory of the working
// tree. All methods are concurrency-safe via internal locking, and writes
// replace files atomically so an interrupted run never leaves a torn report.
package store
