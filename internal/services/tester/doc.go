// Package tester invokes the pytest suite under a marker partition.
package tester
