// Package digest computes release-artifact checksums.
//
// The pair matches what the package index publishes for uploaded
// distributions: SHA-256 and BLAKE2b-256.
package digest
