// Package packager builds the source distribution and verifies the result.
//
// A build is only reported successful once the archive has been located in
// the dist directory, cross-checked against the declared package version,
// unpacked for inspection and checksummed.
package packager
