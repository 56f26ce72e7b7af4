// Package cleaner removes generated and cache artifacts from the working
// tree.
package cleaner
