// Package filesystem provides filesystem implementations for handoff.
//
// This package contains implementations of the types.FS interface:
// the standard OS filesystem, an afero-backed filesystem used by tests,
// and a copy-on-write overlay used for dry runs.
package filesystem
