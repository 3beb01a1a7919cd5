// Package types defines the core types and interfaces shared across handoff.
// This includes the FS seam used by the installer and the result structures
// produced by the install and status operations.
package types
