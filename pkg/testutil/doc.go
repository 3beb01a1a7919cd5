// Package testutil provides utilities for testing handoff components.
//
// Key components:
//   - Project: an in-memory project directory with a resolved paths.Paths
//   - Templates: a copy of the bundled templates as fstest.MapFS, with
//     optional omissions for missing-file scenarios
//   - File assertions built on testify
//
// Tests should run against the in-memory filesystem. Only CLI tests, which
// go through the real OS seam, use t.TempDir.
package testutil
