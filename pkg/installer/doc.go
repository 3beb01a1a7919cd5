// Package installer runs the handoff installation pipeline against a
// project directory and inspects an existing installation.
//
// The pipeline is linear: pre-flight, directories, templates, settings.json,
// handoff storage, .gitignore, CLAUDE.md, legacy cleanup, verification.
// Each stage reports Steps into a types.InstallResult; only a missing
// template, an unreadable settings.json or an I/O failure stops it early.
// Every stage checks for its own previous output first, so running the
// pipeline twice leaves the project byte-for-byte unchanged.
//
// All file access goes through types.FS. The CLI passes the OS filesystem,
// or a copy-on-write overlay for --dry-run; tests pass an in-memory one.
package installer
