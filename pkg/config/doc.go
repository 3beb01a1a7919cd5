// Package config loads handoff configuration.
//
// Sources are layered, later ones winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the project file .claude/handoff.toml, when present
//  3. HANDOFF_* environment variables (HANDOFF_HOOKS_THRESHOLD -> hooks.threshold)
//  4. explicit command-line flags
//
// The merged map is decoded into Config and validated before use.
package config
