// Package templates bundles the files handoff installs into a project's
// .claude directory and describes where each one goes.
//
// The files are compiled into the binary. A directory with the same layout
// (commands/, rules/, hooks/) can be used instead via FromDir, which is how
// template authors test edits without rebuilding.
package templates
