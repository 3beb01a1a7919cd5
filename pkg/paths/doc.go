// Package paths provides centralized path handling for handoff.
//
// Every file the installer reads or writes lives under a single project
// directory. The layout is fixed:
//
//	<project>/.gitignore
//	<project>/.claude/settings.json
//	<project>/.claude/CLAUDE.md
//	<project>/.claude/handoff.toml          (optional project config)
//	<project>/.claude/commands/*.md
//	<project>/.claude/rules/*.md
//	<project>/.claude/hooks/*.sh
//	<project>/.claude/handoffs/_active.md
//	<project>/.claude/handoffs/archive/
//
// # Environment Variables
//
//   - HANDOFF_PROJECT_DIR: project directory when --project-dir is not given
//     (default: current working directory)
package paths
