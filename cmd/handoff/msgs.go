package handoff

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Session continuity installer for Claude Code"
	MsgInstallShort    = "Install or upgrade handoff in a project"
	MsgStatusShort     = "Show what is installed in a project"
	MsgShowShort       = "Render the active session handoff"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Status messages
	MsgVersionFormat  = "handoff version %s\n  commit: %s\n  built:  %s\n"
	MsgNoSession      = "No session saved yet. Use /handoff inside Claude Code to save one."
	MsgManWritten     = "Man pages written to %s\n"
	MsgSectionMissing = "section %q not found in %s"

	// Error messages
	MsgErrNoHandoff = "no handoff at %s; run 'handoff install' first"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun     = "Preview changes without writing anything"
	MsgFlagProjectDir = "Project directory (default: $HANDOFF_PROJECT_DIR or the current directory)"
	MsgFlagColor      = "Color output: auto, always or never"
	MsgFlagTemplates  = "Read templates from this directory instead of the built-in set"
	MsgFlagThreshold  = "Context usage percentage that triggers an auto-handoff (1-100)"
	MsgFlagMaxContext = "Context window size in tokens used by the monitor hook"
	MsgFlagRaw        = "Print the markdown without rendering"
	MsgFlagSection    = "Print only this section (e.g. \"What's Next\")"
	MsgFlagDefaults   = "Print the built-in defaults file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/show-long.txt
	msgShowLongRaw string
	MsgShowLong    = strings.TrimSpace(msgShowLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
