package paths

import (
	"os"
	"path/filepath"

	"github.com/sessionkit/handoff/pkg/errors"
)

// Environment variable names
const (
	// EnvProjectDir overrides the project directory
	EnvProjectDir = "HANDOFF_PROJECT_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Directory and file names. These are the locations the host assistant
// looks for and are not user-configurable.
const (
	ClaudeDirName   = ".claude"
	CommandsDirName = "commands"
	RulesDirName    = "rules"
	HooksDirName    = "hooks"
	HandoffsDirName = "handoffs"
	ArchiveDirName  = "archive"

	SettingsFile   = "settings.json"
	ClaudeMdFile   = "CLAUDE.md"
	GitignoreFile  = ".gitignore"
	ActiveFile     = "_active.md"
	ConfigFile     = "handoff.toml"
	LockFile       = ".handoff.lock"
	ContextMonitor = "context-monitor.sh"
	SessionCleanup = "session-cleanup.sh"

	// LegacyDisabledFlag was written by older releases to switch auto-handoff off.
	LegacyDisabledFlag = ".auto-handoff-disabled"
)

// Paths resolves every location used by the installer for one project.
type Paths struct {
	projectDir string
}

// New creates a Paths instance rooted at projectDir.
// An empty projectDir falls back to $HANDOFF_PROJECT_DIR and then to the
// current working directory.
func New(projectDir string) (*Paths, error) {
	if projectDir == "" {
		projectDir = os.Getenv(EnvProjectDir)
	}
	if projectDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
		}
		projectDir = cwd
	}

	abs, err := filepath.Abs(expandHome(projectDir))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid project directory %q", projectDir)
	}

	return &Paths{projectDir: abs}, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ProjectDir returns the absolute project directory
func (p *Paths) ProjectDir() string {
	return p.projectDir
}

// ClaudeDir returns <project>/.claude
func (p *Paths) ClaudeDir() string {
	return filepath.Join(p.projectDir, ClaudeDirName)
}

// CommandsDir returns the slash-command directory
func (p *Paths) CommandsDir() string {
	return filepath.Join(p.ClaudeDir(), CommandsDirName)
}

// RulesDir returns the behavioral rules directory
func (p *Paths) RulesDir() string {
	return filepath.Join(p.ClaudeDir(), RulesDirName)
}

// HooksDir returns the hook script directory
func (p *Paths) HooksDir() string {
	return filepath.Join(p.ClaudeDir(), HooksDirName)
}

// HandoffsDir returns the session state directory
func (p *Paths) HandoffsDir() string {
	return filepath.Join(p.ClaudeDir(), HandoffsDirName)
}

// ArchiveDir returns the directory for archived handoffs
func (p *Paths) ArchiveDir() string {
	return filepath.Join(p.HandoffsDir(), ArchiveDirName)
}

// Dirs returns every directory the installer creates, parents first.
func (p *Paths) Dirs() []string {
	return []string{
		p.CommandsDir(),
		p.RulesDir(),
		p.HooksDir(),
		p.ArchiveDir(),
	}
}

// SettingsPath returns .claude/settings.json
func (p *Paths) SettingsPath() string {
	return filepath.Join(p.ClaudeDir(), SettingsFile)
}

// ClaudeMdPath returns .claude/CLAUDE.md
func (p *Paths) ClaudeMdPath() string {
	return filepath.Join(p.ClaudeDir(), ClaudeMdFile)
}

// GitignorePath returns the project's .gitignore
func (p *Paths) GitignorePath() string {
	return filepath.Join(p.projectDir, GitignoreFile)
}

// ActivePath returns the active handoff document
func (p *Paths) ActivePath() string {
	return filepath.Join(p.HandoffsDir(), ActiveFile)
}

// ConfigPath returns the optional project configuration file
func (p *Paths) ConfigPath() string {
	return filepath.Join(p.ClaudeDir(), ConfigFile)
}

// LockPath returns the lock file guarding concurrent installs. It lives in
// the git-ignored handoffs directory.
func (p *Paths) LockPath() string {
	return filepath.Join(p.HandoffsDir(), LockFile)
}

// MonitorPath returns the context monitor hook
func (p *Paths) MonitorPath() string {
	return filepath.Join(p.HooksDir(), ContextMonitor)
}

// CleanupPath returns the session cleanup hook
func (p *Paths) CleanupPath() string {
	return filepath.Join(p.HooksDir(), SessionCleanup)
}

// LegacyDisabledPath returns the obsolete auto-handoff toggle flag
func (p *Paths) LegacyDisabledPath() string {
	return filepath.Join(p.HooksDir(), LegacyDisabledFlag)
}

// InClaudeDir joins a slash-separated relative path onto .claude
func (p *Paths) InClaudeDir(rel string) string {
	return filepath.Join(p.ClaudeDir(), filepath.FromSlash(rel))
}

// Rel returns path relative to the project directory, for display.
func (p *Paths) Rel(path string) string {
	rel, err := filepath.Rel(p.projectDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
