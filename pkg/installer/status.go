package installer

import (
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sessionkit/handoff/pkg/config"
	"github.com/sessionkit/handoff/pkg/errors"
	"github.com/sessionkit/handoff/pkg/merge"
	"github.com/sessionkit/handoff/pkg/paths"
	"github.com/sessionkit/handoff/pkg/session"
	"github.com/sessionkit/handoff/pkg/templates"
	"github.com/sessionkit/handoff/pkg/types"
)

// Status inspects an installation without changing anything. It returns
// ErrPartialInstall alongside the result when commands or hooks are missing.
func Status(fsys types.FS, p *paths.Paths, cfg *config.Config) (*types.StatusResult, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	result := &types.StatusResult{
		ProjectDir:   p.ProjectDir(),
		Verification: Verify(fsys, p),
	}
	v := result.Verification

	result.Checks = append(result.Checks,
		types.StatusCheck{
			Name:   "Commands",
			OK:     v.Commands == v.TotalCommands,
			Detail: strconv.Itoa(v.Commands) + "/" + strconv.Itoa(v.TotalCommands),
		},
		countCheck(fsys, "Rules", p.RulesDir(), templates.RuleFiles),
		hooksCheck(fsys, p, v),
	)

	if monitor, err := fsys.ReadFile(p.MonitorPath()); err == nil {
		result.Installed = true
		result.Threshold = merge.HookDefault(monitor, merge.ThresholdVar)
		result.MaxContext = merge.HookDefault(monitor, merge.MaxContextVar)
	}

	wanted := merge.DefaultHooks(paths.ContextMonitor, paths.SessionCleanup,
		cfg.Hooks.StopTimeout, cfg.Hooks.SessionStartTimeout)
	result.Checks = append(result.Checks,
		settingsCheck(fsys, p, wanted),
		markerCheck(fsys, p.GitignorePath(), ".gitignore", merge.GitignorePattern, "ignores "+merge.GitignorePattern),
		markerCheck(fsys, p.ClaudeMdPath(), "CLAUDE.md", merge.ContinuityMarker, "continuity section present"),
		activeCheck(fsys, p),
	)

	if !v.Complete() {
		return result, errors.Newf(errors.ErrPartialInstall, "partial installation: %s", verificationSummary(v))
	}
	return result, nil
}

func countCheck(fsys types.FS, name, dir string, files []string) types.StatusCheck {
	found := 0
	for _, f := range files {
		if _, err := fsys.Stat(filepath.Join(dir, f)); err == nil {
			found++
		}
	}
	return types.StatusCheck{
		Name:   name,
		OK:     found == len(files),
		Detail: strconv.Itoa(found) + "/" + strconv.Itoa(len(files)),
	}
}

func hooksCheck(fsys types.FS, p *paths.Paths, v types.Verification) types.StatusCheck {
	check := types.StatusCheck{
		Name:   "Hooks",
		OK:     v.Hooks == v.TotalHooks,
		Detail: strconv.Itoa(v.Hooks) + "/" + strconv.Itoa(v.TotalHooks),
	}

	var notExec []string
	for _, name := range templates.HookFiles {
		info, err := fsys.Stat(filepath.Join(p.HooksDir(), name))
		if err == nil && info.Mode().Perm()&0100 == 0 {
			notExec = append(notExec, name)
		}
	}
	if len(notExec) > 0 {
		check.OK = false
		check.Detail += ", not executable: " + strings.Join(notExec, ", ")
	}
	return check
}

func settingsCheck(fsys types.FS, p *paths.Paths, wanted []merge.EventHook) types.StatusCheck {
	check := types.StatusCheck{Name: "settings.json"}

	data, err := fsys.ReadFile(p.SettingsPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			check.Detail = "missing"
		} else {
			check.Detail = "unreadable"
		}
		return check
	}

	wired := merge.HooksWired(data, wanted)
	var missing []string
	for _, w := range wanted {
		if !wired[w.Event] {
			missing = append(missing, w.Event)
		}
	}
	if len(missing) > 0 {
		check.Detail = "hooks not wired: " + strings.Join(missing, ", ")
		return check
	}

	check.OK = true
	check.Detail = "Stop and SessionStart hooks wired"
	return check
}

func markerCheck(fsys types.FS, path, name, marker, okDetail string) types.StatusCheck {
	check := types.StatusCheck{Name: name}
	data, err := fsys.ReadFile(path)
	switch {
	case err != nil:
		check.Detail = "missing"
	case !strings.Contains(string(data), marker):
		check.Detail = "no " + marker + " entry"
	default:
		check.OK = true
		check.Detail = okDetail
	}
	return check
}

func activeCheck(fsys types.FS, p *paths.Paths) types.StatusCheck {
	check := types.StatusCheck{Name: "Handoff"}
	data, err := fsys.ReadFile(p.ActivePath())
	if err != nil {
		check.Detail = "missing"
		return check
	}

	check.OK = true
	doc := session.Parse(data)
	switch {
	case doc.IsPlaceholder():
		check.Detail = "no session saved yet"
	case doc.Workstream() != "":
		check.Detail = "active workstream: " + firstLine(doc.Workstream())
	default:
		check.Detail = "saved"
	}
	if missing := doc.Missing(); !doc.IsPlaceholder() && len(missing) > 0 {
		check.Detail += "; missing sections: " + strings.Join(missing, ", ")
	}
	return check
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
