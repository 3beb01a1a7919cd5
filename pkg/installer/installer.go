package installer

import (
	"io/fs"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/sessionkit/handoff/pkg/config"
	"github.com/sessionkit/handoff/pkg/errors"
	"github.com/sessionkit/handoff/pkg/logging"
	"github.com/sessionkit/handoff/pkg/merge"
	"github.com/sessionkit/handoff/pkg/paths"
	"github.com/sessionkit/handoff/pkg/session"
	"github.com/sessionkit/handoff/pkg/templates"
	"github.com/sessionkit/handoff/pkg/types"
)

// Section headings, in pipeline order.
const (
	SectionPreflight = "Pre-flight"
	SectionDirs      = "Creating directories"
	SectionCommands  = "Installing commands"
	SectionRules     = "Installing rules"
	SectionHooks     = "Installing hooks"
	SectionSettings  = "Configuring settings.json"
	SectionStorage   = "Setting up handoff storage"
	SectionGitignore = "Updating .gitignore"
	SectionClaudeMd  = "Updating CLAUDE.md"
	SectionLegacy    = "Legacy cleanup"
	SectionVerify    = "Verifying"
)

var kindSections = map[templates.Kind]string{
	templates.KindCommand: SectionCommands,
	templates.KindRule:    SectionRules,
	templates.KindHook:    SectionHooks,
}

// Options configures an installation.
type Options struct {
	Paths     *paths.Paths
	FS        types.FS
	Templates fs.FS
	Config    *config.Config
	DryRun    bool
}

type installer struct {
	opts     Options
	log      zerolog.Logger
	result   *types.InstallResult
	written  map[string]bool
	contents map[string][]byte
	tuned    tuning
}

// Run installs handoff into the project. The result is returned even when
// an error stops the pipeline, so callers can report the steps that ran. An
// incomplete installation yields ErrPartialInstall.
func Run(opts Options) (*types.InstallResult, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Templates == nil {
		opts.Templates = templates.Embedded()
	}

	in := &installer{
		opts:    opts,
		log:     logging.GetLogger("installer"),
		written: make(map[string]bool),
		result: &types.InstallResult{
			ProjectDir: opts.Paths.ProjectDir(),
			DryRun:     opts.DryRun,
		},
	}

	done := logging.LogOperationStart(in.log, "install")
	defer done()

	stages := []func() error{
		in.preflight,
		in.createDirs,
		in.loadTemplates,
		in.installTemplates,
		in.configureSettings,
		in.setupStorage,
		in.updateGitignore,
		in.updateClaudeMd,
		in.cleanupLegacy,
		in.verify,
	}
	for _, stage := range stages {
		if err := stage(); err != nil {
			return in.result, err
		}
	}

	return in.result, nil
}

func (in *installer) add(section string, status types.StepStatus, message string) {
	in.result.Add(section, status, message)
	in.log.Info().Str("section", section).Str("status", string(status)).Msg(message)
}

func (in *installer) exists(path string) bool {
	_, err := in.opts.FS.Stat(path)
	return err == nil
}

// readOptional returns the file content and whether it exists.
func (in *installer) readOptional(path string) ([]byte, bool, error) {
	data, err := in.opts.FS.ReadFile(path)
	if err == nil {
		return data, true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	return nil, false, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", in.opts.Paths.Rel(path)).
		WithDetail("path", path)
}

func (in *installer) write(path string, data []byte, mode fs.FileMode) error {
	if err := in.opts.FS.WriteFile(path, data, mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", in.opts.Paths.Rel(path)).
			WithDetail("path", path)
	}
	rel := in.opts.Paths.Rel(path)
	if !in.written[rel] {
		in.written[rel] = true
		in.result.FilesWritten = append(in.result.FilesWritten, rel)
	}
	in.log.Debug().Str("path", path).Int("bytes", len(data)).Msg("Wrote file")
	return nil
}

func (in *installer) remove(path string) error {
	if err := in.opts.FS.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", in.opts.Paths.Rel(path)).
			WithDetail("path", path)
	}
	in.log.Debug().Str("path", path).Msg("Removed file")
	return nil
}

func (in *installer) preflight() error {
	p := in.opts.Paths

	data, found, err := in.readOptional(p.MonitorPath())
	if err != nil {
		return err
	}
	if found {
		in.result.Reinstall = true
		in.result.Preserved = merge.ExtractPreserved(data)
		in.log.Debug().
			Str("threshold", in.result.Preserved.Threshold).
			Str("maxContext", in.result.Preserved.MaxContext).
			Msg("Found existing context monitor")
		in.add(SectionPreflight, types.StepInfo, "Existing installation found. Upgrading...")
		return nil
	}

	in.add(SectionPreflight, types.StepOK, "Fresh install")
	return nil
}

func (in *installer) createDirs() error {
	for _, dir := range in.opts.Paths.Dirs() {
		if err := in.opts.FS.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", in.opts.Paths.Rel(dir)).
				WithDetail("path", dir)
		}
	}
	in.add(SectionDirs, types.StepOK, "Directory structure created")
	return nil
}

// loadTemplates reads the whole manifest before anything is copied, so a
// missing template leaves the project untouched apart from directories.
func (in *installer) loadTemplates() error {
	in.contents = make(map[string][]byte)
	for _, e := range templates.Manifest() {
		data, err := templates.Read(in.opts.Templates, e)
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrTemplateMissing) {
				in.add(kindSections[e.Kind], types.StepFail, e.Source+" not found in package")
			}
			return err
		}
		in.contents[e.Source] = data
	}
	return nil
}

func (in *installer) installTemplates() error {
	for _, kind := range []templates.Kind{templates.KindCommand, templates.KindRule, templates.KindHook} {
		for _, e := range templates.ManifestOf(kind) {
			data := in.contents[e.Source]
			if e.Dest == "hooks/"+paths.ContextMonitor {
				data = in.tuneMonitor(data)
			}

			dest := in.opts.Paths.InClaudeDir(e.Dest)
			if err := in.write(dest, data, e.Mode); err != nil {
				return err
			}
			if kind == templates.KindHook {
				if err := in.opts.FS.Chmod(dest, e.Mode); err != nil {
					return errors.Wrapf(err, errors.ErrFileWrite, "failed to chmod %s", e.Dest)
				}
			}
		}

		switch kind {
		case templates.KindCommand:
			in.add(SectionCommands, types.StepOK, strconv.Itoa(len(templates.CommandFiles))+" slash commands installed")
		case templates.KindRule:
			in.add(SectionRules, types.StepOK, "Behavioral rules installed")
		case templates.KindHook:
			in.reportTuning()
			if err := in.removeLegacyFlag(); err != nil {
				return err
			}
			in.add(SectionHooks, types.StepOK, "Context monitor + session cleanup hooks")
		}
	}
	return nil
}

// hookValue is a tunable default applied to the context monitor.
type hookValue struct {
	variable string
	value    string
	explicit bool
}

// tuning is filled by tuneMonitor and reported once the hooks are in place.
type tuning struct {
	threshold  *hookValue
	maxContext *hookValue
}

func (in *installer) monitorValues() (threshold, maxContext *hookValue) {
	cfg := in.opts.Config.Hooks
	preserved := in.result.Preserved

	pick := func(variable string, override int, saved string) *hookValue {
		if override > 0 {
			return &hookValue{variable: variable, value: strconv.Itoa(override), explicit: true}
		}
		if saved != "" {
			return &hookValue{variable: variable, value: saved}
		}
		return nil
	}

	return pick(merge.ThresholdVar, cfg.Threshold, preserved.Threshold),
		pick(merge.MaxContextVar, cfg.MaxContext, preserved.MaxContext)
}

// tuneMonitor re-applies preserved or explicitly configured defaults to a
// freshly copied monitor hook.
func (in *installer) tuneMonitor(data []byte) []byte {
	in.tuned = tuning{}
	threshold, maxContext := in.monitorValues()

	if threshold != nil {
		var changed bool
		data, changed = merge.SetHookDefault(data, threshold.variable, threshold.value)
		if changed {
			in.tuned.threshold = threshold
		}
	}
	if maxContext != nil {
		var changed bool
		data, changed = merge.SetHookDefault(data, maxContext.variable, maxContext.value)
		if changed {
			in.tuned.maxContext = maxContext
		}
	}
	return data
}

func (in *installer) reportTuning() {
	if v := in.tuned.threshold; v != nil {
		if v.explicit {
			in.add(SectionHooks, types.StepOK, "Threshold set to "+v.value+"%")
		} else {
			in.add(SectionHooks, types.StepOK, "Preserved threshold: "+v.value+"%")
		}
	}
	if v := in.tuned.maxContext; v != nil {
		if v.explicit {
			in.add(SectionHooks, types.StepOK, "Max context set to "+v.value+" tokens")
		} else {
			in.add(SectionHooks, types.StepOK, "Preserved max context: "+v.value+" tokens")
		}
	}
}

func (in *installer) removeLegacyFlag() error {
	flag := in.opts.Paths.LegacyDisabledPath()
	if !in.exists(flag) {
		return nil
	}
	return in.remove(flag)
}

func (in *installer) configureSettings() error {
	p := in.opts.Paths
	hooksCfg := in.opts.Config.Hooks

	existing, found, err := in.readOptional(p.SettingsPath())
	if err != nil {
		return err
	}

	wanted := merge.DefaultHooks(paths.ContextMonitor, paths.SessionCleanup,
		hooksCfg.StopTimeout, hooksCfg.SessionStartTimeout)
	out, outcome, err := merge.MergeSettings(existing, found, wanted)
	if err != nil {
		in.add(SectionSettings, types.StepFail, "settings.json could not be parsed; left unchanged")
		return err
	}

	switch outcome {
	case merge.Created:
		if err := in.write(p.SettingsPath(), out, 0644); err != nil {
			return err
		}
		in.add(SectionSettings, types.StepOK, "settings.json created with hooks")
	case merge.Updated:
		if err := in.write(p.SettingsPath(), out, 0644); err != nil {
			return err
		}
		in.add(SectionSettings, types.StepOK, "Hooks added to existing settings.json")
	default:
		in.add(SectionSettings, types.StepOK, "Hooks already configured")
	}
	return nil
}

func (in *installer) setupStorage() error {
	active := in.opts.Paths.ActivePath()
	if in.exists(active) {
		in.add(SectionStorage, types.StepOK, "Existing handoff preserved")
		return nil
	}
	if err := in.write(active, []byte(session.Template), 0644); err != nil {
		return err
	}
	in.add(SectionStorage, types.StepOK, "Initial handoff template created")
	return nil
}

func (in *installer) updateGitignore() error {
	path := in.opts.Paths.GitignorePath()
	existing, found, err := in.readOptional(path)
	if err != nil {
		return err
	}

	out, outcome := merge.MergeGitignore(existing, found)
	if outcome.Changed() {
		if err := in.write(path, out, 0644); err != nil {
			return err
		}
	}

	switch outcome {
	case merge.Created:
		in.add(SectionGitignore, types.StepOK, ".gitignore created")
	case merge.Updated:
		in.add(SectionGitignore, types.StepOK, "Added "+merge.GitignorePattern+" to .gitignore")
	default:
		in.add(SectionGitignore, types.StepOK, "Already in .gitignore")
	}
	return nil
}

func (in *installer) updateClaudeMd() error {
	path := in.opts.Paths.ClaudeMdPath()
	existing, found, err := in.readOptional(path)
	if err != nil {
		return err
	}

	out, outcome := merge.MergeClaudeMd(existing, found)
	if outcome.Changed() {
		if err := in.write(path, out, 0644); err != nil {
			return err
		}
	}

	switch outcome {
	case merge.Created:
		in.add(SectionClaudeMd, types.StepOK, "CLAUDE.md created")
	case merge.Updated:
		in.add(SectionClaudeMd, types.StepOK, "Session Continuity section added")
	default:
		in.add(SectionClaudeMd, types.StepOK, "Session Continuity already present")
	}
	return nil
}

func (in *installer) cleanupLegacy() error {
	removed := 0
	for _, name := range templates.LegacyCommands {
		path := filepath.Join(in.opts.Paths.CommandsDir(), name)
		if !in.exists(path) {
			continue
		}
		if err := in.remove(path); err != nil {
			return err
		}
		removed++
	}

	in.result.LegacyRemoved = removed
	if removed > 0 {
		in.add(SectionLegacy, types.StepInfo, "Removed "+strconv.Itoa(removed)+" legacy command(s)")
	}
	return nil
}

func (in *installer) verify() error {
	v := Verify(in.opts.FS, in.opts.Paths)
	in.result.Verification = v

	counts := verificationSummary(v)
	if v.Complete() {
		in.add(SectionVerify, types.StepOK, counts)
		return nil
	}

	in.add(SectionVerify, types.StepFail, "Partial: "+counts)
	return errors.Newf(errors.ErrPartialInstall, "partial installation: %s", counts).
		WithDetail("commands", v.Commands).
		WithDetail("hooks", v.Hooks)
}

// Verify counts the installed commands and hooks.
func Verify(fsys types.FS, p *paths.Paths) types.Verification {
	v := types.Verification{
		TotalCommands: len(templates.CommandFiles),
		TotalHooks:    len(templates.HookFiles),
	}
	for _, name := range templates.CommandFiles {
		if _, err := fsys.Stat(filepath.Join(p.CommandsDir(), name)); err == nil {
			v.Commands++
		}
	}
	for _, name := range templates.HookFiles {
		if _, err := fsys.Stat(filepath.Join(p.HooksDir(), name)); err == nil {
			v.Hooks++
		}
	}
	return v
}

func verificationSummary(v types.Verification) string {
	return strconv.Itoa(v.Commands) + "/" + strconv.Itoa(v.TotalCommands) + " commands, " +
		strconv.Itoa(v.Hooks) + "/" + strconv.Itoa(v.TotalHooks) + " hooks"
}
