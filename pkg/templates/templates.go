package templates

import (
	"embed"
	"io/fs"
	"os"
	"path"

	"github.com/sessionkit/handoff/pkg/errors"
)

//go:embed files
var embedded embed.FS

// Kind groups manifest entries by the installer section that copies them.
type Kind string

const (
	KindCommand Kind = "command"
	KindRule    Kind = "rule"
	KindHook    Kind = "hook"
)

// Entry is one bundled file and its destination relative to .claude/.
type Entry struct {
	Kind   Kind
	Source string
	Dest   string
	Mode   fs.FileMode
}

// Name returns the file name of the entry.
func (e Entry) Name() string {
	return path.Base(e.Dest)
}

const (
	fileMode = fs.FileMode(0644)
	execMode = fs.FileMode(0755)
)

// Hook defaults baked into context-monitor.sh.
const (
	DefaultThreshold  = "80"
	DefaultMaxContext = "200000"
)

// CommandFiles are the slash commands installed into .claude/commands.
var CommandFiles = []string{
	"resume.md",
	"save-handoff.md",
	"switch-context.md",
	"handoff.md",
	"delete-handoff.md",
	"auto-handoff.md",
}

// RuleFiles are the behavioral rules installed into .claude/rules.
var RuleFiles = []string{
	"session-continuity.md",
	"auto-handoff.md",
}

// HookFiles are the hook scripts installed into .claude/hooks.
var HookFiles = []string{
	"context-monitor.sh",
	"session-cleanup.sh",
}

// LegacyCommands were shipped by earlier releases and are removed on install.
var LegacyCommands = []string{
	"retomar.md",
	"salvar-handoff.md",
	"trocar-contexto.md",
	"auto-handoff-toggle.md",
}

// Manifest returns every bundled file in install order.
func Manifest() []Entry {
	entries := make([]Entry, 0, len(CommandFiles)+len(RuleFiles)+len(HookFiles))
	for _, name := range CommandFiles {
		entries = append(entries, entry(KindCommand, "commands", name, fileMode))
	}
	for _, name := range RuleFiles {
		entries = append(entries, entry(KindRule, "rules", name, fileMode))
	}
	for _, name := range HookFiles {
		entries = append(entries, entry(KindHook, "hooks", name, execMode))
	}
	return entries
}

// ManifestOf returns the entries of a single kind.
func ManifestOf(kind Kind) []Entry {
	var out []Entry
	for _, e := range Manifest() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func entry(kind Kind, dir, name string, mode fs.FileMode) Entry {
	p := path.Join(dir, name)
	return Entry{Kind: kind, Source: p, Dest: p, Mode: mode}
}

// Embedded returns the templates compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "files")
	if err != nil {
		// Only possible if the embed directive above is broken.
		panic(err)
	}
	return sub
}

// FromDir returns templates read from dir, which must exist.
func FromDir(dir string) (fs.FS, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateMissing, "templates directory %s not found", dir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "templates path %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

// Source picks the embedded templates when dir is empty, otherwise FromDir.
func Source(dir string) (fs.FS, error) {
	if dir == "" {
		return Embedded(), nil
	}
	return FromDir(dir)
}

// Read returns the content of a bundled file. A missing file is reported
// the way the installer prints it: "<source> not found in package".
func Read(src fs.FS, e Entry) ([]byte, error) {
	data, err := fs.ReadFile(src, e.Source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Newf(errors.ErrTemplateMissing, "%s not found in package", e.Source).
				WithDetail("source", e.Source)
		}
		return nil, errors.Wrapf(err, errors.ErrTemplateRead, "failed to read %s", e.Source)
	}
	return data, nil
}
