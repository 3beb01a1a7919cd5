// Package merge holds the idempotent edits handoff applies to files it does
// not own: settings.json, .gitignore, CLAUDE.md and the tunable defaults of
// the installed context monitor hook.
//
// Every function takes the current content and whether the file exists, and
// returns the new content plus an Outcome. Nothing here touches the
// filesystem, so a second run over the output always reports Unchanged.
package merge

// Outcome describes what a merge did to its target.
type Outcome int

const (
	// Unchanged means the target already carried the handoff content.
	Unchanged Outcome = iota
	// Updated means content was added to an existing file.
	Updated
	// Created means the file did not exist and was generated from scratch.
	Created
)

func (o Outcome) String() string {
	switch o {
	case Updated:
		return "updated"
	case Created:
		return "created"
	default:
		return "unchanged"
	}
}

// Changed reports whether the target needs to be written.
func (o Outcome) Changed() bool {
	return o != Unchanged
}
