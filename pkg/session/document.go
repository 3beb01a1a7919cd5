package session

import (
	"strings"
)

// Section titles of a session handoff, in document order.
const (
	SectionLastUpdated = "Last Updated"
	SectionWorkstream  = "Active Workstream"
	SectionAgents      = "Active Agent(s)"
	SectionDone        = "What Was Done"
	SectionNext        = "What's Next"
	SectionKeyFiles    = "Key Files"
	SectionDecisions   = "Decisions Registry"
)

// SectionTitles lists every section a handoff carries.
var SectionTitles = []string{
	SectionLastUpdated,
	SectionWorkstream,
	SectionAgents,
	SectionDone,
	SectionNext,
	SectionKeyFiles,
	SectionDecisions,
}

const placeholderNote = "> No active session yet."

// Template is written to _active.md on first install.
const Template = `# Session Handoff

> No active session yet. Use ` + "`/handoff`" + ` or ` + "`/save-handoff`" + ` to save your first session state.

## Last Updated
(not started)

## Active Workstream
(none)

## Active Agent(s)
(none)

## What Was Done
(nothing yet)

## What's Next
(define your first task)

## Key Files
(none)

## Decisions Registry
(none)
`

// Section is one "## " block of a handoff.
type Section struct {
	Title string
	Body  string
}

// Document is a parsed handoff.
type Document struct {
	Title    string
	Preamble string
	Sections []Section
}

// Parse splits content on "# " and "## " headings. Deeper headings stay in
// the body of their section.
func Parse(content []byte) *Document {
	doc := &Document{}
	var current *Section
	var body []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		if current != nil {
			current.Body = text
			doc.Sections = append(doc.Sections, *current)
		} else {
			doc.Preamble = text
		}
		body = nil
	}

	for _, line := range strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "## "):
			flush()
			current = &Section{Title: strings.TrimSpace(strings.TrimPrefix(line, "## "))}
		case strings.HasPrefix(line, "# ") && doc.Title == "" && current == nil:
			doc.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		default:
			body = append(body, line)
		}
	}
	flush()

	return doc
}

// Section returns the body of the named section.
func (d *Document) Section(title string) (string, bool) {
	for _, s := range d.Sections {
		if strings.EqualFold(s.Title, title) {
			return s.Body, true
		}
	}
	return "", false
}

// Missing returns the standard sections absent from the document.
func (d *Document) Missing() []string {
	var missing []string
	for _, title := range SectionTitles {
		if _, ok := d.Section(title); !ok {
			missing = append(missing, title)
		}
	}
	return missing
}

// IsPlaceholder reports whether the document is still the empty template.
func (d *Document) IsPlaceholder() bool {
	return strings.HasPrefix(d.Preamble, placeholderNote)
}

// Workstream returns the active workstream, or "" when none is set.
func (d *Document) Workstream() string {
	ws, _ := d.Section(SectionWorkstream)
	if ws == "(none)" {
		return ""
	}
	return ws
}
