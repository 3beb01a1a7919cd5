package merge

import (
	"bytes"
	"strings"
)

// ContinuityMarker identifies an existing continuity section in CLAUDE.md.
const ContinuityMarker = "Session Continuity"

// ContinuityBlock is the section added to .claude/CLAUDE.md.
const ContinuityBlock = "## Session Continuity (MANDATORY)\n" +
	"\n" +
	"At the START of every session, read `.claude/handoffs/_active.md` to recover context from prior sessions.\n" +
	"During work, update the handoff proactively after significant milestones.\n" +
	"Use `/handoff` before `/clear`. Use `/resume` to pick up. Use `/switch-context <topic>` to switch workstreams."

const claudeMdTitle = "# Project Rules"

// MergeClaudeMd adds the continuity section to CLAUDE.md.
//
// The section goes right after the first top-level heading, surrounded by
// blank lines. Without a heading it is appended. A missing file is created
// with a generic title.
func MergeClaudeMd(existing []byte, exists bool) ([]byte, Outcome) {
	if !exists {
		return []byte(claudeMdTitle + "\n\n" + ContinuityBlock + "\n"), Created
	}
	if bytes.Contains(existing, []byte(ContinuityMarker)) {
		return existing, Unchanged
	}

	lines := strings.Split(string(existing), "\n")
	heading := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "# ") {
			heading = i
			break
		}
	}

	if heading < 0 {
		out := make([]byte, 0, len(existing)+len(ContinuityBlock)+2)
		out = append(out, existing...)
		out = append(out, '\n')
		out = append(out, ContinuityBlock...)
		out = append(out, '\n')
		return out, Updated
	}

	merged := make([]string, 0, len(lines)+3)
	merged = append(merged, lines[:heading+1]...)
	merged = append(merged, "", ContinuityBlock, "")
	merged = append(merged, lines[heading+1:]...)
	return []byte(strings.Join(merged, "\n")), Updated
}
