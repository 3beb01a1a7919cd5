package merge

import "bytes"

// GitignorePattern keeps personal session state out of version control.
const GitignorePattern = ".claude/handoffs/"

const gitignoreBlock = "# claude-code-handoff (personal session state)\n" + GitignorePattern + "\n"

// MergeGitignore ensures .gitignore ignores the handoff directory. Any
// existing line containing the pattern counts, including negations and
// comments, so user edits are never fought over.
func MergeGitignore(existing []byte, exists bool) ([]byte, Outcome) {
	if !exists {
		return []byte(gitignoreBlock), Created
	}
	if bytes.Contains(existing, []byte(GitignorePattern)) {
		return existing, Unchanged
	}

	out := make([]byte, 0, len(existing)+len(gitignoreBlock)+1)
	out = append(out, existing...)
	out = append(out, '\n')
	out = append(out, gitignoreBlock...)
	return out, Updated
}
