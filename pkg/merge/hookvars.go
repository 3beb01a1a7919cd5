package merge

import (
	"regexp"

	"github.com/sessionkit/handoff/pkg/types"
)

// Variables read by context-monitor.sh.
const (
	ThresholdVar  = "CLAUDE_CONTEXT_THRESHOLD"
	MaxContextVar = "CLAUDE_MAX_CONTEXT"
)

var hookDefaultPatterns = map[string]*regexp.Regexp{
	ThresholdVar:  regexp.MustCompile(ThresholdVar + `:-(\d+)`),
	MaxContextVar: regexp.MustCompile(MaxContextVar + `:-(\d+)`),
}

// HookDefault returns the first ${VAR:-N} default for variable in content,
// or "" when there is none.
func HookDefault(content []byte, variable string) string {
	re, ok := hookDefaultPatterns[variable]
	if !ok {
		return ""
	}
	m := re.FindSubmatch(content)
	if m == nil {
		return ""
	}
	return string(m[1])
}

// ExtractPreserved reads the tunable defaults from an installed monitor hook.
func ExtractPreserved(content []byte) types.Preserved {
	return types.Preserved{
		Threshold:  HookDefault(content, ThresholdVar),
		MaxContext: HookDefault(content, MaxContextVar),
	}
}

// SetHookDefault rewrites the first ${VAR:-N} default for variable to value.
// It reports false when the variable is absent or already has that value.
func SetHookDefault(content []byte, variable, value string) ([]byte, bool) {
	re, ok := hookDefaultPatterns[variable]
	if !ok {
		return content, false
	}
	loc := re.FindSubmatchIndex(content)
	if loc == nil {
		return content, false
	}
	start, end := loc[2], loc[3]
	if string(content[start:end]) == value {
		return content, false
	}

	out := make([]byte, 0, len(content)-(end-start)+len(value))
	out = append(out, content[:start]...)
	out = append(out, value...)
	out = append(out, content[end:]...)
	return out, true
}
