package merge

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionkit/handoff/pkg/errors"
)

func testHooks() []EventHook {
	return DefaultHooks("context-monitor.sh", "session-cleanup.sh", 10, 5)
}

func decode(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	var v map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

const freshSettings = `{
  "hooks": {
    "Stop": [
      {
        "hooks": [
          {
            "type": "command",
            "command": "\"$CLAUDE_PROJECT_DIR/.claude/hooks/context-monitor.sh\"",
            "timeout": 10
          }
        ]
      }
    ],
    "SessionStart": [
      {
        "hooks": [
          {
            "type": "command",
            "command": "\"$CLAUDE_PROJECT_DIR/.claude/hooks/session-cleanup.sh\"",
            "timeout": 5
          }
        ]
      }
    ]
  }
}
`

func TestMergeSettings_Create(t *testing.T) {
	out, outcome, err := MergeSettings(nil, false, testHooks())
	require.NoError(t, err)
	assert.Equal(t, Created, outcome)
	assert.Equal(t, freshSettings, string(out))
}

func TestMergeSettings_AddsToExisting(t *testing.T) {
	existing := []byte(`{"permissions": {"allow": ["Bash(ls:*)"]}, "model": "opus"}`)

	out, outcome, err := MergeSettings(existing, true, testHooks())
	require.NoError(t, err)
	assert.Equal(t, Updated, outcome)

	got := decode(t, out)
	assert.Equal(t, "opus", got["model"])
	assert.Equal(t, []interface{}{"Bash(ls:*)"}, got["permissions"].(map[string]interface{})["allow"])

	want := decode(t, []byte(freshSettings))["hooks"]
	if diff := cmp.Diff(want, got["hooks"]); diff != "" {
		t.Errorf("hooks mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeSettings_KeepsShellOperators(t *testing.T) {
	existing := []byte(`{"permissions": {"allow": ["Bash(npm run build && npm test)", "Bash(ls > out.txt)"]},
  "hooks": {"PreToolUse": [{"matcher": "Bash", "hooks": [{"type": "command", "command": "lint <&0"}]}]}}`)

	out, _, err := MergeSettings(existing, true, testHooks())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, `"Bash(npm run build && npm test)"`)
	assert.Contains(t, text, `"Bash(ls > out.txt)"`)
	assert.Contains(t, text, `"command": "lint <&0"`)
	assert.NotContains(t, text, `\u00`)
}

func TestMergeSettings_PreservesKeyOrder(t *testing.T) {
	existing := []byte(`{"zeta": 1, "alpha": {"b": 2, "a": 1}, "mid": [3, 1, 2]}`)

	out, _, err := MergeSettings(existing, true, testHooks())
	require.NoError(t, err)

	s := string(out)
	assert.Less(t, strings.Index(s, `"zeta"`), strings.Index(s, `"alpha"`))
	assert.Less(t, strings.Index(s, `"alpha"`), strings.Index(s, `"mid"`))
	assert.Less(t, strings.Index(s, `"mid"`), strings.Index(s, `"hooks"`))
	assert.Less(t, strings.Index(s, `"b"`), strings.Index(s, `"a"`))
	assert.Contains(t, s, "\"mid\": [\n    3,\n    1,\n    2\n  ]")
}

func TestMergeSettings_KeepsForeignHooks(t *testing.T) {
	existing := []byte(`{
  "hooks": {
    "Stop": [
      {"hooks": [{"type": "command", "command": "notify-send done"}]}
    ],
    "PreToolUse": [
      {"matcher": "Bash", "hooks": [{"type": "command", "command": "audit.sh"}]}
    ]
  }
}`)

	out, outcome, err := MergeSettings(existing, true, testHooks())
	require.NoError(t, err)
	assert.Equal(t, Updated, outcome)

	hooks := decode(t, out)["hooks"].(map[string]interface{})
	stop := hooks["Stop"].([]interface{})
	require.Len(t, stop, 2)
	assert.Contains(t, mustJSON(t, stop[0]), "notify-send done")
	assert.Contains(t, mustJSON(t, stop[1]), "context-monitor.sh")

	assert.Len(t, hooks["PreToolUse"].([]interface{}), 1)
	assert.Len(t, hooks["SessionStart"].([]interface{}), 1)
}

func TestMergeSettings_Idempotent(t *testing.T) {
	inputs := map[string][]byte{
		"fresh":    nil,
		"existing": []byte(`{"env": {"FOO": "bar"}}`),
		"partial":  []byte(`{"hooks": {"Stop": [{"hooks": [{"type": "command", "command": "x/context-monitor.sh"}]}]}}`),
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			first, _, err := MergeSettings(input, input != nil, testHooks())
			require.NoError(t, err)

			second, outcome, err := MergeSettings(first, true, testHooks())
			require.NoError(t, err)
			assert.Equal(t, Unchanged, outcome)
			assert.Equal(t, string(first), string(second))
		})
	}
}

func TestMergeSettings_AlreadyConfiguredIsUntouched(t *testing.T) {
	existing := []byte(`{"hooks":{"Stop":[{"hooks":[{"command":"context-monitor.sh"}]}],"SessionStart":[{"hooks":[{"command":"session-cleanup.sh"}]}]}}`)

	out, outcome, err := MergeSettings(existing, true, testHooks())
	require.NoError(t, err)
	assert.Equal(t, Unchanged, outcome)
	assert.Equal(t, existing, out)
}

func TestMergeSettings_PartialAddsOnlyMissingEvent(t *testing.T) {
	existing := []byte(`{"hooks": {"Stop": [{"hooks": [{"type": "command", "command": "custom/context-monitor.sh", "timeout": 30}]}]}}`)

	out, outcome, err := MergeSettings(existing, true, testHooks())
	require.NoError(t, err)
	assert.Equal(t, Updated, outcome)

	hooks := decode(t, out)["hooks"].(map[string]interface{})
	stop := hooks["Stop"].([]interface{})
	require.Len(t, stop, 1)
	assert.Contains(t, mustJSON(t, stop[0]), `"timeout":30`)
	assert.Len(t, hooks["SessionStart"].([]interface{}), 1)
}

func TestMergeSettings_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid json", `{"hooks": `},
		{"empty file", ``},
		{"array root", `[1, 2]`},
		{"string root", `"hello"`},
		{"hooks not object", `{"hooks": []}`},
		{"hooks null", `{"hooks": null}`},
		{"event not array", `{"hooks": {"Stop": {"hooks": []}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, outcome, err := MergeSettings([]byte(tt.input), true, testHooks())
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrSettingsParse), "got %v", err)
			assert.Nil(t, out)
			assert.Equal(t, Unchanged, outcome)
		})
	}
}

func TestHooksWired(t *testing.T) {
	wired := HooksWired([]byte(freshSettings), testHooks())
	assert.Equal(t, map[string]bool{EventStop: true, EventSessionStart: true}, wired)

	wired = HooksWired([]byte(`{"hooks": {"Stop": [{"hooks": [{"command": "context-monitor.sh"}]}]}}`), testHooks())
	assert.True(t, wired[EventStop])
	assert.False(t, wired[EventSessionStart])

	wired = HooksWired([]byte(`not json`), testHooks())
	assert.False(t, wired[EventStop])
	assert.False(t, wired[EventSessionStart])
}

func TestHookCommandPath(t *testing.T) {
	assert.Equal(t, `"$CLAUDE_PROJECT_DIR/.claude/hooks/context-monitor.sh"`, HookCommandPath("context-monitor.sh"))
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}
