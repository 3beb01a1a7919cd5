package merge

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/sessionkit/handoff/pkg/errors"
)

// Hook event names understood by the assistant.
const (
	EventStop         = "Stop"
	EventSessionStart = "SessionStart"
)

const hooksKey = "hooks"

// HookCommand is a single hook invocation in settings.json.
type HookCommand struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout int    `json:"timeout,omitempty"`
}

// HookGroup is a matcher group under a hook event.
type HookGroup struct {
	Matcher string        `json:"matcher,omitempty"`
	Hooks   []HookCommand `json:"hooks"`
}

// EventHook binds one of our scripts to a hook event.
type EventHook struct {
	Event  string
	Script string
	Group  HookGroup
}

// HookCommandPath is the command line settings.json uses to run script.
func HookCommandPath(script string) string {
	return `"$CLAUDE_PROJECT_DIR/.claude/hooks/` + script + `"`
}

// DefaultHooks returns the Stop and SessionStart bindings handoff installs.
func DefaultHooks(monitor, cleanup string, stopTimeout, sessionStartTimeout int) []EventHook {
	return []EventHook{
		newEventHook(EventStop, monitor, stopTimeout),
		newEventHook(EventSessionStart, cleanup, sessionStartTimeout),
	}
}

func newEventHook(event, script string, timeout int) EventHook {
	return EventHook{
		Event:  event,
		Script: script,
		Group: HookGroup{
			Hooks: []HookCommand{{
				Type:    "command",
				Command: HookCommandPath(script),
				Timeout: timeout,
			}},
		},
	}
}

type object = orderedmap.OrderedMap[string, json.RawMessage]

// MergeSettings wires wanted into the hooks section of settings.json.
//
// Existing keys keep their order and values. For each event, our group is
// appended only when no group under that event already mentions the script,
// so foreign hooks on the same event survive. The result is indented with
// two spaces and ends with a newline. When nothing needs adding the input is
// returned as is.
func MergeSettings(existing []byte, exists bool, wanted []EventHook) ([]byte, Outcome, error) {
	root := orderedmap.New[string, json.RawMessage]()
	outcome := Created

	if exists {
		parsed, err := parseObject(existing, "settings.json")
		if err != nil {
			return nil, Unchanged, err
		}
		root = parsed
		outcome = Updated
	}

	hooks := orderedmap.New[string, json.RawMessage]()
	if raw, ok := root.Get(hooksKey); ok {
		parsed, err := parseObject(raw, "settings.json hooks")
		if err != nil {
			return nil, Unchanged, err
		}
		hooks = parsed
	}

	added := 0
	for _, w := range wanted {
		var groups []json.RawMessage
		if raw, ok := hooks.Get(w.Event); ok {
			if err := parseArray(raw, &groups); err != nil {
				return nil, Unchanged, errors.Wrapf(err, errors.ErrSettingsParse,
					"settings.json hooks.%s must be an array", w.Event).WithDetail("event", w.Event)
			}
		}
		if groupsReference(groups, w.Script) {
			continue
		}

		group, err := encodeValue(w.Group)
		if err != nil {
			return nil, Unchanged, errors.Wrap(err, errors.ErrInternal, "failed to encode hook group")
		}
		hooks.Set(w.Event, encodeArray(append(groups, group)))
		added++
	}

	if exists && added == 0 {
		return existing, Unchanged, nil
	}

	encodedHooks, err := encodeObject(hooks)
	if err != nil {
		return nil, Unchanged, errors.Wrap(err, errors.ErrInternal, "failed to encode hooks")
	}
	root.Set(hooksKey, encodedHooks)

	compact, err := encodeObject(root)
	if err != nil {
		return nil, Unchanged, errors.Wrap(err, errors.ErrInternal, "failed to encode settings")
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, Unchanged, errors.Wrap(err, errors.ErrInternal, "failed to format settings")
	}
	out.WriteByte('\n')

	return out.Bytes(), outcome, nil
}

// encodeObject writes m as compact JSON. Values are copied byte for byte;
// keys are encoded without HTML escaping so "&", "<" and ">" stay as typed.
func encodeObject(m *object) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, err := encodeValue(pair.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(pair.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeArray(items []json.RawMessage) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(item)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

func encodeValue(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// HooksWired reports, per event, whether settings.json already runs the
// wanted script. Missing or unreadable settings count as not wired.
func HooksWired(settings []byte, wanted []EventHook) map[string]bool {
	wired := make(map[string]bool, len(wanted))
	for _, w := range wanted {
		wired[w.Event] = false
	}

	root, err := parseObject(settings, "settings.json")
	if err != nil {
		return wired
	}
	raw, ok := root.Get(hooksKey)
	if !ok {
		return wired
	}
	hooks, err := parseObject(raw, "settings.json hooks")
	if err != nil {
		return wired
	}

	for _, w := range wanted {
		raw, ok := hooks.Get(w.Event)
		if !ok {
			continue
		}
		var groups []json.RawMessage
		if err := parseArray(raw, &groups); err != nil {
			continue
		}
		wired[w.Event] = groupsReference(groups, w.Script)
	}
	return wired
}

func groupsReference(groups []json.RawMessage, script string) bool {
	for _, g := range groups {
		if bytes.Contains(g, []byte(script)) {
			return true
		}
	}
	return false
}

func parseObject(data []byte, what string) (*object, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return nil, errors.Newf(errors.ErrSettingsParse, "%s is not valid JSON", what)
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.Newf(errors.ErrSettingsParse, "%s must be a JSON object", what)
	}

	obj := orderedmap.New[string, json.RawMessage]()
	if err := obj.UnmarshalJSON(trimmed); err != nil {
		return nil, errors.Wrapf(err, errors.ErrSettingsParse, "failed to parse %s", what)
	}
	return obj, nil
}

func parseArray(raw json.RawMessage, dst *[]json.RawMessage) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return errors.New(errors.ErrSettingsParse, "not an array")
	}
	return json.Unmarshal(trimmed, dst)
}
