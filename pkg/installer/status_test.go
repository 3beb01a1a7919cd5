package installer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionkit/handoff/pkg/errors"
	"github.com/sessionkit/handoff/pkg/testutil"
	"github.com/sessionkit/handoff/pkg/types"
)

func checksByName(result *types.StatusResult) map[string]types.StatusCheck {
	out := make(map[string]types.StatusCheck, len(result.Checks))
	for _, c := range result.Checks {
		out[c.Name] = c
	}
	return out
}

func TestStatus_NotInstalled(t *testing.T) {
	p := testutil.NewProject(t)

	result, err := Status(p.FS, p.Paths, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPartialInstall))

	assert.False(t, result.Installed)
	assert.Empty(t, result.Threshold)

	checks := checksByName(result)
	assert.Equal(t, "0/6", checks["Commands"].Detail)
	assert.Equal(t, "missing", checks["settings.json"].Detail)
	assert.Equal(t, "missing", checks["Handoff"].Detail)
	for _, c := range result.Checks {
		assert.False(t, c.OK, c.Name)
	}
}

func TestStatus_Installed(t *testing.T) {
	p := testutil.NewProject(t)
	_, err := run(t, p, nil)
	require.NoError(t, err)

	result, err := Status(p.FS, p.Paths, nil)
	require.NoError(t, err)

	assert.True(t, result.Installed)
	assert.Equal(t, "80", result.Threshold)
	assert.Equal(t, "200000", result.MaxContext)

	for _, c := range result.Checks {
		assert.True(t, c.OK, "%s: %s", c.Name, c.Detail)
	}
	checks := checksByName(result)
	assert.Equal(t, "6/6", checks["Commands"].Detail)
	assert.Equal(t, "2/2", checks["Rules"].Detail)
	assert.Equal(t, "2/2", checks["Hooks"].Detail)
	assert.Equal(t, "no session saved yet", checks["Handoff"].Detail)
}

func TestStatus_DetectsDrift(t *testing.T) {
	p := testutil.NewProject(t)
	_, err := run(t, p, nil)
	require.NoError(t, err)

	p.WriteFile(".claude/settings.json", `{"hooks": {"Stop": [{"hooks": [{"command": "context-monitor.sh"}]}]}}`)
	p.WriteFile(".gitignore", "bin/\n")
	require.NoError(t, p.FS.Chmod(p.Abs(".claude/hooks/session-cleanup.sh"), 0644))
	p.WriteFile(".claude/handoffs/_active.md", "# Session Handoff\n\n## Active Workstream\npayments\nsecond line\n")

	result, err := Status(p.FS, p.Paths, nil)
	require.NoError(t, err, "commands and hooks are all present")

	checks := checksByName(result)
	assert.False(t, checks["settings.json"].OK)
	assert.Equal(t, "hooks not wired: SessionStart", checks["settings.json"].Detail)
	assert.False(t, checks[".gitignore"].OK)
	assert.False(t, checks["Hooks"].OK)
	assert.True(t, strings.HasSuffix(checks["Hooks"].Detail, "not executable: session-cleanup.sh"))
	assert.Equal(t, "active workstream: payments; missing sections: Last Updated, Active Agent(s), "+
		"What Was Done, What's Next, Key Files, Decisions Registry", checks["Handoff"].Detail)
}
