package testutil

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/sessionkit/handoff/pkg/templates"
)

// Templates copies the bundled templates into a MapFS, leaving out the
// given source paths (e.g. "hooks/session-cleanup.sh").
func Templates(t *testing.T, omit ...string) fstest.MapFS {
	t.Helper()

	skip := make(map[string]bool, len(omit))
	for _, o := range omit {
		skip[o] = true
	}

	src := templates.Embedded()
	out := fstest.MapFS{}
	for _, e := range templates.Manifest() {
		if skip[e.Source] {
			continue
		}
		data, err := fs.ReadFile(src, e.Source)
		require.NoError(t, err)
		out[e.Source] = &fstest.MapFile{Data: data, Mode: e.Mode}
	}
	return out
}
