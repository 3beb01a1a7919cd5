package templates

import (
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/sessionkit/handoff/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest(t *testing.T) {
	entries := Manifest()
	require.Len(t, entries, 10)

	assert.Len(t, ManifestOf(KindCommand), 6)
	assert.Len(t, ManifestOf(KindRule), 2)
	assert.Len(t, ManifestOf(KindHook), 2)

	for _, e := range entries {
		t.Run(e.Source, func(t *testing.T) {
			assert.Equal(t, e.Source, e.Dest)
			if e.Kind == KindHook {
				assert.Equal(t, fs.FileMode(0755), e.Mode)
				assert.True(t, strings.HasPrefix(e.Dest, "hooks/"))
			} else {
				assert.Equal(t, fs.FileMode(0644), e.Mode)
			}
		})
	}

	assert.Equal(t, "commands/resume.md", entries[0].Source)
	assert.Equal(t, "hooks/session-cleanup.sh", entries[len(entries)-1].Source)
}

func TestEmbeddedIsComplete(t *testing.T) {
	src := Embedded()
	for _, e := range Manifest() {
		data, err := Read(src, e)
		require.NoError(t, err, e.Source)
		assert.NotEmpty(t, data, e.Source)
	}
}

func TestEmbeddedMonitorDefaults(t *testing.T) {
	data, err := fs.ReadFile(Embedded(), "hooks/context-monitor.sh")
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasPrefix(content, "#!/"))
	assert.Contains(t, content, "CLAUDE_CONTEXT_THRESHOLD:-"+DefaultThreshold)
	assert.Contains(t, content, "CLAUDE_MAX_CONTEXT:-"+DefaultMaxContext)
}

func TestRead_Missing(t *testing.T) {
	src := fstest.MapFS{
		"commands/resume.md": &fstest.MapFile{Data: []byte("# Resume\n")},
	}
	entries := ManifestOf(KindCommand)

	data, err := Read(src, entries[0])
	require.NoError(t, err)
	assert.Equal(t, "# Resume\n", string(data))

	_, err = Read(src, entries[1])
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateMissing))
	assert.Contains(t, err.Error(), "commands/save-handoff.md not found in package")
	assert.Equal(t, "commands/save-handoff.md", errors.GetErrorDetails(err)["source"])
}

func TestSource(t *testing.T) {
	src, err := Source("")
	require.NoError(t, err)
	_, err = Read(src, Manifest()[0])
	assert.NoError(t, err)

	dir := t.TempDir()
	src, err = Source(dir)
	require.NoError(t, err)
	_, err = Read(src, Manifest()[0])
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateMissing))

	_, err = Source(dir + "/missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateMissing))
}

func TestEntryName(t *testing.T) {
	assert.Equal(t, "context-monitor.sh", ManifestOf(KindHook)[0].Name())
}
