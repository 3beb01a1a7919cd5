package testutil

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/sessionkit/handoff/pkg/filesystem"
	"github.com/sessionkit/handoff/pkg/paths"
	"github.com/sessionkit/handoff/pkg/types"
)

// ProjectRoot is where Project places the project in memory.
const ProjectRoot = "/work/project"

// Project is an isolated in-memory project directory.
type Project struct {
	t     *testing.T
	Base  afero.Fs
	FS    types.FS
	Paths *paths.Paths
}

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// NewProject creates an empty project at ProjectRoot.
func NewProject(t *testing.T) *Project {
	t.Helper()

	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll(ProjectRoot, 0755))

	p, err := paths.New(ProjectRoot)
	require.NoError(t, err)

	return &Project{
		t:     t,
		Base:  base,
		FS:    filesystem.NewAferoFS(base),
		Paths: p,
	}
}

// Abs turns a slash-separated project-relative path into an absolute one.
func (p *Project) Abs(rel string) string {
	return filepath.Join(ProjectRoot, filepath.FromSlash(rel))
}

// WriteFile creates rel with content, making parent directories.
func (p *Project) WriteFile(rel, content string) {
	p.t.Helper()
	path := p.Abs(rel)
	require.NoError(p.t, p.FS.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(p.t, p.FS.WriteFile(path, []byte(content), 0644))
}

// ReadFile returns the content of rel, failing the test if it is missing.
func (p *Project) ReadFile(rel string) string {
	p.t.Helper()
	data, err := p.FS.ReadFile(p.Abs(rel))
	require.NoError(p.t, err, "reading %s", rel)
	return string(data)
}

// Exists reports whether rel exists.
func (p *Project) Exists(rel string) bool {
	_, err := p.FS.Stat(p.Abs(rel))
	return err == nil
}

// Mode returns the permission bits of rel.
func (p *Project) Mode(rel string) fs.FileMode {
	p.t.Helper()
	info, err := p.FS.Stat(p.Abs(rel))
	require.NoError(p.t, err, "stat %s", rel)
	return info.Mode().Perm()
}

// Snapshot reads every regular file under the project, keyed by
// slash-separated relative path.
func (p *Project) Snapshot() map[string]string {
	p.t.Helper()
	files := make(map[string]string)
	err := afero.Walk(p.Base, ProjectRoot, func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		data, err := afero.ReadFile(p.Base, path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(ProjectRoot, path)
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(p.t, err)
	return files
}
