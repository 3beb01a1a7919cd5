package filesystem

import (
	"io/fs"
	"path/filepath"

	"github.com/sessionkit/handoff/pkg/types"
	"github.com/spf13/afero"
)

// dryRunFS reads through to a base filesystem and keeps every write in an
// in-memory layer. Removals of base files are recorded as whiteouts because
// afero's CopyOnWriteFs refuses to delete from a read-only base.
type dryRunFS struct {
	aferoFS
	removed map[string]bool
}

// NewDryRunFS returns a filesystem that reads through to the OS but never
// writes to it. The installer runs against it for --dry-run so the report
// reflects real project state without touching disk.
func NewDryRunFS() types.FS {
	return NewOverlayFS(afero.NewOsFs())
}

// NewOverlayFS wraps base in a read-only copy-on-write overlay.
func NewOverlayFS(base afero.Fs) types.FS {
	cow := afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(base), afero.NewMemMapFs())
	return &dryRunFS{
		aferoFS: aferoFS{fs: cow},
		removed: make(map[string]bool),
	}
}

func (d *dryRunFS) hidden(name string) bool {
	return d.removed[filepath.Clean(name)]
}

func (d *dryRunFS) notExist(op, name string) error {
	return &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
}

func (d *dryRunFS) Stat(name string) (fs.FileInfo, error) {
	if d.hidden(name) {
		return nil, d.notExist("stat", name)
	}
	return d.aferoFS.Stat(name)
}

func (d *dryRunFS) ReadFile(name string) ([]byte, error) {
	if d.hidden(name) {
		return nil, d.notExist("read", name)
	}
	return d.aferoFS.ReadFile(name)
}

func (d *dryRunFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	delete(d.removed, filepath.Clean(name))
	return d.aferoFS.WriteFile(name, data, perm)
}

func (d *dryRunFS) Chmod(name string, mode fs.FileMode) error {
	if d.hidden(name) {
		return d.notExist("chmod", name)
	}
	return d.aferoFS.Chmod(name, mode)
}

func (d *dryRunFS) Remove(name string) error {
	if _, err := d.Stat(name); err != nil {
		return err
	}
	// Drop any layered copy first; a base-only file just gets a whiteout.
	_ = d.fs.Remove(name)
	d.removed[filepath.Clean(name)] = true
	return nil
}
