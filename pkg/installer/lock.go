package installer

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/sessionkit/handoff/pkg/errors"
)

// LockTimeout bounds how long Lock waits for another install to finish.
const LockTimeout = 5 * time.Second

const lockRetryDelay = 100 * time.Millisecond

// Lock takes the per-project install lock at path, creating its directory.
// The returned function releases it.
func Lock(ctx context.Context, path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrDirCreate, "failed to create lock directory")
	}

	lock := flock.New(path)
	ctx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		return nil, errors.Newf(errors.ErrLocked, "another handoff install is running (lock %s)", path).
			WithDetail("path", path)
	}

	return func() {
		_ = lock.Unlock()
	}, nil
}
