package usagelog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// lockRetryDelay is how often TryLockTimeout polls a held lock.
const lockRetryDelay = 25 * time.Millisecond

// FileLock provides cross-process file locking using gofrs/flock.
// It serialises rotate-and-append when several hook processes share one log.
type FileLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// NewFileLock creates a lock backed by the file at path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		path:  path,
		flock: flock.New(path),
	}
}

// TryLockTimeout polls for the lock until it is acquired or timeout elapses.
// Returns false with a nil error on timeout.
func (l *FileLock) TryLockTimeout(timeout time.Duration) (bool, error) {
	if l.locked {
		return true, nil
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create lock directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	acquired, err := l.flock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if ctx.Err() != nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}

	l.locked = acquired
	return acquired, nil
}

// Unlock releases the lock. It is safe to call on an unlocked FileLock.
func (l *FileLock) Unlock() error {
	if !l.locked {
		return nil
	}

	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}
