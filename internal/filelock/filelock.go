// Package filelock serializes writers of classification records across
// goroutines and processes, and replaces files atomically.
package filelock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// retryDelay is how often a blocked Lock re-checks the lock file.
const retryDelay = 20 * time.Millisecond

// Lock is an exclusive advisory lock held on "<path>.lock".
type Lock struct {
	flock *flock.Flock
}

// Acquire blocks until the lock guarding path is held or ctx is done.
func Acquire(ctx context.Context, path string) (*Lock, error) {
	lockPath := path + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	fl := flock.New(lockPath)
	locked, err := fl.TryLockContext(ctx, retryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire lock on %s: %w", lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("acquire lock on %s: %w", lockPath, ctx.Err())
	}
	return &Lock{flock: fl}, nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("release lock on %s: %w", l.flock.Path(), err)
	}
	return nil
}

// AtomicWrite replaces path with data so readers never observe a partial
// file. The temp file lives in the target directory to keep rename atomic.
func AtomicWrite(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}
	return nil
}

// LockAndWrite holds the lock for path while writing it atomically.
func LockAndWrite(ctx context.Context, path string, data []byte) error {
	lock, err := Acquire(ctx, path)
	if err != nil {
		return err
	}
	defer lock.Release()

	return AtomicWrite(path, data)
}
