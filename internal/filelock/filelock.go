// Package filelock serializes writers of the file store across processes
// with an advisory lock on a sibling lock file.
package filelock

import (
	"context"
	"os"
	"time"
)

const (
	lockFileMode = 0o600
	// retryInterval is how often a contended lock is retried.
	retryInterval = 5 * time.Millisecond
)

// Lock acquires the lock at path, waiting as long as it takes.
func Lock(path string) (unlock func() error, err error) {
	return LockContext(context.Background(), path)
}

// LockContext acquires an exclusive advisory lock on the file at path,
// creating it if needed. It polls until the lock is free or ctx is done.
// The returned function releases the lock.
func LockContext(ctx context.Context, path string) (unlock func() error, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock file path from config
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()
	for {
		ok, err := tryLockFile(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	return func() error {
		unlockErr := unlockFile(f)
		closeErr := f.Close()
		if unlockErr != nil {
			return unlockErr
		}
		return closeErr
	}, nil
}
