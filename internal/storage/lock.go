package storage

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// FileLock is an exclusive flock held on a lock file. Separate processes
// (and separate FileLocks in one process) exclude each other.
type FileLock struct {
	file *os.File
}

// Lock blocks until it holds the lock at path, creating the file if needed.
// The directory must exist.
func Lock(path string) (*FileLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock: %w", err)
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	return &FileLock{file: f}, nil
}

// Unlock releases the lock. Further calls are no-ops.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}
	err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
	err = errors.Join(err, l.file.Close())
	l.file = nil
	return err
}

// WithLock runs fn while holding the lock at path.
func WithLock(path string, fn func() error) (err error) {
	lock, err := Lock(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, lock.Unlock())
	}()
	return fn()
}
