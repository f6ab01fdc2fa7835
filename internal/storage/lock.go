package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"syscall"
	"time"

	"develevate/internal/core"
)

// staleLockAge is how old a lock may get before another process may take it over.
const staleLockAge = 30 * time.Minute

// LockFile represents the metadata stored in <data dir>/.lock.
type LockFile struct {
	PID       int       `json:"pid"`
	Hostname  string    `json:"hostname"`
	Owner     string    `json:"owner"` // "cli", "test", ...
	Timestamp time.Time `json:"timestamp"`
}

// FileLock guards a data directory against concurrent writers in other processes.
type FileLock struct {
	path   string
	file   *os.File
	owner  string
	logger core.Logger
}

// NewFileLock creates a new file lock.
func NewFileLock(path, owner string, logger core.Logger) *FileLock {
	if logger == nil {
		logger = core.NopLogger()
	}
	return &FileLock{
		path:   path,
		owner:  owner,
		logger: logger,
	}
}

// Acquire attempts to acquire the file lock with stale detection.
func (l *FileLock) Acquire() error {
	return l.acquire(true)
}

func (l *FileLock) acquire(allowSteal bool) error {
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return &core.LockError{Operation: "acquire", Message: "open lock file", Err: err}
	}

	// Try exclusive lock (non-blocking)
	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		if closeErr := file.Close(); closeErr != nil {
			l.logger.Warn("failed to close lock file during error handling", "error", closeErr)
		}

		existing, readErr := l.readLockFile()
		if allowSteal && readErr == nil && isStale(existing) {
			return l.stealLock()
		}

		if readErr == nil {
			age := time.Since(existing.Timestamp).Round(time.Second)
			return &core.LockError{
				Operation: "acquire",
				Message:   fmt.Sprintf("data directory locked by %s (PID %d, %v ago)", existing.Owner, existing.PID, age),
				Err:       err,
			}
		}

		return &core.LockError{Operation: "acquire", Message: "lock held by another process", Err: err}
	}

	l.file = file

	hostname, _ := os.Hostname()
	lockData := LockFile{
		PID:       os.Getpid(),
		Hostname:  hostname,
		Owner:     l.owner,
		Timestamp: time.Now(),
	}

	data, _ := json.MarshalIndent(lockData, "", "  ")
	if err := file.Truncate(0); err != nil {
		return &core.LockError{Operation: "acquire", Message: "truncate lock file", Err: err}
	}
	if _, err := file.Seek(0, 0); err != nil {
		return &core.LockError{Operation: "acquire", Message: "seek lock file", Err: err}
	}
	if _, err := file.Write(data); err != nil {
		return &core.LockError{Operation: "acquire", Message: "write lock metadata", Err: err}
	}

	return nil
}

// Release releases the file lock and removes the lock file.
func (l *FileLock) Release() error {
	if l.file == nil {
		return nil
	}

	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		l.logger.Warn("failed to release flock", "error", err)
	}
	if err := l.file.Close(); err != nil {
		l.logger.Warn("failed to close lock file", "error", err)
	}
	l.file = nil

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return &core.LockError{Operation: "release", Message: "remove lock file", Err: err}
	}
	return nil
}

// readLockFile reads the current lock metadata.
func (l *FileLock) readLockFile() (*LockFile, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, err
	}

	var lock LockFile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, err
	}

	return &lock, nil
}

// isStale checks if a lock is stale (process dead or too old).
func isStale(lock *LockFile) bool {
	process, err := os.FindProcess(lock.PID)
	if err != nil {
		return true
	}

	// On Unix, FindProcess always succeeds, so we need to signal to check
	if err := process.Signal(syscall.Signal(0)); err != nil {
		return true
	}

	return time.Since(lock.Timestamp) > staleLockAge
}

// stealLock removes a stale lock file and acquires a fresh one.
func (l *FileLock) stealLock() error {
	l.logger.Warn("taking over stale lock", "path", l.path)

	// Best effort; a concurrent steal will make the retry fail cleanly
	_ = os.Remove(l.path)

	return l.acquire(false)
}
