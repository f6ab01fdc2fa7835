package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"develevate/internal/core"
)

const (
	slotExt  = ".json"
	lockName = ".lock"
)

// File stores each slot as <dir>/<key>.json. Writes are atomic renames and the
// directory is held under an exclusive lock until Close.
type File struct {
	dir  string
	lock *FileLock
	mu   sync.Mutex
}

// OpenFile opens (creating if needed) a slot directory and takes its lock.
func OpenFile(dir, owner string, logger core.Logger) (*File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	lock := NewFileLock(filepath.Join(dir, lockName), owner, logger)
	if err := lock.Acquire(); err != nil {
		return nil, err
	}

	return &File{dir: dir, lock: lock}, nil
}

func (f *File) slotPath(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(f.dir, key+slotExt), nil
}

// Get reads a slot.
func (f *File) Get(key string) ([]byte, error) {
	path, err := f.slotPath(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	return data, nil
}

// Set atomically replaces a slot.
func (f *File) Set(key string, value []byte) error {
	path, err := f.slotPath(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := writeFileAtomic(path, value); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

// Delete removes a slot file. Deleting a missing slot is not an error.
func (f *File) Delete(key string) error {
	path, err := f.slotPath(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

// Close releases the directory lock.
func (f *File) Close() error {
	return f.lock.Release()
}
