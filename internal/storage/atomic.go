package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WriteTx replaces a single file atomically using a temp-file-then-rename pattern.
// The new content is written to <path>.tmp.<nanos> and renamed over the target on commit.
type WriteTx struct {
	path      string // Target file
	tempPath  string // Temporary sibling file
	file      *os.File
	committed bool
}

// NewWriteTx creates a new write transaction for path.
func NewWriteTx(path string) *WriteTx {
	return &WriteTx{
		path:     path,
		tempPath: fmt.Sprintf("%s.tmp.%d", path, time.Now().UnixNano()),
	}
}

// Begin creates the temp file next to the target.
// The parent directory is created when missing.
func (tx *WriteTx) Begin() error {
	if err := os.MkdirAll(filepath.Dir(tx.path), 0755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	file, err := os.OpenFile(tx.tempPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tx.file = file
	return nil
}

// Write appends content to the pending file.
func (tx *WriteTx) Write(content []byte) error {
	if tx.committed {
		return fmt.Errorf("transaction already committed")
	}
	if tx.file == nil {
		return fmt.Errorf("transaction not started")
	}

	if _, err := tx.file.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	return nil
}

// Commit flushes the temp file and renames it over the target.
func (tx *WriteTx) Commit() error {
	if tx.committed {
		return fmt.Errorf("transaction already committed")
	}
	if tx.file == nil {
		return fmt.Errorf("transaction not started")
	}

	if err := tx.file.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tx.file.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	tx.file = nil

	if err := os.Rename(tx.tempPath, tx.path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}

	tx.committed = true
	return nil
}

// Rollback discards the temp file. The target is left untouched.
func (tx *WriteTx) Rollback() error {
	if tx.committed {
		return fmt.Errorf("cannot rollback committed transaction")
	}

	if tx.file != nil {
		// Best effort; the file is removed below either way
		_ = tx.file.Close()
		tx.file = nil
	}

	if err := os.Remove(tx.tempPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// TempPath returns the path of the pending file.
func (tx *WriteTx) TempPath() string {
	return tx.tempPath
}

// writeFileAtomic runs a full transaction for content.
func writeFileAtomic(path string, content []byte) error {
	tx := NewWriteTx(path)
	if err := tx.Begin(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := tx.Write(content); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("commit transaction: %w (rollback failed: %v)", err, rbErr)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
