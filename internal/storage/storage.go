// Package storage provides durable named slots holding opaque byte values.
//
// A slot is the local equivalent of a browser storage key: one key, one
// serialized value, overwritten wholesale on every write.
package storage

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sync"
)

// ErrNotFound is returned by Get when a slot has never been written or was deleted.
var ErrNotFound = errors.New("slot not found")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// Storage reads and writes named slots.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// ValidateKey checks that a slot key is safe to use as a file name.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("invalid slot key %q", key)
	}
	return nil
}

// Memory is an in-process Storage. Values are copied on the way in and out.
type Memory struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemory creates an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

// Get returns a copy of the slot value.
func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.slots[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(value), nil
}

// Set replaces the slot value.
func (m *Memory) Set(key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots[key] = slices.Clone(value)
	return nil
}

// Delete removes the slot. Deleting a missing slot is not an error.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.slots, key)
	return nil
}
