package store

import (
	"encoding/json"
	"errors"

	"develevate/internal/core"
	"develevate/internal/storage"
)

// Persister saves a store's state after every transition and loads the last
// saved snapshot at startup.
type Persister[S any] interface {
	// Save writes the whole state. Errors are logged by the Store, never propagated.
	Save(state S) error
	// Load returns the fields of the saved snapshot, or false when there is none
	// or it cannot be read. It never fails.
	Load() (Fields, bool)
}

// SlotPersister persists state as JSON in a single storage slot.
type SlotPersister[S any] struct {
	storage storage.Storage
	slot    string
	logger  core.Logger
}

// NewSlotPersister creates a persister bound to one slot.
func NewSlotPersister[S any](st storage.Storage, slot string, logger core.Logger) *SlotPersister[S] {
	if logger == nil {
		logger = core.NopLogger()
	}
	return &SlotPersister[S]{storage: st, slot: slot, logger: logger}
}

// Save serializes state and overwrites the slot.
func (p *SlotPersister[S]) Save(state S) error {
	data, err := json.Marshal(state)
	if err != nil {
		return &core.PersistenceError{Slot: p.slot, Operation: "encode", Err: err}
	}
	if err := p.storage.Set(p.slot, data); err != nil {
		return &core.PersistenceError{Slot: p.slot, Operation: "save", Err: err}
	}
	return nil
}

// Load reads the slot. A missing slot, unreadable storage, malformed JSON, or
// a snapshot whose known fields have the wrong shape all yield (nil, false).
func (p *SlotPersister[S]) Load() (Fields, bool) {
	data, err := p.storage.Get(p.slot)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.warn("load", err)
		}
		return nil, false
	}

	var fields Fields
	if err := json.Unmarshal(data, &fields); err != nil {
		p.warn("decode", err)
		return nil, false
	}
	if fields == nil {
		p.warn("decode", errors.New("snapshot is not an object"))
		return nil, false
	}

	// Unknown fields are ignored here; known fields must fit the state shape.
	if err := json.Unmarshal(data, new(S)); err != nil {
		p.warn("decode", err)
		return nil, false
	}

	return fields, true
}

func (p *SlotPersister[S]) warn(operation string, err error) {
	p.logger.Warn("discarding persisted state",
		"error", &core.PersistenceError{Slot: p.slot, Operation: operation, Err: err})
}
