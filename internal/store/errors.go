package store

import "errors"

var (
	// ErrInvalidActionPayload marks a raw action whose payload does not match its tag.
	ErrInvalidActionPayload = errors.New("invalid action payload")

	// ErrNoStore is the panic value of accessors called without a Store in the context.
	ErrNoStore = errors.New("accessor used outside a live Store")

	// ErrNilAction is the panic value of Dispatch(nil).
	ErrNilAction = errors.New("nil action dispatched")
)
