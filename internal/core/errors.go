package core

import "fmt"

// ValidationError reports input rejected before it is dispatched to a store.
// Field names the offending input, such as "progress" or "message".
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LockError reports a failure to take or release the exclusive lock that
// keeps a second process out of the data directory.
type LockError struct {
	Operation string
	Message   string
	Err       error
}

func (e *LockError) Error() string {
	return fmt.Sprintf("lock %s: %s", e.Operation, e.Message)
}

func (e *LockError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a failure reading or writing a storage slot.
type PersistenceError struct {
	Slot      string
	Operation string // "load", "save", "decode", "encode"
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s %s: %v", e.Operation, e.Slot, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NetworkError reports a failed call to a remote endpoint. URL is the
// endpoint base, for example the Gemini API host.
type NetworkError struct {
	Operation string
	URL       string
	Message   string
	Err       error
}

func (e *NetworkError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("network %s to %s: %s", e.Operation, e.URL, e.Message)
	}
	return fmt.Sprintf("network %s: %s", e.Operation, e.Message)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
