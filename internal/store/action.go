package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"develevate/internal/core"
)

// Action is a tagged description of a requested state transition.
// Each domain package declares a closed vocabulary by embedding Action in its
// own interface together with an unexported marker method.
type Action interface {
	ActionType() string
}

// Reducer maps the current state and an action to the next state.
// Reducers must not mutate their input and must return it unchanged for
// actions they do not recognize.
type Reducer[S any, A Action] func(state S, action A) S

// Fields holds the top-level fields present in a persisted snapshot, keyed by
// their JSON name. Fields missing from the map were absent from the snapshot.
type Fields map[string]json.RawMessage

// Has reports whether the snapshot carried the named field.
func (f Fields) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// MergeField decodes the named field into dst when it is present.
// dst receives a freshly decoded value, so nothing in fields is shared with it.
func MergeField[T any](fields Fields, name string, dst *T) error {
	raw, ok := fields[name]
	if !ok {
		return nil
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("decode field %s: %w", name, err)
	}
	*dst = v
	return nil
}

// RawAction is the JSON transport form of an action: {"type": "...", "payload": ...}.
type RawAction struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ParseRawAction parses a JSON action envelope.
func ParseRawAction(data []byte) (RawAction, error) {
	var raw RawAction
	if err := json.Unmarshal(data, &raw); err != nil {
		return RawAction{}, &core.ValidationError{
			Field:   "action",
			Message: fmt.Sprintf("malformed action: %v", err),
			Err:     ErrInvalidActionPayload,
		}
	}
	if raw.Type == "" {
		return RawAction{}, &core.ValidationError{
			Field:   "action",
			Message: "action type is required",
			Err:     ErrInvalidActionPayload,
		}
	}
	return raw, nil
}

// DecodePayload decodes the payload of raw into T. A missing or mismatched
// payload is reported as a *core.ValidationError wrapping ErrInvalidActionPayload.
func DecodePayload[T any](raw RawAction) (T, error) {
	var v T
	payload := bytes.TrimSpace(raw.Payload)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return v, &core.ValidationError{
			Field:   raw.Type,
			Message: "payload is required",
			Err:     ErrInvalidActionPayload,
		}
	}

	if err := json.Unmarshal(payload, &v); err != nil {
		return v, &core.ValidationError{
			Field:   raw.Type,
			Message: fmt.Sprintf("%v: %v", ErrInvalidActionPayload, err),
			Err:     fmt.Errorf("%w: %w", ErrInvalidActionPayload, err),
		}
	}
	return v, nil
}
