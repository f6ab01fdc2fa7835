package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"develevate/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Storage {
	t.Helper()

	file, err := OpenFile(filepath.Join(t.TempDir(), "slots"), "test", core.NopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "slots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]Storage{
		"memory": NewMemory(),
		"file":   file,
		"sqlite": db,
	}
}

func TestStorage_GetSetDelete(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get("devElevateState")
			assert.True(t, errors.Is(err, ErrNotFound), "missing slot should be ErrNotFound, got %v", err)

			require.NoError(t, s.Set("devElevateState", []byte(`{"darkMode":true}`)))

			data, err := s.Get("devElevateState")
			require.NoError(t, err)
			assert.JSONEq(t, `{"darkMode":true}`, string(data))

			// Overwrite replaces the whole value
			require.NoError(t, s.Set("devElevateState", []byte(`{"darkMode":false}`)))
			data, err = s.Get("devElevateState")
			require.NoError(t, err)
			assert.JSONEq(t, `{"darkMode":false}`, string(data))

			require.NoError(t, s.Delete("devElevateState"))
			_, err = s.Get("devElevateState")
			assert.True(t, errors.Is(err, ErrNotFound))

			// Deleting twice is fine
			require.NoError(t, s.Delete("devElevateState"))
		})
	}
}

func TestStorage_SlotsAreIndependent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("devElevateAuth", []byte(`{"isAuthenticated":true}`)))
			require.NoError(t, s.Set("devElevateState", []byte(`{"darkMode":true}`)))

			auth, err := s.Get("devElevateAuth")
			require.NoError(t, err)
			assert.JSONEq(t, `{"isAuthenticated":true}`, string(auth))

			state, err := s.Get("devElevateState")
			require.NoError(t, err)
			assert.JSONEq(t, `{"darkMode":true}`, string(state))
		})
	}
}

func TestStorage_RejectsUnsafeKeys(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "../escape", "a/b", "..", "with space"} {
				assert.Error(t, s.Set(key, []byte("{}")), "key %q", key)
			}
		})
	}
}

func TestMemory_CopiesValues(t *testing.T) {
	m := NewMemory()

	value := []byte(`{"a":1}`)
	require.NoError(t, m.Set("slot", value))
	value[0] = 'X'

	got, err := m.Get("slot")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	got[0] = 'Y'
	again, err := m.Get("slot")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(again))
}

func TestFile_PersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "slots")

	f, err := OpenFile(dir, "test", core.NopLogger())
	require.NoError(t, err)
	require.NoError(t, f.Set("devElevateState", []byte(`{"currentModule":"chatbot"}`)))
	require.NoError(t, f.Close())

	// Slot file is plain JSON named after the key
	raw, err := os.ReadFile(filepath.Join(dir, "devElevateState.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"currentModule":"chatbot"}`, string(raw))

	reopened, err := OpenFile(dir, "test", core.NopLogger())
	require.NoError(t, err)
	defer reopened.Close()

	data, err := reopened.Get("devElevateState")
	require.NoError(t, err)
	assert.JSONEq(t, `{"currentModule":"chatbot"}`, string(data))
}

func TestFile_SecondOpenIsLocked(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "slots")

	first, err := OpenFile(dir, "first", core.NopLogger())
	require.NoError(t, err)
	defer first.Close()

	_, err = OpenFile(dir, "second", core.NopLogger())
	require.Error(t, err)

	var lockErr *core.LockError
	require.True(t, errors.As(err, &lockErr))
	assert.Contains(t, err.Error(), "locked by first")
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.db")

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, db.Set("devElevateAuth", []byte(`{"sessionToken":"token_abc"}`)))
	require.NoError(t, db.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	data, err := reopened.Get("devElevateAuth")
	require.NoError(t, err)
	assert.JSONEq(t, `{"sessionToken":"token_abc"}`, string(data))
}
