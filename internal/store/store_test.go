package store

import (
	"bytes"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"develevate/internal/core"
	"develevate/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	Count int      `json:"count"`
	Log   []string `json:"log"`
}

type counterAction interface {
	Action
	isCounterAction()
}

type add struct{ N int }

func (add) ActionType() string { return "ADD" }
func (add) isCounterAction()   {}

type boom struct{}

func (boom) ActionType() string { return "BOOM" }
func (boom) isCounterAction()   {}

type hydrateCounter struct{ Fields Fields }

func (hydrateCounter) ActionType() string { return "HYDRATE" }
func (hydrateCounter) isCounterAction()   {}

type unknownCounter struct{ Type string }

func (a unknownCounter) ActionType() string { return a.Type }
func (unknownCounter) isCounterAction()     {}

func reduceCounter(s counter, action counterAction) counter {
	switch a := action.(type) {
	case add:
		next := s
		next.Count += a.N
		next.Log = append(slices.Clone(s.Log), "add")
		return next
	case boom:
		panic("boom")
	case hydrateCounter:
		next := s
		if err := MergeField(a.Fields, "count", &next.Count); err != nil {
			return s
		}
		if err := MergeField(a.Fields, "log", &next.Log); err != nil {
			return s
		}
		return next
	default:
		return s
	}
}

func newCounter(t *testing.T, persister Persister[counter], logger core.Logger) *Store[counter, counterAction] {
	t.Helper()
	return New(Config[counter, counterAction]{
		Name:      "counter",
		Initial:   counter{Log: []string{"seed"}},
		Reduce:    reduceCounter,
		Hydrate:   func(f Fields) counterAction { return hydrateCounter{Fields: f} },
		Persister: persister,
		Logger:    logger,
	})
}

func TestStore_Dispatch(t *testing.T) {
	s := newCounter(t, nil, nil)
	before := s.GetState()

	s.Dispatch(add{N: 2})
	s.Dispatch(add{N: 3})

	got := s.GetState()
	assert.Equal(t, 5, got.Count)
	assert.Equal(t, []string{"seed", "add", "add"}, got.Log)

	// Earlier snapshots are unaffected
	assert.Equal(t, 0, before.Count)
	assert.Equal(t, []string{"seed"}, before.Log)
}

func TestStore_UnknownActionLeavesState(t *testing.T) {
	s := newCounter(t, nil, nil)
	s.Dispatch(add{N: 1})
	before := s.GetState()

	s.Dispatch(unknownCounter{Type: "FROM_THE_FUTURE"})
	assert.Equal(t, before, s.GetState())
}

func TestStore_NilActionPanics(t *testing.T) {
	s := newCounter(t, nil, nil)
	assert.PanicsWithValue(t, ErrNilAction, func() {
		s.Dispatch(nil)
	})
}

func TestStore_Subscribe(t *testing.T) {
	s := newCounter(t, nil, nil)

	var order []string
	var seen []int
	unsubA := s.Subscribe(func(c counter) {
		order = append(order, "a")
		seen = append(seen, c.Count)
	})
	unsubB := s.Subscribe(func(counter) { order = append(order, "b") })

	s.Dispatch(add{N: 1})
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, []int{1}, seen)

	unsubA()
	unsubA() // idempotent
	s.Dispatch(add{N: 1})
	assert.Equal(t, []string{"a", "b", "b"}, order)
	assert.Equal(t, []int{1}, seen)

	unsubB()
	s.Dispatch(add{N: 1})
	assert.Len(t, order, 3)
}

func TestStore_UnsubscribeDuringNotify(t *testing.T) {
	s := newCounter(t, nil, nil)

	calls := 0
	var unsubLater func()
	s.Subscribe(func(counter) { unsubLater() })
	unsubLater = s.Subscribe(func(counter) { calls++ })

	s.Dispatch(add{N: 1})
	assert.Equal(t, 0, calls, "listener removed earlier in the same notification must not run")
}

func TestStore_ReentrantEnqueueIsQueued(t *testing.T) {
	s := newCounter(t, nil, nil)

	s.Subscribe(func(c counter) {
		if c.Count == 1 {
			s.Enqueue(add{N: 10})
			// Not applied yet: the current transition finishes first
			assert.Equal(t, 1, s.GetState().Count)
		}
	})

	var seen []int
	s.Subscribe(func(c counter) { seen = append(seen, c.Count) })

	s.Dispatch(add{N: 1})

	// Queued action was applied before the outer Dispatch returned
	assert.Equal(t, 11, s.GetState().Count)
	assert.Equal(t, []int{1, 11}, seen)
}

func TestStore_EnqueueWhenIdleApplies(t *testing.T) {
	s := newCounter(t, nil, nil)
	s.Enqueue(add{N: 3})
	assert.Equal(t, 3, s.GetState().Count)
}

// queueLen reports how many actions wait behind the running transition.
func queueLen(s *Store[counter, counterAction]) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

func TestStore_DispatchWaitsForOwnAction(t *testing.T) {
	s := newCounter(t, nil, nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	s.Subscribe(func(c counter) {
		if c.Count == 1 {
			close(entered)
			<-release
		}
	})

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		s.Dispatch(add{N: 1})
	}()
	<-entered

	seen := make(chan int, 1)
	go func() {
		s.Dispatch(add{N: 10})
		seen <- s.GetState().Count
	}()

	require.Eventually(t, func() bool { return queueLen(s) == 1 }, time.Second, time.Millisecond)
	select {
	case got := <-seen:
		t.Fatalf("Dispatch returned before its action was applied (count %d)", got)
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	assert.Equal(t, 11, <-seen)
	<-firstDone
}

func TestStore_PanicReleasesWaiters(t *testing.T) {
	s := newCounter(t, nil, nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	s.Subscribe(func(c counter) {
		if c.Count == 1 {
			close(entered)
			<-release
		}
	})

	panicked := make(chan any, 1)
	go func() {
		defer func() { panicked <- recover() }()
		s.Dispatch(add{N: 1})
	}()
	<-entered

	var waiters sync.WaitGroup
	waiters.Add(1)
	go func() {
		defer waiters.Done()
		s.Dispatch(boom{})
	}()
	require.Eventually(t, func() bool { return queueLen(s) == 1 }, time.Second, time.Millisecond)
	waiters.Add(1)
	go func() {
		defer waiters.Done()
		s.Dispatch(add{N: 5})
	}()
	require.Eventually(t, func() bool { return queueLen(s) == 2 }, time.Second, time.Millisecond)

	close(release)
	assert.Equal(t, "boom", <-panicked)
	waiters.Wait()

	// The action queued behind the panic was dropped
	assert.Equal(t, 1, s.GetState().Count)
	assert.Equal(t, 0, queueLen(s))
}

func TestStore_PanicResetsQueue(t *testing.T) {
	s := newCounter(t, nil, nil)

	assert.PanicsWithValue(t, "boom", func() {
		s.Dispatch(boom{})
	})

	// The store is usable again
	s.Dispatch(add{N: 4})
	assert.Equal(t, 4, s.GetState().Count)
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	s := newCounter(t, nil, core.NopLogger())

	notified := 0
	s.Subscribe(func(counter) { notified++ }) // serialized by the store

	const workers, perWorker = 20, 50
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				s.Dispatch(add{N: 1})
				_ = s.GetState()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker, s.GetState().Count)
	assert.Equal(t, workers*perWorker, notified)
}

func TestStore_PersistsEveryTransition(t *testing.T) {
	mem := storage.NewMemory()
	persister := NewSlotPersister[counter](mem, "counter", nil)

	s := newCounter(t, persister, nil)
	s.Dispatch(add{N: 7})

	data, err := mem.Get("counter")
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":7,"log":["seed","add"]}`, string(data))

	// A fresh store over the same slot starts from the saved snapshot
	restored := newCounter(t, persister, nil)
	assert.Equal(t, s.GetState(), restored.GetState())
}

func TestStore_HydrationKeepsDefaultsForMissingFields(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, mem.Set("counter", []byte(`{"count":3,"retired":true}`)))

	s := newCounter(t, NewSlotPersister[counter](mem, "counter", nil), nil)
	assert.Equal(t, counter{Count: 3, Log: []string{"seed"}}, s.GetState())
}

func TestStore_CorruptSnapshotStartsFresh(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"count":`},
		{"not an object", `[1,2,3]`},
		{"null", `null`},
		{"wrong field type", `{"count":"three"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := storage.NewMemory()
			require.NoError(t, mem.Set("counter", []byte(tt.data)))

			var buf bytes.Buffer
			logger := core.NewLoggerWithWriter(&buf, "debug")

			var s *Store[counter, counterAction]
			require.NotPanics(t, func() {
				s = newCounter(t, NewSlotPersister[counter](mem, "counter", logger), logger)
			})
			assert.Equal(t, counter{Log: []string{"seed"}}, s.GetState())
			assert.Contains(t, buf.String(), "discarding persisted state")
		})
	}
}

type failingPersister struct{ saves int }

func (p *failingPersister) Save(counter) error {
	p.saves++
	return errors.New("disk full")
}

func (p *failingPersister) Load() (Fields, bool) { return nil, false }

func TestStore_SaveFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	p := &failingPersister{}
	s := newCounter(t, p, core.NewLoggerWithWriter(&buf, "warn"))

	s.Dispatch(add{N: 1})

	assert.Equal(t, 1, s.GetState().Count)
	assert.Equal(t, 1, p.saves)
	assert.Contains(t, buf.String(), "failed to persist state")
	assert.Contains(t, buf.String(), "disk full")
}
