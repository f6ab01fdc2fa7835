// Package store implements a generic state container: one state value that
// changes only through a reducer, is persisted after every change, and is
// restored from the last saved snapshot at startup.
//
// Transitions are serialized. The goroutine that finds the store idle applies
// its action and then drains any actions queued meanwhile, in FIFO order.
// Dispatch from another goroutine queues behind the transition in progress and
// blocks until its own action is committed, so a caller always reads its own
// writes. Listeners run on the draining goroutine and must use Enqueue, which
// queues without waiting.
package store

import (
	"slices"
	"sync"
	"sync/atomic"

	"develevate/internal/core"
)

// Config describes a store instance.
type Config[S any, A Action] struct {
	Name    string
	Initial S
	Reduce  Reducer[S, A]

	// Hydrate builds the action that merges a loaded snapshot into the initial
	// state. Hydration is skipped when Hydrate or Persister is nil.
	Hydrate   func(Fields) A
	Persister Persister[S]

	Logger core.Logger
}

type queued[A any] struct {
	action A
	done   chan struct{} // closed once action is applied or dropped; nil for Enqueue
}

type listener[S any] struct {
	fn     func(S)
	active atomic.Bool
}

// Store owns one state value and the reducer that evolves it.
type Store[S any, A Action] struct {
	name      string
	reduce    Reducer[S, A]
	persister Persister[S]
	logger    core.Logger

	state atomic.Pointer[S]

	mu        sync.Mutex // guards queue, draining, listeners
	queue     []queued[A]
	draining  bool
	listeners []*listener[S]
}

// New creates a store from cfg and hydrates it from the persister, if any.
func New[S any, A Action](cfg Config[S, A]) *Store[S, A] {
	if cfg.Reduce == nil {
		panic("store: nil reducer")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = core.NopLogger()
	}
	name := cfg.Name
	if name == "" {
		name = "store"
	}

	s := &Store[S, A]{
		name:      name,
		reduce:    cfg.Reduce,
		persister: cfg.Persister,
		logger:    logger,
	}
	initial := cfg.Initial
	s.state.Store(&initial)

	if cfg.Persister != nil && cfg.Hydrate != nil {
		if fields, ok := cfg.Persister.Load(); ok {
			s.logger.Debug("hydrating store", "store", name, "fields", len(fields))
			s.Dispatch(cfg.Hydrate(fields))
		}
	}

	return s
}

// GetState returns the last committed state.
func (s *Store[S, A]) GetState() S {
	return *s.state.Load()
}

// Dispatch applies action and returns once it is committed, persisted and
// notified. When another transition is in progress the action is queued and
// Dispatch waits for it. Calling Dispatch from a listener deadlocks; listeners
// use Enqueue.
//
// It panics with ErrNilAction on a nil action. A panic raised by the reducer
// or a listener propagates to the draining caller and drops the queued
// actions; their Dispatch calls return without applying them.
func (s *Store[S, A]) Dispatch(action A) {
	done := make(chan struct{})
	if s.enqueue(action, done) {
		s.drain()
		return
	}
	<-done
}

// Enqueue applies action like Dispatch when the store is idle. Otherwise it
// queues action behind the transition in progress and returns immediately.
func (s *Store[S, A]) Enqueue(action A) {
	if s.enqueue(action, nil) {
		s.drain()
	}
}

// enqueue appends action and reports whether the caller must drain.
func (s *Store[S, A]) enqueue(action A, done chan struct{}) bool {
	if any(action) == nil {
		panic(ErrNilAction)
	}

	s.mu.Lock()
	s.queue = append(s.queue, queued[A]{action: action, done: done})
	if s.draining {
		s.mu.Unlock()
		s.logger.Debug("action queued", "store", s.name, "action", action.ActionType())
		return false
	}
	s.draining = true
	s.mu.Unlock()
	return true
}

func (s *Store[S, A]) drain() {
	var current queued[A]
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			dropped := s.queue
			s.draining = false
			s.queue = nil
			s.mu.Unlock()

			release(current)
			for _, q := range dropped {
				release(q)
			}
			if len(dropped) > 0 {
				s.logger.Warn("dropped queued actions", "store", s.name, "count", len(dropped))
			}
			panic(r)
		}
	}()

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.draining = false
			s.mu.Unlock()
			return
		}
		current = s.queue[0]
		s.queue[0] = queued[A]{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.apply(current.action)
		release(current)
		current = queued[A]{}
	}
}

func release[A any](q queued[A]) {
	if q.done != nil {
		close(q.done)
	}
}

func (s *Store[S, A]) apply(action A) {
	next := s.reduce(*s.state.Load(), action)
	s.state.Store(&next)
	s.logger.Debug("action applied", "store", s.name, "action", action.ActionType())

	if s.persister != nil {
		if err := s.persister.Save(next); err != nil {
			s.logger.Warn("failed to persist state", "store", s.name, "error", err)
		}
	}

	s.mu.Lock()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		if l.active.Load() {
			l.fn(next)
		}
	}
}

// Subscribe registers fn to be called with the committed state after every
// dispatch. Listeners run in registration order on the draining goroutine. The returned function
// unsubscribes fn and may be called any number of times.
func (s *Store[S, A]) Subscribe(fn func(S)) (unsubscribe func()) {
	l := &listener[S]{fn: fn}
	l.active.Store(true)

	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.active.Store(false)
			s.mu.Lock()
			s.listeners = slices.DeleteFunc(s.listeners, func(x *listener[S]) bool { return x == l })
			s.mu.Unlock()
		})
	}
}
