package session

import (
	"context"

	"develevate/internal/core"
	"develevate/internal/storage"
	"develevate/internal/store"
)

// Store is the session store.
type Store = store.Store[State, Action]

// NewStore creates the session store persisted in Slot of st and hydrates it.
// A nil st gives an unpersisted store.
func NewStore(st storage.Storage, logger core.Logger) *Store {
	var persister store.Persister[State]
	if st != nil {
		persister = store.NewSlotPersister[State](st, Slot, logger)
	}

	return store.New(store.Config[State, Action]{
		Name:      "session",
		Initial:   Initial(),
		Reduce:    Reduce,
		Hydrate:   func(f store.Fields) Action { return Hydrate{Fields: f} },
		Persister: persister,
		Logger:    logger,
	})
}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Store) context.Context {
	return store.NewContext(ctx, s)
}

// Use binds to the session store in ctx. It panics when ctx carries none.
func Use(ctx context.Context) store.Binding[State, Action] {
	return store.Use[State, Action](ctx)
}
