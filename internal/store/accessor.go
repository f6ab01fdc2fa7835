package store

import "context"

type contextKey[S any, A Action] struct{}

// Binding is what a consumer gets from Use: the state at the time of the call
// and the dispatch function of the owning store.
type Binding[S any, A Action] struct {
	State    S
	Dispatch func(A)
}

// NewContext returns a copy of ctx carrying s.
func NewContext[S any, A Action](ctx context.Context, s *Store[S, A]) context.Context {
	return context.WithValue(ctx, contextKey[S, A]{}, s)
}

// Lookup returns the store carried by ctx, if any.
func Lookup[S any, A Action](ctx context.Context) (*Store[S, A], bool) {
	s, ok := ctx.Value(contextKey[S, A]{}).(*Store[S, A])
	return s, ok && s != nil
}

// FromContext returns the store carried by ctx. It panics with ErrNoStore when
// there is none: using an accessor outside a live store is a programming error.
func FromContext[S any, A Action](ctx context.Context) *Store[S, A] {
	s, ok := Lookup[S, A](ctx)
	if !ok {
		panic(ErrNoStore)
	}
	return s
}

// Use binds to the store carried by ctx. It panics like FromContext.
func Use[S any, A Action](ctx context.Context) Binding[S, A] {
	s := FromContext[S, A](ctx)
	return Binding[S, A]{State: s.GetState(), Dispatch: s.Dispatch}
}
