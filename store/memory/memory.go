// Package memory is the in-process store backend, used in tests and when
// no MongoDB is configured.
package memory

import (
	"context"
	"sync"

	"posada/store"
)

type Store struct {
	mu    sync.RWMutex
	state store.State
}

func New() *Store {
	return &Store{}
}

func (s *Store) Load(_ context.Context) (store.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.state), nil
}

func (s *Store) Save(_ context.Context, state store.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = clone(state)
	return nil
}

// clone copies the collection slices so callers cannot alias the stored
// state across the Load/Save boundary.
func clone(in store.State) store.State {
	out := store.State{}
	out.Users = append(out.Users, in.Users...)
	out.Reservations = append(out.Reservations, in.Reservations...)
	out.FoodOrders = append(out.FoodOrders, in.FoodOrders...)
	return out
}
