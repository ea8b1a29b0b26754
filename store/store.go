// Package store defines the whole-document state contract: the backing
// store is an opaque document that is read in full and written back in
// full, with no schema or indexing visible to the engine.
package store

import (
	"context"
	"sync"

	"posada/models"
)

// State is the entire persisted document. Missing collections load as
// empty slices.
type State struct {
	Users        []models.User        `json:"users" bson:"users"`
	Reservations []models.Reservation `json:"reservations" bson:"reservations"`
	FoodOrders   []models.FoodOrder   `json:"foodOrders" bson:"foodOrders"`
}

// Store is the external document store. Load returns the last written
// state; Save overwrites it completely.
type Store interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, state State) error
}

// Serialized wraps a Store with the single mutual-exclusion boundary all
// read-modify-write cycles must pass through. Two concurrent admissions
// can otherwise both validate against the same stale snapshot and
// oversell the inventory; holding the lock from load to save closes that
// window.
type Serialized struct {
	mu      sync.Mutex
	backend Store
}

func NewSerialized(backend Store) *Serialized {
	return &Serialized{backend: backend}
}

// Update runs fn on the freshly loaded state and, if fn succeeds, writes
// the mutated state back. Load, fn, and Save happen under one lock.
func (s *Serialized) Update(ctx context.Context, fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.backend.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(&state); err != nil {
		return err
	}
	return s.backend.Save(ctx, state)
}

// View runs fn on a loaded snapshot without writing anything back.
func (s *Serialized) View(ctx context.Context, fn func(State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.backend.Load(ctx)
	if err != nil {
		return err
	}
	return fn(state)
}
