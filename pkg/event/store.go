package event

import (
	"iter"
	"slices"
)

// Store is an append-only sequence of events kept in insertion order.
// It is not safe for concurrent use.
type Store struct {
	events []Event
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Append adds e after every event already in the store.
func (s *Store) Append(e Event) {
	s.events = append(s.events, e)
}

// Len returns the number of stored events.
func (s *Store) Len() int {
	return len(s.events)
}

// All iterates over the events in insertion order.
func (s *Store) All() iter.Seq[Event] {
	return slices.Values(s.events)
}

// Events returns a copy of the stored events in insertion order.
func (s *Store) Events() []Event {
	return slices.Clone(s.events)
}
