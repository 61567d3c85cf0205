package wealthflow

import (
	"maps"
	"slices"
	"sync"
)

// subscribers is a set of change callbacks. It is protected by the lock of
// its owner.
type subscribers[T any] struct {
	next  int
	funcs map[int]func(T)
}

// add registers f; the returned cancel function takes mu itself.
func (s *subscribers[T]) add(f func(T), mu sync.Locker) func() {
	if s.funcs == nil {
		s.funcs = make(map[int]func(T))
	}
	id := s.next
	s.next++
	s.funcs[id] = f
	return func() {
		mu.Lock()
		defer mu.Unlock()
		delete(s.funcs, id)
	}
}

// snapshot returns a function calling the current subscribers in
// registration order, to be called once the owner's lock is released.
func (s *subscribers[T]) snapshot() func(T) {
	ids := slices.Sorted(maps.Keys(s.funcs))
	fs := make([]func(T), len(ids))
	for i, id := range ids {
		fs[i] = s.funcs[id]
	}
	return func(v T) {
		for _, f := range fs {
			f(v)
		}
	}
}
