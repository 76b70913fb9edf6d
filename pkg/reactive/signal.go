package reactive

import (
	"reflect"
	"sync"
)

// Signal holds a value. Reading it with Get inside an effect or memo
// subscribes that computation to later changes.
type Signal[T any] struct {
	src source
	eq  func(T, T) bool

	mu    sync.RWMutex
	value T
}

// NewSignal returns a signal holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{src: source{id: nextID()}, value: initial}
}

// Get returns the value and subscribes the current listener.
func (s *Signal[T]) Get() T {
	s.src.read()
	return s.Peek()
}

// Peek returns the value without subscribing.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores value. Subscribers are notified only when it differs from the
// current value. Set may be called from any goroutine.
func (s *Signal[T]) Set(value T) {
	s.Update(func(T) T { return value })
}

// Update replaces the value with fn(current) under the signal's lock.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	next := fn(s.value)
	changed := !s.same(s.value, next)
	if changed {
		s.value = next
	}
	s.mu.Unlock()

	if changed {
		s.src.changed()
	}
}

// WithEquals replaces the change test used by Set and Update.
func (s *Signal[T]) WithEquals(eq func(a, b T) bool) *Signal[T] {
	s.eq = eq
	return s
}

// ID returns the signal's identifier.
func (s *Signal[T]) ID() uint64 { return s.src.id }

func (s *Signal[T]) same(a, b T) bool {
	if s.eq != nil {
		return s.eq(a, b)
	}
	return equalValues(a, b)
}

// equalValues compares with == when both dynamic types are the same
// comparable type and falls back to reflect.DeepEqual otherwise.
func equalValues[T any](a, b T) bool {
	x, y := any(a), any(b)
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	if t := reflect.TypeOf(x); t == reflect.TypeOf(y) && t.Comparable() {
		return x == y
	}
	return reflect.DeepEqual(x, y)
}
