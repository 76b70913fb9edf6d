package reactive

import (
	"sync"
	"sync/atomic"
)

// Memo caches a derived value. It is lazy: a change to anything it read
// only marks it stale, and the next Get computes it again. Effects and
// other memos subscribe to a memo the same way they do to a signal.
type Memo[T any] struct {
	src  source
	deps depSet
	fn   func() T

	mu    sync.RWMutex
	value T
	fresh atomic.Bool

	// busy is set while fn runs. A memo that reads itself sees its stale
	// value instead of recursing.
	busy atomic.Bool
}

// NewMemo returns a memo over fn. fn first runs on the first Get or Peek.
func NewMemo[T any](fn func() T) *Memo[T] {
	return &Memo[T]{src: source{id: nextID()}, fn: fn}
}

// Get returns the value, computing it if stale, and subscribes the current
// listener.
func (m *Memo[T]) Get() T {
	m.src.read()
	return m.Peek()
}

// Peek returns the value without subscribing.
func (m *Memo[T]) Peek() T {
	if !m.fresh.Load() {
		m.refresh()
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value
}

// MarkDirty marks the memo stale and passes the change on.
func (m *Memo[T]) MarkDirty() {
	if m.fresh.CompareAndSwap(true, false) {
		m.src.changed()
	}
}

// ID returns the memo's identifier.
func (m *Memo[T]) ID() uint64 { return m.src.id }

func (m *Memo[T]) dependencies() *depSet { return &m.deps }

func (m *Memo[T]) refresh() {
	if m.busy.Swap(true) {
		return
	}
	defer m.busy.Store(false)

	m.deps.drop(m)
	next := func() T {
		defer swapListener(m)()
		return m.fn()
	}()

	m.mu.Lock()
	m.value = next
	m.mu.Unlock()
	m.fresh.Store(true)
}
