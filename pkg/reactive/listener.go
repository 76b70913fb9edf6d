package reactive

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Listener is notified when something it read changes. Memos and effects
// implement it.
type Listener interface {
	// MarkDirty reports that a dependency changed. Memos drop their cached
	// value; effects schedule a re-run.
	MarkDirty()

	// ID identifies the listener when batched notifications are merged.
	ID() uint64
}

// Cleanup runs before an effect re-runs and when it is disposed.
type Cleanup func()

var idSeq atomic.Uint64

// nextID hands out identifiers for signals, memos, effects and owners.
func nextID() uint64 { return idSeq.Add(1) }

// source is the subscriber list behind every Signal and Memo.
type source struct {
	id uint64

	mu   sync.RWMutex
	subs []Listener
}

func (s *source) subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(l.ID()) < 0 {
		s.subs = append(s.subs, l)
	}
}

func (s *source) unsubscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(l.ID())
	if i < 0 {
		return
	}
	last := len(s.subs) - 1
	s.subs[i] = s.subs[last]
	s.subs[last] = nil
	s.subs = s.subs[:last]
}

// indexOf must be called with mu held.
func (s *source) indexOf(id uint64) int {
	return slices.IndexFunc(s.subs, func(l Listener) bool { return l.ID() == id })
}

func (s *source) subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// read subscribes the goroutine's current listener, if any.
func (s *source) read() {
	l := currentListener()
	if l == nil {
		return
	}
	s.subscribe(l)
	if d, ok := l.(dependent); ok {
		d.dependencies().add(s)
	}
}

// changed marks every subscriber dirty. Inside a Batch the subscribers are
// held back until the outermost Batch returns. No lock is held while
// listeners run.
func (s *source) changed() {
	s.mu.RLock()
	subs := slices.Clone(s.subs)
	s.mu.RUnlock()
	if len(subs) == 0 {
		return
	}
	if st := state(); st.batchDepth > 0 {
		st.deferred = append(st.deferred, subs...)
		return
	}
	for _, l := range subs {
		l.MarkDirty()
	}
}

// dependent is a listener that remembers what it read, so it can drop
// those subscriptions before running again.
type dependent interface {
	Listener
	dependencies() *depSet
}

// depSet holds the sources a computation read on its last run.
type depSet struct {
	mu   sync.Mutex
	list []*source
}

func (d *depSet) add(s *source) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !slices.Contains(d.list, s) {
		d.list = append(d.list, s)
	}
}

// drop unsubscribes l from every recorded source and forgets them.
func (d *depSet) drop(l Listener) {
	d.mu.Lock()
	list := d.list
	d.list = nil
	d.mu.Unlock()
	for _, s := range list {
		s.unsubscribe(l)
	}
}
