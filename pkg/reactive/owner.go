package reactive

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Owner is a disposal scope. Effects, cleanups and child owners created
// under it go away with it. Owners mirror the mounted view tree: every
// component and dynamic region gets one.
type Owner struct {
	id     uint64
	parent *Owner

	// wake comes from the root. It is called from whichever goroutine
	// queued an effect.
	wake func()

	mu       sync.Mutex
	children []*Owner
	effects  []*Effect
	cleanups []func()
	queue    []*Effect

	disposed atomic.Bool
}

// NewRoot returns a root owner. A non-nil wake is called each time an effect
// anywhere under the root is queued; it must not block.
func NewRoot(wake func()) *Owner {
	return &Owner{id: nextID(), wake: wake}
}

// NewOwner returns a child of parent that shares its wake function. A nil
// parent yields a root with no wake.
func NewOwner(parent *Owner) *Owner {
	if parent == nil {
		return NewRoot(nil)
	}
	o := &Owner{id: nextID(), parent: parent, wake: parent.wake}
	parent.mu.Lock()
	parent.children = append(parent.children, o)
	parent.mu.Unlock()
	return o
}

// ID returns the owner's identifier.
func (o *Owner) ID() uint64 { return o.id }

// Parent returns the parent owner, nil for a root.
func (o *Owner) Parent() *Owner { return o.parent }

// IsDisposed reports whether Dispose has run.
func (o *Owner) IsDisposed() bool { return o.disposed.Load() }

// ChildCount returns the number of live child owners.
func (o *Owner) ChildCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.children)
}

// OnCleanup registers fn to run on Dispose. If the owner is already
// disposed fn runs now.
func (o *Owner) OnCleanup(fn func()) {
	o.mu.Lock()
	if o.disposed.Load() {
		o.mu.Unlock()
		fn()
		return
	}
	o.cleanups = append(o.cleanups, fn)
	o.mu.Unlock()
}

func (o *Owner) adopt(e *Effect) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.disposed.Load() {
		o.effects = append(o.effects, e)
	}
}

func (o *Owner) detach(child *Owner) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if i := slices.Index(o.children, child); i >= 0 {
		o.children = slices.Delete(o.children, i, i+1)
	}
}

func (o *Owner) enqueue(e *Effect) {
	o.mu.Lock()
	if o.disposed.Load() {
		o.mu.Unlock()
		return
	}
	o.queue = append(o.queue, e)
	o.mu.Unlock()

	if o.wake != nil {
		o.wake()
	}
}

// RunPendingEffects runs one pass: this owner's queued effects, then each
// child's. Effects queued during the pass wait for the next one.
func (o *Owner) RunPendingEffects() {
	if o.disposed.Load() {
		return
	}
	o.mu.Lock()
	queue := o.queue
	o.queue = nil
	o.mu.Unlock()

	for _, e := range queue {
		if e.queued.Load() {
			e.run()
		}
	}
	for _, child := range o.snapshotChildren() {
		child.RunPendingEffects()
	}
}

func (o *Owner) snapshotChildren() []*Owner {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.children)
}

// HasPendingEffects reports whether this owner or a descendant has queued
// effects.
func (o *Owner) HasPendingEffects() bool {
	if o.disposed.Load() {
		return false
	}
	o.mu.Lock()
	pending := len(o.queue) > 0
	o.mu.Unlock()
	return pending || slices.ContainsFunc(o.snapshotChildren(), (*Owner).HasPendingEffects)
}

// Flush runs passes until nothing is queued or maxPasses have run, and
// returns the number of passes. An effect that keeps queueing itself is
// still pending when Flush returns.
func (o *Owner) Flush(maxPasses int) int {
	passes := 0
	for ; passes < maxPasses && o.HasPendingEffects(); passes++ {
		o.RunPendingEffects()
	}
	return passes
}

// Dispose tears the scope down: children newest first, then effects, then
// cleanups newest first.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}
	if o.parent != nil {
		o.parent.detach(o)
	}

	o.mu.Lock()
	children, effects, cleanups := o.children, o.effects, o.cleanups
	o.children, o.effects, o.cleanups, o.queue = nil, nil, nil, nil
	o.mu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}
	for _, e := range effects {
		e.Dispose()
	}
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}
