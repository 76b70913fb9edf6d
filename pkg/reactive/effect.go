package reactive

import "sync/atomic"

// Effect re-runs a function whenever a signal or memo it read on its last
// run changes.
type Effect struct {
	id    uint64
	owner *Owner
	fn    func() Cleanup
	deps  depSet

	cleanup Cleanup

	queued   atomic.Bool
	disposed atomic.Bool
	runs     atomic.Int64
}

// CreateEffect attaches an effect to the current owner and runs it once
// right away. A non-nil Cleanup returned by fn runs before the next run and
// on disposal.
//
//	reactive.CreateEffect(func() reactive.Cleanup {
//	    tree.SetText(label, fmt.Sprint(count.Get()))
//	    return nil
//	})
func CreateEffect(fn func() Cleanup) *Effect {
	e := &Effect{id: nextID(), owner: currentOwner(), fn: fn}
	if e.owner != nil {
		e.owner.adopt(e)
	}
	e.run()
	return e
}

// OnCleanup registers fn on the current owner. It is a no-op outside one.
func OnCleanup(fn func()) {
	if o := currentOwner(); o != nil {
		o.OnCleanup(fn)
	}
}

// MarkDirty queues the effect on its owner. An effect with no owner runs
// again on the spot.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() || !e.queued.CompareAndSwap(false, true) {
		return
	}
	if e.owner == nil {
		e.run()
		return
	}
	e.owner.enqueue(e)
}

// ID returns the effect's identifier.
func (e *Effect) ID() uint64 { return e.id }

// Runs counts how often the effect body has run.
func (e *Effect) Runs() int64 { return e.runs.Load() }

// Dispose runs the last cleanup and unsubscribes the effect for good.
func (e *Effect) Dispose() {
	if !e.disposed.Swap(true) {
		e.teardown()
	}
}

func (e *Effect) dependencies() *depSet { return &e.deps }

func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}
	e.queued.Store(false)
	e.teardown()

	defer swapOwner(e.owner)()
	defer swapListener(e)()
	e.runs.Add(1)
	e.cleanup = e.fn()
}

// teardown runs the pending cleanup and drops every subscription.
func (e *Effect) teardown() {
	if c := e.cleanup; c != nil {
		e.cleanup = nil
		c()
	}
	e.deps.drop(e)
}
