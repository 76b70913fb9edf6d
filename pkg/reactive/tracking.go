package reactive

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// gstate is the reactive context of one goroutine.
type gstate struct {
	owner    *Owner
	listener Listener

	batchDepth int
	deferred   []Listener
}

// states maps goroutine IDs to their *gstate.
var states sync.Map

var stackPrefix = []byte("goroutine ")

// goid parses the calling goroutine's ID out of its stack header.
func goid() uint64 {
	var buf [64]byte
	hdr := bytes.TrimPrefix(buf[:runtime.Stack(buf[:], false)], stackPrefix)
	if i := bytes.IndexByte(hdr, ' '); i >= 0 {
		hdr = hdr[:i]
	}
	id, _ := strconv.ParseUint(string(hdr), 10, 64)
	return id
}

func state() *gstate {
	id := goid()
	if st, ok := states.Load(id); ok {
		return st.(*gstate)
	}
	st, _ := states.LoadOrStore(id, &gstate{})
	return st.(*gstate)
}

func currentListener() Listener { return state().listener }

func currentOwner() *Owner { return state().owner }

// swapListener installs l and returns a func that puts the previous
// listener back.
func swapListener(l Listener) (restore func()) {
	st := state()
	prev := st.listener
	st.listener = l
	return func() { st.listener = prev }
}

func swapOwner(o *Owner) (restore func()) {
	st := state()
	prev := st.owner
	st.owner = o
	return func() { st.owner = prev }
}

// CurrentOwner returns the owner new effects are attached to.
func CurrentOwner() *Owner { return currentOwner() }

// WithOwner runs fn with owner as the current owner. Effects created inside
// fn belong to owner.
func WithOwner(owner *Owner, fn func()) {
	defer swapOwner(owner)()
	fn()
}

// Untracked runs fn without subscribing to anything it reads.
func Untracked(fn func()) {
	defer swapListener(nil)()
	fn()
}

// ReleaseGoroutine forgets the calling goroutine's reactive context.
// Worker goroutines that touched signals should call it before exiting.
func ReleaseGoroutine() {
	states.Delete(goid())
}
