// Package tessel is a reactive terminal UI runtime.
//
// Views are described with builders, mounted into a node tree, and kept in
// sync with signals: when a signal a view reads changes, only the affected
// part of the tree is patched, and a redraw is scheduled. Input is routed
// through the tree with bubbling, overlays and focus.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/tessel"
//
// Usage:
//
//	count := tessel.NewSignal(0)
//	app := tessel.New(tessel.DefaultConfig())
//	err := app.Run(ctx, backend, tessel.Col(
//	    tessel.Dyn(func() *tessel.View {
//	        return tessel.Text(fmt.Sprintf("count: %d", count.Get()))
//	    }),
//	    tessel.Text("[+]", tessel.OnClick(func(tessel.Mouse, *tessel.Handle) {
//	        count.Update(func(n int) int { return n + 1 })
//	    })),
//	))
package tessel

import (
	"github.com/vango-dev/tessel/pkg/dom"
	"github.com/vango-dev/tessel/pkg/event"
	"github.com/vango-dev/tessel/pkg/layout"
	"github.com/vango-dev/tessel/pkg/reactive"
	"github.com/vango-dev/tessel/pkg/view"
)

// =============================================================================
// Reactive primitives (re-export from pkg/reactive)
// =============================================================================

// NewSignal creates a new reactive signal with the given initial value.
// Set and Update are safe from any goroutine.
//
// Example:
//
//	count := tessel.NewSignal(0)
//	count.Set(1)
//	value := count.Get() // 1
func NewSignal[T any](initial T) *Signal[T] {
	return reactive.NewSignal(initial)
}

// NewMemo creates a cached computed value that tracks its dependencies.
//
// Example:
//
//	doubled := tessel.NewMemo(func() int {
//	    return count.Get() * 2
//	})
func NewMemo[T any](compute func() T) *Memo[T] {
	return reactive.NewMemo(compute)
}

// CreateEffect runs fn now and again whenever a signal it read changes.
// Inside a mounted view the effect re-runs on the UI goroutine and is
// disposed with the view.
func CreateEffect(fn func() Cleanup) *Effect {
	return reactive.CreateEffect(fn)
}

// OnCleanup registers fn to run when the current owner is disposed.
func OnCleanup(fn func()) {
	reactive.OnCleanup(fn)
}

// Batch defers effect notifications until fn returns.
func Batch(fn func()) {
	reactive.Batch(fn)
}

// Untracked runs fn without recording dependencies.
func Untracked(fn func()) {
	reactive.Untracked(fn)
}

type Signal[T any] = reactive.Signal[T]
type Memo[T any] = reactive.Memo[T]
type Effect = reactive.Effect
type Cleanup = reactive.Cleanup
type Owner = reactive.Owner

// =============================================================================
// Views (re-export from pkg/view)
// =============================================================================

type View = view.View
type Option = view.Option
type Item = view.Item

// Text is a widget that prints s.
func Text(s string, opts ...Option) *View { return view.Text(s, opts...) }

// Widget is a leaf drawn by p.
func Widget(p dom.Painter, opts ...Option) *View { return view.Widget(p, opts...) }

// Row lays its children out left to right.
func Row(items ...Item) *View { return view.Row(items...) }

// Col lays its children out top to bottom.
func Col(items ...Item) *View { return view.Col(items...) }

// Overlay floats its children above the rest of the tree.
func Overlay(items ...Item) *View { return view.Overlay(items...) }

// Fragment groups children without a node of its own.
func Fragment(children ...*View) *View { return view.Fragment(children...) }

// Empty renders nothing.
func Empty() *View { return view.Empty() }

// Dyn re-renders fn whenever a signal it reads changes.
func Dyn(fn func() *View) *View { return view.Dyn(fn) }

// Show renders then while cond holds and els otherwise.
func Show(cond func() bool, then, els *View) *View { return view.Show(cond, then, els) }

// Component runs fn once under its own owner.
func Component(fn func() *View) *View { return view.Component(fn) }

// Each renders one view per item, reconciled by key.
func Each[T any](items func() []T, key func(T) string, render func(T) *View) *View {
	return view.Each(items, key, render)
}

// Options, re-exported for single-import use.
var (
	ID            = view.ID
	Name          = view.Name
	Focusable     = view.Focusable
	Disabled      = view.Disabled
	ZIndex        = view.ZIndex
	Size          = view.Size
	OnFocus       = view.OnFocus
	OnBlur        = view.OnBlur
	OnKeyDown     = view.OnKeyDown
	OnKeyUp       = view.OnKeyUp
	OnClick       = view.OnClick
	OnRightClick  = view.OnRightClick
	OnMiddleClick = view.OnMiddleClick
	OnScroll      = view.OnScroll
	OnMouseMove   = view.OnMouseMove
	OnMouseEnter  = view.OnMouseEnter
	OnMouseLeave  = view.OnMouseLeave
	OnPaste       = view.OnPaste
	OnMount       = view.OnMount
	OnUnmount     = view.OnCleanup
)

// Constraint sizes a node along its parent's axis.
func Constraint(c layout.Constraint) Option { return view.Constraint(c) }

// Constraints (re-export from pkg/layout).
var (
	Length     = layout.Length
	Percentage = layout.Percentage
	Ratio      = layout.Ratio
	Fill       = layout.Fill
	Min        = layout.Min
	Max        = layout.Max
)

// =============================================================================
// Events (re-export from pkg/event)
// =============================================================================

type Event = event.Event
type Key = event.Key
type Mouse = event.Mouse
type Paste = event.Paste
type Handle = event.Handle
type NodeID = dom.NodeID
type NodeKey = dom.NodeKey
