package view

import (
	"github.com/vango-dev/tessel/pkg/dom"
	"github.com/vango-dev/tessel/pkg/layout"
)

// Kind is the view type discriminator.
type Kind uint8

const (
	KindText      Kind = iota // text widget
	KindWidget                // painted widget
	KindLayout                // Row or Col
	KindOverlay               // floating layer
	KindFragment              // children without a wrapper node
	KindEmpty                 // nothing
	KindDyn                   // reactive region (Dyn, Show)
	KindEach                  // keyed reactive list
	KindComponent             // owner-scoped function
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindWidget:
		return "Widget"
	case KindLayout:
		return "Layout"
	case KindOverlay:
		return "Overlay"
	case KindFragment:
		return "Fragment"
	case KindEmpty:
		return "Empty"
	case KindDyn:
		return "Dyn"
	case KindEach:
		return "Each"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// View is a description of part of the UI. Views are immutable once built
// and may be mounted any number of times.
type View struct {
	kind     Kind
	text     string
	painter  dom.Painter
	axis     layout.Axis
	props    props
	children []*View

	dyn  func() (*View, int)
	each eachSource
	comp func() *View
}

// Kind returns the view's kind.
func (v *View) Kind() Kind { return v.kind }

// Children returns the static children of a container or fragment.
func (v *View) Children() []*View { return v.children }

// Item is an argument to a container builder: a child *View or an Option.
type Item interface {
	apply(v *View)
}

func (v *View) apply(parent *View) {
	if v != nil {
		parent.children = append(parent.children, v)
	}
}

func build(kind Kind, items []Item) *View {
	v := &View{kind: kind}
	for _, it := range items {
		if it != nil {
			it.apply(v)
		}
	}
	return v
}

// Text is a widget that prints s, one line per row.
func Text(s string, opts ...Option) *View {
	v := &View{kind: KindText, text: s}
	for _, o := range opts {
		o(&v.props)
	}
	return v
}

// Widget is a leaf drawn by p.
func Widget(p dom.Painter, opts ...Option) *View {
	v := &View{kind: KindWidget, painter: p}
	for _, o := range opts {
		o(&v.props)
	}
	return v
}

// Row lays its children out left to right.
func Row(items ...Item) *View {
	v := build(KindLayout, items)
	v.axis = layout.Horizontal
	return v
}

// Col lays its children out top to bottom.
func Col(items ...Item) *View {
	v := build(KindLayout, items)
	v.axis = layout.Vertical
	return v
}

// Overlay floats its children above the rest of the tree, centered in its
// parent's rect. Use Size to give it a box and ZIndex to order overlays.
func Overlay(items ...Item) *View {
	return build(KindOverlay, items)
}

// Fragment groups children without a node of its own. Options are ignored.
func Fragment(children ...*View) *View {
	v := &View{kind: KindFragment}
	for _, c := range children {
		if c != nil {
			v.children = append(v.children, c)
		}
	}
	return v
}

// Empty renders nothing.
func Empty() *View {
	return &View{kind: KindEmpty}
}

// Dyn re-evaluates fn whenever a signal it reads changes and patches the
// mounted result. A nil result renders nothing.
func Dyn(fn func() *View) *View {
	return &View{kind: KindDyn, dyn: func() (*View, int) { return fn(), 0 }}
}

// Show renders then while cond is true and otherwise els, which may be nil.
// Flipping the branch always remounts.
func Show(cond func() bool, then, els *View) *View {
	return &View{kind: KindDyn, dyn: func() (*View, int) {
		if cond() {
			return then, 1
		}
		return els, 2
	}}
}

// Component runs fn once under its own reactive owner and mounts the
// result. Effects and cleanups registered inside fn are disposed when the
// component unmounts.
func Component(fn func() *View) *View {
	return &View{kind: KindComponent, comp: fn}
}

type entry struct {
	key    string
	render func() *View
}

type eachSource interface {
	entries() []entry
}

type eachOf[T any] struct {
	items  func() []T
	key    func(T) string
	render func(T) *View
}

func (e eachOf[T]) entries() []entry {
	xs := e.items()
	out := make([]entry, 0, len(xs))
	for _, x := range xs {
		out = append(out, entry{
			key:    e.key(x),
			render: func() *View { return e.render(x) },
		})
	}
	return out
}

// Each renders one view per item, reconciled by key. items is re-evaluated
// whenever a signal it reads changes. Items whose key persists keep their
// nodes and are moved into the new order without being rendered again.
func Each[T any](items func() []T, key func(T) string, render func(T) *View) *View {
	return &View{kind: KindEach, each: eachOf[T]{items: items, key: key, render: render}}
}

// sameShape reports whether next can be patched onto a node mounted from
// prev.
func sameShape(prev, next *View) bool {
	if prev.kind != next.kind {
		return false
	}
	switch prev.kind {
	case KindLayout:
		return prev.axis == next.axis
	case KindDyn, KindEach, KindComponent:
		return prev == next
	}
	return true
}
