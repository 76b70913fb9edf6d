package view

import (
	"github.com/vango-dev/tessel/pkg/dom"
	"github.com/vango-dev/tessel/pkg/layout"
)

type props struct {
	id         dom.NodeID
	name       string
	focusable  bool
	autoFocus  bool
	disabled   bool
	constraint layout.Constraint
	zIndex     int
	width      int
	height     int
	handlers   dom.Handlers
	onMount    []func(dom.NodeKey)
	onCleanup  []func()
}

// Option sets a property of the node a view creates. Options passed to
// fragments and dynamic views have no effect.
type Option func(*props)

func (o Option) apply(v *View) { o(&v.props) }

// ID assigns a logical identity that survives remounts.
func ID(id string) Option {
	return func(p *props) { p.id = dom.NodeID(id) }
}

// Name sets the label shown in tree dumps.
func Name(name string) Option {
	return func(p *props) { p.name = name }
}

// Focusable makes the node a focus target.
func Focusable() Option {
	return func(p *props) { p.focusable = true }
}

// Disabled keeps the node out of focus traversal and pointer events.
func Disabled(disabled bool) Option {
	return func(p *props) { p.disabled = disabled }
}

// Constraint sets the size the node asks of its parent's layout.
func Constraint(c layout.Constraint) Option {
	return func(p *props) { p.constraint = c }
}

// ZIndex orders overlays. Higher values paint later and are hit first.
func ZIndex(z int) Option {
	return func(p *props) { p.zIndex = z }
}

// Size sets an overlay's box. Zero takes the parent's full extent.
func Size(width, height int) Option {
	return func(p *props) { p.width, p.height = width, height }
}

// OnFocus runs fn when the node gains focus.
func OnFocus(fn func()) Option {
	return func(p *props) { p.handlers.OnFocus = fn }
}

// OnBlur runs fn when the node loses focus. Removal does not blur.
func OnBlur(fn func()) Option {
	return func(p *props) { p.handlers.OnBlur = fn }
}

// OnKeyDown handles key presses on the focused node or bubbling up from a
// focused descendant.
func OnKeyDown(fn dom.KeyHandler) Option {
	return func(p *props) { p.handlers.OnKeyDown = fn }
}

// OnKeyUp handles key releases, routed like OnKeyDown.
func OnKeyUp(fn dom.KeyHandler) Option {
	return func(p *props) { p.handlers.OnKeyUp = fn }
}

// OnClick handles a left-button press and release on the same node.
func OnClick(fn dom.MouseHandler) Option {
	return func(p *props) { p.handlers.OnClick = fn }
}

// OnRightClick handles a right-button click.
func OnRightClick(fn dom.MouseHandler) Option {
	return func(p *props) { p.handlers.OnRightClick = fn }
}

// OnMiddleClick handles a middle-button click.
func OnMiddleClick(fn dom.MouseHandler) Option {
	return func(p *props) { p.handlers.OnMiddleClick = fn }
}

// OnScroll handles wheel events over the node.
func OnScroll(fn dom.MouseHandler) Option {
	return func(p *props) { p.handlers.OnScroll = fn }
}

// OnMouseMove handles pointer motion over the node.
func OnMouseMove(fn dom.MouseHandler) Option {
	return func(p *props) { p.handlers.OnMouseMove = fn }
}

// OnMouseEnter runs fn when the pointer moves onto the node. It does not
// bubble.
func OnMouseEnter(fn func()) Option {
	return func(p *props) { p.handlers.OnMouseEnter = fn }
}

// OnMouseLeave runs fn when the pointer leaves the node. It does not bubble.
func OnMouseLeave(fn func()) Option {
	return func(p *props) { p.handlers.OnMouseLeave = fn }
}

// OnPaste handles pasted text, routed like key events.
func OnPaste(fn dom.PasteHandler) Option {
	return func(p *props) { p.handlers.OnPaste = fn }
}

// AutoFocus makes the node focusable and focuses it once it is mounted.
func AutoFocus() Option {
	return func(p *props) {
		p.focusable = true
		p.autoFocus = true
	}
}

// OnMount runs fn with the node's key once the node and everything mounted
// with it are in the tree. It does not run again on in-place updates.
func OnMount(fn func(key dom.NodeKey)) Option {
	return func(p *props) { p.onMount = append(p.onMount, fn) }
}

// OnCleanup runs fn when the node is removed.
func OnCleanup(fn func()) Option {
	return func(p *props) { p.onCleanup = append(p.onCleanup, fn) }
}
