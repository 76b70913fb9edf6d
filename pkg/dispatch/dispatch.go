package dispatch

import (
	"log/slog"

	"github.com/vango-dev/tessel/pkg/dom"
	"github.com/vango-dev/tessel/pkg/event"
	"github.com/vango-dev/tessel/pkg/geom"
)

// DefaultClickTolerance is how far, in cells, the pointer may move between
// press and release and still produce a click.
const DefaultClickTolerance = 1

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithClickTolerance sets the maximum press-to-release distance of a click.
func WithClickTolerance(cells int) Option {
	return func(d *Dispatcher) {
		if cells >= 0 {
			d.tolerance = cells
		}
	}
}

// WithTabNavigation makes unstopped Tab and Shift-Tab move focus.
func WithTabNavigation(enabled bool) Option {
	return func(d *Dispatcher) { d.tabNav = enabled }
}

// WithQuit sets the function called for an unstopped Ctrl-C.
func WithQuit(fn func()) Option {
	return func(d *Dispatcher) { d.quit = fn }
}

// WithMiddleware appends middleware around every dispatch pass.
func WithMiddleware(mw ...Middleware) Option {
	return func(d *Dispatcher) { d.middleware = append(d.middleware, mw...) }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

type pressState struct {
	target dom.NodeKey
	button event.MouseButton
	at     geom.Point
}

// Dispatcher routes events into one tree. It is not safe for concurrent
// use.
type Dispatcher struct {
	tree       *dom.Tree
	tolerance  int
	tabNav     bool
	quit       func()
	middleware []Middleware
	logger     *slog.Logger

	run Func

	pressed *pressState
	hover   dom.NodeKey
}

// New creates a dispatcher for tree.
func New(tree *dom.Tree, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		tree:      tree,
		tolerance: DefaultClickTolerance,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.run = Chain(d.middleware...)(d.dispatch)
	return d
}

// Hovered returns the node under the pointer after the last motion event.
func (d *Dispatcher) Hovered() (dom.NodeKey, bool) {
	if !d.tree.Contains(d.hover) {
		return dom.NodeKey{}, false
	}
	return d.hover, true
}

// Dispatch runs one pass for ev and returns its context. Resize events are
// not routed to nodes and return a context with no target.
func (d *Dispatcher) Dispatch(ev event.Event) *Context {
	c := &Context{
		Event:  ev,
		Kind:   event.Kind(ev),
		Handle: &event.Handle{},
	}
	d.run(c)
	return c
}

func (d *Dispatcher) dispatch(c *Context) {
	switch ev := c.Event.(type) {
	case event.Key:
		d.key(c, ev)
	case event.Paste:
		d.paste(c, ev)
	case event.Mouse:
		d.mouse(c, ev)
	}
}

func (d *Dispatcher) setTarget(c *Context, key dom.NodeKey) {
	c.Target = key
	if n := d.tree.Node(key); n != nil {
		c.TargetLabel = n.Label()
	}
}

// bubble calls the handler chosen by call on target and each ancestor until
// propagation stops. A target inside a disabled subtree gets nothing.
// Nodes removed by an earlier handler end the walk.
func (d *Dispatcher) bubble(c *Context, target dom.NodeKey, call func(h dom.Handlers) bool) {
	if d.tree.IsDisabled(target) {
		return
	}
	for _, k := range d.tree.Ancestors(target) {
		n := d.tree.Node(k)
		if n == nil {
			return
		}
		if call(n.Handlers()) {
			c.Handled++
		}
		if c.Handle.Stopped() {
			return
		}
	}
}

func (d *Dispatcher) key(c *Context, ev event.Key) {
	if target, ok := d.tree.Focus().Focused(); ok {
		d.setTarget(c, target)
		d.bubble(c, target, func(h dom.Handlers) bool {
			fn := h.OnKeyDown
			if !ev.Down() {
				fn = h.OnKeyUp
			}
			if fn == nil {
				return false
			}
			fn(ev, c.Handle)
			return true
		})
	}

	if c.Handle.Stopped() || !ev.Down() {
		return
	}
	switch {
	case d.tabNav && ev.Matches("tab"):
		d.tree.Focus().FocusNext()
	case d.tabNav && ev.Matches("shift+tab"):
		d.tree.Focus().FocusPrev()
	case ev.Matches("ctrl+c"):
		if d.quit != nil {
			d.logger.Debug("tessel: quit key")
			d.quit()
		}
	}
}

func (d *Dispatcher) paste(c *Context, ev event.Paste) {
	target, ok := d.tree.Focus().Focused()
	if !ok {
		return
	}
	d.setTarget(c, target)
	d.bubble(c, target, func(h dom.Handlers) bool {
		if h.OnPaste == nil {
			return false
		}
		h.OnPaste(ev, c.Handle)
		return true
	})
}

func (d *Dispatcher) mouse(c *Context, ev event.Mouse) {
	target, ok := d.tree.HitTest(ev.X, ev.Y)
	if ok {
		d.setTarget(c, target)
	}

	switch {
	case ev.Button.IsWheel():
		if ok {
			d.bubbleMouse(c, target, ev, func(h dom.Handlers) dom.MouseHandler { return h.OnScroll })
		}

	case ev.Action == event.MouseMotion:
		d.updateHover(target)
		if d.pressed != nil && d.pressed.target != target {
			d.pressed = nil
		}
		if ok {
			d.bubbleMouse(c, target, ev, func(h dom.Handlers) dom.MouseHandler { return h.OnMouseMove })
		}

	case ev.Action == event.MousePress:
		d.pressed = nil
		if !ok {
			return
		}
		d.tree.Focus().FocusWithin(target)
		d.pressed = &pressState{target: target, button: ev.Button, at: geom.Point{X: ev.X, Y: ev.Y}}

	case ev.Action == event.MouseRelease:
		p := d.pressed
		d.pressed = nil
		if p == nil || !ok || p.target != target {
			return
		}
		if ev.Button != event.ButtonNone && ev.Button != p.button {
			return
		}
		if p.at.Distance(geom.Point{X: ev.X, Y: ev.Y}) > d.tolerance {
			return
		}
		c.Click = true
		ev.Button = p.button
		d.bubbleMouse(c, target, ev, func(h dom.Handlers) dom.MouseHandler {
			switch p.button {
			case event.ButtonRight:
				return h.OnRightClick
			case event.ButtonMiddle:
				return h.OnMiddleClick
			}
			return h.OnClick
		})
	}
}

func (d *Dispatcher) bubbleMouse(c *Context, target dom.NodeKey, ev event.Mouse, pick func(dom.Handlers) dom.MouseHandler) {
	d.bubble(c, target, func(h dom.Handlers) bool {
		fn := pick(h)
		if fn == nil {
			return false
		}
		fn(ev, c.Handle)
		return true
	})
}

// updateHover fires leave on the previously hovered node and enter on the
// new one. Enter and leave do not bubble.
func (d *Dispatcher) updateHover(target dom.NodeKey) {
	if target == d.hover {
		return
	}
	old := d.hover
	d.hover = target
	if n := d.tree.Node(old); n != nil && !d.tree.IsDisabled(old) && n.Handlers().OnMouseLeave != nil {
		n.Handlers().OnMouseLeave()
	}
	if n := d.tree.Node(target); n != nil && !d.tree.IsDisabled(target) && n.Handlers().OnMouseEnter != nil {
		n.Handlers().OnMouseEnter()
	}
}
