package dom

import (
	"github.com/vango-dev/tessel/pkg/buffer"
	"github.com/vango-dev/tessel/pkg/event"
	"github.com/vango-dev/tessel/pkg/geom"
	"github.com/vango-dev/tessel/pkg/layout"
)

// Kind is the structural variant of a node.
type Kind uint8

const (
	// KindWidget is a leaf painted by its Painter, or by its text when it has none.
	KindWidget Kind = iota
	// KindLayout stacks its children along an axis.
	KindLayout
	// KindOverlay floats above the main tree and is hit-tested first.
	KindOverlay
	// KindPlaceholder marks a position for dynamic content. It takes no space.
	KindPlaceholder
	// KindTransparent groups children without a visual identity of its own.
	KindTransparent
)

func (k Kind) String() string {
	switch k {
	case KindWidget:
		return "widget"
	case KindLayout:
		return "layout"
	case KindOverlay:
		return "overlay"
	case KindPlaceholder:
		return "placeholder"
	case KindTransparent:
		return "transparent"
	}
	return "unknown"
}

// Painter draws a widget into its rect. The tree never looks at what a
// painter draws.
type Painter interface {
	Paint(buf *buffer.Buffer, area geom.Rect)
}

// PainterFunc adapts a function to Painter.
type PainterFunc func(buf *buffer.Buffer, area geom.Rect)

// Paint calls f.
func (f PainterFunc) Paint(buf *buffer.Buffer, area geom.Rect) { f(buf, area) }

// KeyHandler handles key-down and key-up events.
type KeyHandler func(ev event.Key, h *event.Handle)

// MouseHandler handles clicks, scrolls and pointer motion.
type MouseHandler func(ev event.Mouse, h *event.Handle)

// PasteHandler handles pasted text.
type PasteHandler func(ev event.Paste, h *event.Handle)

// Handlers are the event slots of a node. Nil slots are skipped during
// bubbling.
type Handlers struct {
	OnFocus       func()
	OnBlur        func()
	OnKeyDown     KeyHandler
	OnKeyUp       KeyHandler
	OnClick       MouseHandler
	OnRightClick  MouseHandler
	OnMiddleClick MouseHandler
	OnScroll      MouseHandler
	OnMouseMove   MouseHandler
	OnMouseEnter  func()
	OnMouseLeave  func()
	OnPaste       PasteHandler
}

// Node is a single tree node. Its fields are only changed through Tree
// methods; the accessors here are read-only views.
type Node struct {
	key      NodeKey
	kind     Kind
	parent   NodeKey
	children []NodeKey

	text       string
	painter    Painter
	constraint layout.Constraint
	axis       layout.Axis
	width      int
	height     int
	zIndex     int

	focusable bool
	disabled  bool
	id        NodeID
	name      string
	handlers  Handlers

	rect     geom.Rect
	mounted  bool
	seq      uint64
	cleanups []func()
}

// Key returns the node's arena key.
func (n *Node) Key() NodeKey { return n.key }

// Kind returns what the node is.
func (n *Node) Kind() Kind { return n.kind }

// Text is the content of a text widget.
func (n *Node) Text() string { return n.text }

// Painter returns the painter set on a widget node, if any.
func (n *Node) Painter() Painter { return n.painter }

// Constraint is the size the node asks of its parent's layout.
func (n *Node) Constraint() layout.Constraint { return n.constraint }

// Axis is the direction a layout node splits its area in.
func (n *Node) Axis() layout.Axis { return n.axis }

// ZIndex orders overlays; higher values paint later and are hit first.
func (n *Node) ZIndex() int { return n.zIndex }

// Focusable reports whether the node asked to join the focus registry.
func (n *Node) Focusable() bool { return n.focusable }

// Disabled reports the node's own flag. Use Tree.IsDisabled to include
// disabled ancestors.
func (n *Node) Disabled() bool { return n.disabled }

// ID is the logical identity used by Tree.Lookup and FocusID.
func (n *Node) ID() NodeID { return n.id }

// Name is a debug label shown in dumps and traces.
func (n *Node) Name() string { return n.name }

// Handlers returns the node's event slots.
func (n *Node) Handlers() Handlers { return n.handlers }

// Mounted reports whether the node is attached under the root.
func (n *Node) Mounted() bool { return n.mounted }

// Rect is the rect assigned by the most recent Tree.Layout.
func (n *Node) Rect() geom.Rect { return n.rect }

// Size is the requested overlay box. Zero means the parent's full extent.
func (n *Node) Size() (width, height int) { return n.width, n.height }

// Seq is the mount sequence number. Later mounts have larger values.
func (n *Node) Seq() uint64 { return n.seq }

// Label is a short human-readable description used in dumps and logs.
func (n *Node) Label() string {
	s := n.kind.String()
	if n.name != "" {
		s += ":" + n.name
	}
	if n.id != "" {
		s += "#" + string(n.id)
	}
	return s
}
