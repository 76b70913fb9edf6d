package dom

import (
	"log/slog"

	"github.com/vango-dev/tessel/internal/errors"
	"github.com/vango-dev/tessel/pkg/layout"
)

// Option configures a Tree.
type Option func(*Tree)

// WithNotifier sets the redraw notifier invoked on every visible change.
func WithNotifier(n Notifier) Option {
	return func(t *Tree) { t.notifier = n }
}

// WithLogger sets the logger for misuse warnings.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tree) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithStrict makes structural misuse panic instead of returning an error.
func WithStrict(strict bool) Option {
	return func(t *Tree) { t.strict = strict }
}

type slot struct {
	gen  uint32
	node *Node
}

// Tree is the node arena. It is created with a mounted root layout node.
type Tree struct {
	slots []slot
	free  []uint32
	live  int
	seq   uint64

	root  NodeKey
	ids   map[NodeID]NodeKey
	focus *FocusManager

	notifier Notifier
	logger   *slog.Logger
	strict   bool
}

// NewTree creates a tree holding only its root.
func NewTree(opts ...Option) *Tree {
	t := &Tree{
		ids:    make(map[NodeID]NodeKey),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.focus = newFocusManager(t)

	t.root = t.Create(KindLayout)
	root := t.get(t.root)
	root.name = "root"
	t.mount(root)
	return t
}

// Root returns the root node's key.
func (t *Tree) Root() NodeKey { return t.root }

// Focus returns the tree's focus manager.
func (t *Tree) Focus() *FocusManager { return t.focus }

// Strict reports whether misuse panics.
func (t *Tree) Strict() bool { return t.strict }

// Logger returns the tree's logger.
func (t *Tree) Logger() *slog.Logger { return t.logger }

// Len returns the number of live nodes, mounted or not.
func (t *Tree) Len() int { return t.live }

// SetNotifier replaces the redraw notifier.
func (t *Tree) SetNotifier(n Notifier) { t.notifier = n }

func (t *Tree) invalidate() {
	if t.notifier != nil {
		t.notifier.Invalidate()
	}
}

// misuse reports structural misuse: a panic in strict mode, err otherwise.
func (t *Tree) misuse(err error) error {
	if t.strict {
		panic(err)
	}
	t.logger.Debug("tessel: rejected tree operation", "error", err)
	return err
}

func (t *Tree) get(key NodeKey) *Node {
	if key.IsZero() || int(key.index) >= len(t.slots) {
		return nil
	}
	s := t.slots[key.index]
	if s.gen != key.gen {
		return nil
	}
	return s.node
}

// Node returns the node for key, or nil when key is stale or unknown.
func (t *Tree) Node(key NodeKey) *Node { return t.get(key) }

// Contains reports whether key refers to a live node.
func (t *Tree) Contains(key NodeKey) bool { return t.get(key) != nil }

// Create allocates a detached node. It becomes part of the visible tree
// once inserted under a mounted parent.
func (t *Tree) Create(kind Kind) NodeKey {
	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = uint32(len(t.slots))
		t.slots = append(t.slots, slot{})
	}
	s := &t.slots[idx]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	key := NodeKey{index: idx, gen: s.gen}
	s.node = &Node{key: key, kind: kind}
	t.live++
	return key
}

// CreateText creates a detached widget that paints text.
func (t *Tree) CreateText(text string) NodeKey {
	key := t.Create(KindWidget)
	t.get(key).text = text
	return key
}

// CreatePlaceholder creates a detached zero-size marker node.
func (t *Tree) CreatePlaceholder() NodeKey {
	return t.Create(KindPlaceholder)
}

func (t *Tree) release(n *Node) {
	s := &t.slots[n.key.index]
	s.node = nil
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	t.free = append(t.free, n.key.index)
	t.live--
}

// Insert places child under parent immediately before marker, or at the
// end when marker is zero. A child that is already attached is moved and
// keeps its identity and focus registration. Nothing is changed unless
// every argument is valid.
func (t *Tree) Insert(parent, child, marker NodeKey) error {
	p := t.get(parent)
	if p == nil {
		return t.misuse(staleKey("insert parent", parent))
	}
	c := t.get(child)
	if c == nil {
		return t.misuse(staleKey("insert child", child))
	}
	if child == t.root {
		return t.misuse(errors.New("T005"))
	}
	for _, k := range t.Ancestors(parent) {
		if k == child {
			return t.misuse(errors.New("T004").WithDetailf("%s into %s", child, parent))
		}
	}
	if !marker.IsZero() {
		m := t.get(marker)
		if m == nil || m.parent != parent {
			return t.misuse(errors.New("T003").WithDetailf("marker %s, parent %s", marker, parent))
		}
		if marker == child {
			return nil
		}
	}

	if !c.parent.IsZero() {
		t.detach(c)
	}
	if marker.IsZero() {
		p.children = append(p.children, child)
	} else {
		i := indexOf(p.children, marker)
		p.children = append(p.children, NodeKey{})
		copy(p.children[i+1:], p.children[i:])
		p.children[i] = child
	}
	c.parent = parent

	switch {
	case p.mounted && !c.mounted:
		t.mount(c)
	case !p.mounted && c.mounted:
		t.unmount(c)
	}
	t.invalidate()
	return nil
}

func indexOf(keys []NodeKey, key NodeKey) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return -1
}

// detach unlinks n from its parent's child list.
func (t *Tree) detach(n *Node) {
	p := t.get(n.parent)
	n.parent = NodeKey{}
	if p == nil {
		return
	}
	if i := indexOf(p.children, n.key); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
}

func (t *Tree) mount(n *Node) {
	n.mounted = true
	t.seq++
	n.seq = t.seq
	if n.focusable {
		t.focus.register(n.key)
	}
	if n.id != "" {
		t.claim(n.id, n.key)
	}
	for _, c := range n.children {
		t.mount(t.get(c))
	}
}

func (t *Tree) unmount(n *Node) {
	for _, c := range n.children {
		t.unmount(t.get(c))
	}
	n.mounted = false
	t.focus.RemoveFocusable(n.key)
	if n.id != "" {
		t.unclaim(n.id, n.key)
	}
}

func (t *Tree) claim(id NodeID, key NodeKey) {
	if prev, ok := t.ids[id]; ok && prev != key && t.get(prev) != nil {
		t.logger.Warn("tessel: duplicate node id, newest node wins",
			"id", string(id), "previous", prev.String(), "key", key.String())
	}
	t.ids[id] = key
}

func (t *Tree) unclaim(id NodeID, key NodeKey) {
	if t.ids[id] == key {
		delete(t.ids, id)
	}
}

// Lookup returns the mounted node claiming id.
func (t *Tree) Lookup(id NodeID) (NodeKey, bool) {
	key, ok := t.ids[id]
	if !ok || t.get(key) == nil {
		return NodeKey{}, false
	}
	return key, true
}

// Remove detaches key and destroys its subtree depth first, unregistering
// every node from the focus registry and running node cleanups. Removing
// an unknown or already-removed key does nothing. No blur handler fires,
// even when the focused node is removed.
func (t *Tree) Remove(key NodeKey) {
	n := t.get(key)
	if n == nil {
		return
	}
	if key == t.root {
		t.logger.Warn("tessel: refusing to remove the root node")
		return
	}
	t.detach(n)
	t.destroy(n)
	t.invalidate()
}

func (t *Tree) destroy(n *Node) {
	children := n.children
	n.children = nil
	for _, c := range children {
		if cn := t.get(c); cn != nil {
			cn.parent = NodeKey{}
			t.destroy(cn)
		}
	}
	if n.mounted {
		n.mounted = false
		t.focus.RemoveFocusable(n.key)
		if n.id != "" {
			t.unclaim(n.id, n.key)
		}
	}
	cleanups := n.cleanups
	n.cleanups = nil
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	t.release(n)
}

// ClearChildren removes every child of parent.
func (t *Tree) ClearChildren(parent NodeKey) {
	p := t.get(parent)
	if p == nil {
		return
	}
	children := append([]NodeKey(nil), p.children...)
	for _, c := range children {
		t.Remove(c)
	}
	p.children = nil
}

// OnCleanup registers fn to run when key is removed. Cleanups run in
// reverse registration order, after the node's descendants are gone.
func (t *Tree) OnCleanup(key NodeKey, fn func()) {
	n := t.get(key)
	if n == nil {
		fn()
		return
	}
	n.cleanups = append(n.cleanups, fn)
}

// Parent returns key's parent.
func (t *Tree) Parent(key NodeKey) (NodeKey, bool) {
	n := t.get(key)
	if n == nil || n.parent.IsZero() {
		return NodeKey{}, false
	}
	return n.parent, true
}

// FirstChild returns key's first child.
func (t *Tree) FirstChild(key NodeKey) (NodeKey, bool) {
	n := t.get(key)
	if n == nil || len(n.children) == 0 {
		return NodeKey{}, false
	}
	return n.children[0], true
}

// NextSibling returns the child following key in its parent's list.
func (t *Tree) NextSibling(key NodeKey) (NodeKey, bool) {
	n := t.get(key)
	if n == nil {
		return NodeKey{}, false
	}
	p := t.get(n.parent)
	if p == nil {
		return NodeKey{}, false
	}
	i := indexOf(p.children, key)
	if i < 0 || i+1 >= len(p.children) {
		return NodeKey{}, false
	}
	return p.children[i+1], true
}

// Children returns a copy of key's child list.
func (t *Tree) Children(key NodeKey) []NodeKey {
	n := t.get(key)
	if n == nil {
		return nil
	}
	return append([]NodeKey(nil), n.children...)
}

// Ancestors returns key followed by each ancestor up to the root.
func (t *Tree) Ancestors(key NodeKey) []NodeKey {
	var out []NodeKey
	for k := key; !k.IsZero(); {
		n := t.get(k)
		if n == nil {
			break
		}
		out = append(out, k)
		k = n.parent
	}
	return out
}

// update applies fn to a live node, reporting stale keys as misuse.
func (t *Tree) update(op string, key NodeKey, fn func(n *Node)) {
	n := t.get(key)
	if n == nil {
		_ = t.misuse(staleKey(op, key))
		return
	}
	fn(n)
}

// SetText replaces a widget's text.
func (t *Tree) SetText(key NodeKey, text string) {
	t.update("set text", key, func(n *Node) {
		if n.text != text {
			n.text = text
			t.invalidate()
		}
	})
}

// SetPainter replaces a widget's paint callback.
func (t *Tree) SetPainter(key NodeKey, p Painter) {
	t.update("set painter", key, func(n *Node) {
		n.painter = p
		t.invalidate()
	})
}

// SetHandlers replaces a node's event handlers.
func (t *Tree) SetHandlers(key NodeKey, h Handlers) {
	t.update("set handlers", key, func(n *Node) {
		n.handlers = h
	})
}

// SetFocusable changes focus eligibility, updating the registry when the
// node is mounted.
func (t *Tree) SetFocusable(key NodeKey, focusable bool) {
	t.update("set focusable", key, func(n *Node) {
		if n.focusable == focusable {
			return
		}
		n.focusable = focusable
		if !n.mounted {
			return
		}
		if focusable {
			t.focus.register(key)
		} else {
			t.focus.RemoveFocusable(key)
		}
	})
}

// IsDisabled reports whether key or one of its ancestors is disabled.
// Disabling a container disables its whole subtree.
func (t *Tree) IsDisabled(key NodeKey) bool {
	for n := t.get(key); n != nil; n = t.get(n.parent) {
		if n.disabled {
			return true
		}
	}
	return false
}

// Within reports whether key is ancestor or lies in its subtree.
func (t *Tree) Within(key, ancestor NodeKey) bool {
	for n := t.get(key); n != nil; n = t.get(n.parent) {
		if n.key == ancestor {
			return true
		}
	}
	return false
}

// SetDisabled enables or disables a node. A disabled focused node loses
// focus and fires its blur handler.
func (t *Tree) SetDisabled(key NodeKey, disabled bool) {
	t.update("set disabled", key, func(n *Node) {
		if n.disabled == disabled {
			return
		}
		n.disabled = disabled
		if focused, ok := t.focus.Focused(); disabled && ok && t.Within(focused, key) {
			t.focus.ClearFocus()
		}
		t.invalidate()
	})
}

// SetID changes a node's logical identity.
func (t *Tree) SetID(key NodeKey, id NodeID) {
	t.update("set id", key, func(n *Node) {
		if n.id == id {
			return
		}
		if n.mounted && n.id != "" {
			t.unclaim(n.id, key)
		}
		n.id = id
		if n.mounted && id != "" {
			t.claim(id, key)
		}
	})
}

// SetName sets the debug label shown in dumps.
func (t *Tree) SetName(key NodeKey, name string) {
	t.update("set name", key, func(n *Node) { n.name = name })
}

// SetConstraint sets the size the node requests from its parent.
func (t *Tree) SetConstraint(key NodeKey, c layout.Constraint) {
	t.update("set constraint", key, func(n *Node) {
		if n.constraint != c {
			n.constraint = c
			t.invalidate()
		}
	})
}

// SetAxis sets the stacking direction of a layout node.
func (t *Tree) SetAxis(key NodeKey, axis layout.Axis) {
	t.update("set axis", key, func(n *Node) {
		if n.axis != axis {
			n.axis = axis
			t.invalidate()
		}
	})
}

// SetZIndex sets an overlay's stacking order.
func (t *Tree) SetZIndex(key NodeKey, z int) {
	t.update("set z-index", key, func(n *Node) {
		if n.zIndex != z {
			n.zIndex = z
			t.invalidate()
		}
	})
}

// SetSize sets an overlay's box. Zero dimensions take the parent's extent.
func (t *Tree) SetSize(key NodeKey, width, height int) {
	t.update("set size", key, func(n *Node) {
		if n.width != width || n.height != height {
			n.width, n.height = width, height
			t.invalidate()
		}
	})
}
