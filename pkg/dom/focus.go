package dom

import (
	"github.com/vango-dev/tessel/internal/errors"
)

// FocusManager tracks the focused node and the ordered registry of
// focusable nodes. The registry is in registration (mount) order, which is
// not necessarily visual order.
//
// The manager is either unfocused or focused on exactly one registered
// node. It never picks a replacement on its own: when the focused node is
// removed, the manager becomes unfocused until a caller moves focus.
type FocusManager struct {
	tree     *Tree
	registry []NodeKey
	focused  NodeKey

	subs    map[int]func(NodeID)
	nextSub int
}

func newFocusManager(t *Tree) *FocusManager {
	return &FocusManager{
		tree: t,
		subs: make(map[int]func(NodeID)),
	}
}

// Focused returns the focused node.
func (f *FocusManager) Focused() (NodeKey, bool) {
	return f.focused, !f.focused.IsZero()
}

// FocusedID returns the NodeID of the focused node, or "" when nothing is
// focused or the focused node has no id.
func (f *FocusManager) FocusedID() NodeID {
	if n := f.tree.get(f.focused); n != nil {
		return n.id
	}
	return ""
}

// Focusables returns a copy of the registry.
func (f *FocusManager) Focusables() []NodeKey {
	return append([]NodeKey(nil), f.registry...)
}

// Subscribe registers fn to be called with the focused NodeID after every
// focus change. The returned function unsubscribes.
func (f *FocusManager) Subscribe(fn func(NodeID)) (cancel func()) {
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fn
	return func() { delete(f.subs, id) }
}

func (f *FocusManager) publish() {
	id := f.FocusedID()
	for _, fn := range f.subs {
		fn(id)
	}
}

func (f *FocusManager) register(key NodeKey) {
	if indexOf(f.registry, key) < 0 {
		f.registry = append(f.registry, key)
	}
}

// eligible reports whether key can take focus right now.
func (f *FocusManager) eligible(key NodeKey) bool {
	n := f.tree.get(key)
	return n != nil && n.mounted && n.focusable && !f.tree.IsDisabled(key)
}

// SetFocused moves focus to key, firing the old node's blur handler and
// then the new node's focus handler. Focusing the already-focused node does
// nothing. A stale key is misuse and panics in strict mode.
func (f *FocusManager) SetFocused(key NodeKey) error {
	n := f.tree.get(key)
	if n == nil || !n.mounted {
		return f.tree.misuse(staleKey("set focused", key))
	}
	if key == f.focused {
		return nil
	}
	if !f.eligible(key) || indexOf(f.registry, key) < 0 {
		return errors.New("T002").WithDetailf("key %s (%s)", key, n.Label())
	}
	f.transition(key)
	return nil
}

// FocusID focuses the node claiming id.
func (f *FocusManager) FocusID(id NodeID) error {
	key, ok := f.tree.Lookup(id)
	if !ok {
		return errors.New("T006").WithDetailf("id %q", id)
	}
	return f.SetFocused(key)
}

func (f *FocusManager) transition(to NodeKey) {
	if old := f.tree.get(f.focused); old != nil && old.handlers.OnBlur != nil {
		old.handlers.OnBlur()
	}
	f.focused = to
	if n := f.tree.get(to); n != nil && n.handlers.OnFocus != nil {
		n.handlers.OnFocus()
	}
	f.publish()
	f.tree.invalidate()
}

// FocusNext moves focus to the next eligible node, wrapping at the end.
// When nothing is focused it focuses the first eligible node.
func (f *FocusManager) FocusNext() { f.step(1) }

// FocusPrev moves focus to the previous eligible node, wrapping at the
// start. When nothing is focused it focuses the last eligible node.
func (f *FocusManager) FocusPrev() { f.step(-1) }

func (f *FocusManager) step(dir int) {
	n := len(f.registry)
	if n == 0 {
		return
	}
	start := indexOf(f.registry, f.focused)
	for i := 1; i <= n; i++ {
		var idx int
		switch {
		case start >= 0:
			idx = ((start+dir*i)%n + n) % n
		case dir > 0:
			idx = i - 1
		default:
			idx = n - i
		}
		key := f.registry[idx]
		if !f.eligible(key) {
			continue
		}
		if key != f.focused {
			f.transition(key)
		}
		return
	}
}

// RemoveFocusable drops key from the registry. If key was focused, focus
// is cleared without firing blur. Calling it twice is harmless.
func (f *FocusManager) RemoveFocusable(key NodeKey) {
	if i := indexOf(f.registry, key); i >= 0 {
		f.registry = append(f.registry[:i], f.registry[i+1:]...)
	}
	if f.focused == key && !key.IsZero() {
		f.focused = NodeKey{}
		f.publish()
	}
}

// ClearFocus unfocuses, firing the previously focused node's blur handler.
func (f *FocusManager) ClearFocus() {
	if f.focused.IsZero() {
		return
	}
	old := f.tree.get(f.focused)
	if old != nil && old.handlers.OnBlur != nil {
		old.handlers.OnBlur()
	}
	f.focused = NodeKey{}
	f.publish()
	f.tree.invalidate()
}

// FocusWithin focuses the nearest eligible node among key and its
// ancestors. It reports whether focus now lies on such a node.
func (f *FocusManager) FocusWithin(key NodeKey) bool {
	for _, k := range f.tree.Ancestors(key) {
		if f.eligible(k) && indexOf(f.registry, k) >= 0 {
			if k != f.focused {
				f.transition(k)
			}
			return true
		}
	}
	return false
}
