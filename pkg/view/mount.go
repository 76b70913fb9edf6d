package view

import (
	"log/slog"

	"github.com/vango-dev/tessel/internal/errors"
	"github.com/vango-dev/tessel/pkg/dom"
	"github.com/vango-dev/tessel/pkg/reactive"
)

var emptyView = &View{kind: KindEmpty}

// record is the mounted state of one view.
type record struct {
	view *View

	// node is the widget, layout or overlay node for element kinds, and
	// the end marker for dynamic regions.
	node dom.NodeKey

	// children holds element and fragment children.
	children []*record

	// content is the current content of a Dyn or Component region.
	content *record
	branch  int

	owner *reactive.Owner

	keys  []string
	items map[string]*item
}

type item struct {
	rec   *record
	owner *reactive.Owner
}

// mounter applies views to one tree. It must only be used on the UI
// goroutine.
type mounter struct {
	tree   *dom.Tree
	logger *slog.Logger

	depth      int
	afterMount []func()
}

// Mounted is a handle to a mounted view.
type Mounted struct {
	m     *mounter
	rec   *record
	owner *reactive.Owner
}

// Mount mounts v under parent, before marker (or at the end when marker is
// zero). Dynamic regions inside v are owned by a new child of the current
// reactive owner.
func Mount(tree *dom.Tree, parent, marker dom.NodeKey, v *View) (*Mounted, error) {
	if !tree.Contains(parent) {
		return nil, errors.New("T001").WithDetailf("mount parent %s", parent)
	}
	if !marker.IsZero() {
		if p, ok := tree.Parent(marker); !ok || p != parent {
			return nil, errors.New("T003").WithDetailf("marker %s, parent %s", marker, parent)
		}
	}

	m := &mounter{tree: tree, logger: tree.Logger()}
	owner := reactive.NewOwner(reactive.CurrentOwner())
	h := &Mounted{m: m, owner: owner}

	m.begin()
	reactive.WithOwner(owner, func() {
		h.rec = m.mount(v, parent, marker)
	})
	m.end()

	for _, k := range m.anchors(nil, h.rec) {
		tree.OnCleanup(k, owner.Dispose)
	}
	return h, nil
}

// Nodes returns the top-level nodes currently produced by the view, in
// order.
func (h *Mounted) Nodes() []dom.NodeKey {
	return h.m.nodes(nil, h.rec)
}

// Owner returns the reactive owner of the mounted view.
func (h *Mounted) Owner() *reactive.Owner {
	return h.owner
}

// Remove unmounts the view and disposes its reactive owner. It is safe to
// call more than once.
func (h *Mounted) Remove() {
	if h.owner.IsDisposed() {
		return
	}
	h.m.remove(h.rec)
	h.owner.Dispose()
}

func (m *mounter) begin() { m.depth++ }

// end runs OnMount callbacks once the outermost mount or patch finishes.
func (m *mounter) end() {
	m.depth--
	if m.depth > 0 {
		return
	}
	for len(m.afterMount) > 0 {
		fns := m.afterMount
		m.afterMount = nil
		for _, fn := range fns {
			fn()
		}
	}
}

func (m *mounter) mount(v *View, parent, marker dom.NodeKey) *record {
	if v == nil {
		v = emptyView
	}
	rec := &record{view: v}

	switch v.kind {
	case KindText, KindWidget, KindLayout, KindOverlay:
		rec.node = m.create(v)
		for _, c := range v.children {
			rec.children = append(rec.children, m.mount(c, rec.node, dom.NodeKey{}))
		}
		_ = m.tree.Insert(parent, rec.node, marker)
		key := rec.node
		if v.props.autoFocus {
			m.afterMount = append(m.afterMount, func() {
				if err := m.tree.Focus().SetFocused(key); err != nil {
					m.logger.Debug("tessel: autofocus skipped", "error", err)
				}
			})
		}
		for _, fn := range v.props.onMount {
			m.afterMount = append(m.afterMount, func() { fn(key) })
		}

	case KindFragment:
		for _, c := range v.children {
			rec.children = append(rec.children, m.mount(c, parent, marker))
		}

	case KindEmpty:

	case KindDyn:
		m.mountDyn(rec, parent, marker)

	case KindEach:
		m.mountEach(rec, parent, marker)

	case KindComponent:
		m.mountComponent(rec, parent, marker)
	}
	return rec
}

func (m *mounter) create(v *View) dom.NodeKey {
	var key dom.NodeKey
	switch v.kind {
	case KindText:
		key = m.tree.CreateText(v.text)
	case KindWidget:
		key = m.tree.Create(dom.KindWidget)
		m.tree.SetPainter(key, v.painter)
	case KindLayout:
		key = m.tree.Create(dom.KindLayout)
		m.tree.SetAxis(key, v.axis)
	case KindOverlay:
		key = m.tree.Create(dom.KindOverlay)
	}
	m.applyProps(key, v.props)
	for _, fn := range v.props.onCleanup {
		m.tree.OnCleanup(key, fn)
	}
	return key
}

func (m *mounter) applyProps(key dom.NodeKey, p props) {
	m.tree.SetConstraint(key, p.constraint)
	m.tree.SetFocusable(key, p.focusable)
	m.tree.SetDisabled(key, p.disabled)
	m.tree.SetID(key, p.id)
	m.tree.SetName(key, p.name)
	m.tree.SetZIndex(key, p.zIndex)
	m.tree.SetSize(key, p.width, p.height)
	m.tree.SetHandlers(key, p.handlers)
}

// region creates the end marker and owner of a dynamic region.
func (m *mounter) region(rec *record, parent, marker dom.NodeKey) {
	rec.owner = reactive.NewOwner(reactive.CurrentOwner())
	rec.node = m.tree.CreatePlaceholder()
	_ = m.tree.Insert(parent, rec.node, marker)
	m.tree.OnCleanup(rec.node, rec.owner.Dispose)
}

func (m *mounter) mountDyn(rec *record, parent, marker dom.NodeKey) {
	m.region(rec, parent, marker)
	reactive.WithOwner(rec.owner, func() {
		reactive.CreateEffect(func() reactive.Cleanup {
			next, branch := rec.view.dyn()
			reactive.Untracked(func() { m.update(rec, next, branch) })
			return nil
		})
	})
}

// update applies the latest result of a Dyn or Show to its region.
func (m *mounter) update(rec *record, next *View, branch int) {
	parent, ok := m.tree.Parent(rec.node)
	if !ok {
		return
	}
	if next == nil {
		next = emptyView
	}

	m.begin()
	defer m.end()

	switch {
	case rec.content == nil:
		rec.content = m.mount(next, parent, rec.node)
	case branch != rec.branch:
		rec.content = m.replace(rec.content, next, parent, rec.node)
	default:
		rec.content = m.patch(rec.content, next, parent, rec.node)
	}
	rec.branch = branch
}

func (m *mounter) mountComponent(rec *record, parent, marker dom.NodeKey) {
	m.region(rec, parent, marker)
	reactive.WithOwner(rec.owner, func() {
		var content *View
		reactive.Untracked(func() { content = rec.view.comp() })
		rec.content = m.mount(content, parent, rec.node)
	})
}

// patch updates rec to describe next and returns the record now standing
// in its place. anchor is the node following rec, or zero at the end of
// parent.
func (m *mounter) patch(rec *record, next *View, parent, anchor dom.NodeKey) *record {
	if next == nil {
		next = emptyView
	}
	if rec.view == next {
		return rec
	}
	if !sameShape(rec.view, next) {
		return m.replace(rec, next, parent, anchor)
	}

	switch next.kind {
	case KindText:
		m.tree.SetText(rec.node, next.text)
		m.applyProps(rec.node, next.props)
	case KindWidget:
		m.tree.SetPainter(rec.node, next.painter)
		m.applyProps(rec.node, next.props)
	case KindLayout, KindOverlay:
		m.applyProps(rec.node, next.props)
		rec.children = m.patchChildren(rec.children, next.children, rec.node, dom.NodeKey{})
	case KindFragment:
		rec.children = m.patchChildren(rec.children, next.children, parent, anchor)
	}
	rec.view = next
	return rec
}

// replace mounts next where rec stands, then removes rec.
func (m *mounter) replace(rec *record, next *View, parent, anchor dom.NodeKey) *record {
	before := anchor
	if first, ok := m.first(rec); ok {
		before = first
	}
	nr := m.mount(next, parent, before)
	m.remove(rec)
	return nr
}

// patchChildren patches children by position. Surplus old children are
// removed and surplus new ones mounted before anchor.
func (m *mounter) patchChildren(old []*record, next []*View, parent, anchor dom.NodeKey) []*record {
	out := make([]*record, 0, len(next))
	for i, v := range next {
		if i < len(old) {
			out = append(out, m.patch(old[i], v, parent, m.anchorAfter(old, i, anchor)))
		} else {
			out = append(out, m.mount(v, parent, anchor))
		}
	}
	for i := len(next); i < len(old); i++ {
		m.remove(old[i])
	}
	return out
}

func (m *mounter) anchorAfter(recs []*record, i int, anchor dom.NodeKey) dom.NodeKey {
	for _, r := range recs[i+1:] {
		if k, ok := m.first(r); ok {
			return k
		}
	}
	return anchor
}

// nodes appends the top-level nodes of rec to out, in tree order.
func (m *mounter) nodes(out []dom.NodeKey, rec *record) []dom.NodeKey {
	if rec == nil {
		return out
	}
	switch rec.view.kind {
	case KindText, KindWidget, KindLayout, KindOverlay:
		out = append(out, rec.node)
	case KindFragment:
		for _, c := range rec.children {
			out = m.nodes(out, c)
		}
	case KindDyn, KindComponent:
		out = m.nodes(out, rec.content)
		out = append(out, rec.node)
	case KindEach:
		for _, k := range rec.keys {
			out = m.nodes(out, rec.items[k].rec)
		}
		out = append(out, rec.node)
	}
	return out
}

// anchors appends the top-level nodes that live as long as rec itself:
// element nodes and region end markers. Region content comes and goes with
// the region, so it is not included.
func (m *mounter) anchors(out []dom.NodeKey, rec *record) []dom.NodeKey {
	if rec == nil {
		return out
	}
	switch rec.view.kind {
	case KindText, KindWidget, KindLayout, KindOverlay, KindDyn, KindComponent, KindEach:
		out = append(out, rec.node)
	case KindFragment:
		for _, c := range rec.children {
			out = m.anchors(out, c)
		}
	}
	return out
}

func (m *mounter) first(rec *record) (dom.NodeKey, bool) {
	ns := m.nodes(nil, rec)
	if len(ns) == 0 {
		return dom.NodeKey{}, false
	}
	return ns[0], true
}

// remove deletes rec's nodes. Region owners are disposed by the cleanup
// registered on their end marker.
func (m *mounter) remove(rec *record) {
	for _, k := range m.nodes(nil, rec) {
		m.tree.Remove(k)
	}
}

// move re-inserts rec's nodes, in order, before anchor.
func (m *mounter) move(rec *record, parent, anchor dom.NodeKey) {
	for _, k := range m.nodes(nil, rec) {
		_ = m.tree.Insert(parent, k, anchor)
	}
}
