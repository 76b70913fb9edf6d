package view

import (
	"github.com/vango-dev/tessel/internal/errors"
	"github.com/vango-dev/tessel/pkg/dom"
	"github.com/vango-dev/tessel/pkg/reactive"
)

func (m *mounter) mountEach(rec *record, parent, marker dom.NodeKey) {
	m.region(rec, parent, marker)
	rec.items = make(map[string]*item)
	reactive.WithOwner(rec.owner, func() {
		reactive.CreateEffect(func() reactive.Cleanup {
			entries := rec.view.each.entries()
			reactive.Untracked(func() { m.reconcile(rec, entries) })
			return nil
		})
	})
}

// reconcile brings a keyed list region in line with entries. Surviving
// keys keep their records; stale keys are removed; new keys are mounted.
// The final order is reached by walking the new list back to front and
// moving only the items that are not already in front of their successor.
func (m *mounter) reconcile(rec *record, entries []entry) {
	parent, ok := m.tree.Parent(rec.node)
	if !ok {
		return
	}

	m.begin()
	defer m.end()

	keys := make([]string, 0, len(entries))
	byKey := make(map[string]entry, len(entries))
	for _, e := range entries {
		if _, dup := byKey[e.key]; dup {
			m.logger.Warn("tessel: duplicate list key, dropping later item",
				"key", e.key, "error", errors.New("T007"))
			continue
		}
		byKey[e.key] = e
		keys = append(keys, e.key)
	}

	for _, k := range rec.keys {
		if _, keep := byKey[k]; keep {
			continue
		}
		it := rec.items[k]
		m.remove(it.rec)
		it.owner.Dispose()
		delete(rec.items, k)
	}

	anchor := rec.node
	for i := len(keys) - 1; i >= 0; i-- {
		k := keys[i]
		it, ok := rec.items[k]
		if !ok {
			it = &item{owner: reactive.NewOwner(rec.owner)}
			reactive.WithOwner(it.owner, func() {
				it.rec = m.mount(byKey[k].render(), parent, anchor)
			})
			rec.items[k] = it
		} else if !m.placedBefore(it.rec, anchor) {
			m.move(it.rec, parent, anchor)
		}
		if first, ok := m.first(it.rec); ok {
			anchor = first
		}
	}
	rec.keys = keys
}

// placedBefore reports whether rec's last node is immediately followed by
// anchor. Records without nodes are always in place.
func (m *mounter) placedBefore(rec *record, anchor dom.NodeKey) bool {
	ns := m.nodes(nil, rec)
	if len(ns) == 0 {
		return true
	}
	next, ok := m.tree.NextSibling(ns[len(ns)-1])
	return ok && next == anchor
}
