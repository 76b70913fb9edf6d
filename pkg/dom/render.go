package dom

import (
	"sort"
	"strings"

	"github.com/vango-dev/tessel/pkg/buffer"
	"github.com/vango-dev/tessel/pkg/geom"
	"github.com/vango-dev/tessel/pkg/layout"
)

// Layout assigns a rect to every mounted node, starting with area for the
// root. Placeholders get an empty rect and overlays are centered in their
// parent's rect, so neither takes space from their siblings.
func (t *Tree) Layout(area geom.Rect) {
	root := t.get(t.root)
	root.rect = area
	t.layoutChildren(root, layout.Vertical)
}

func (t *Tree) layoutChildren(n *Node, inherited layout.Axis) {
	axis := layout.Vertical
	switch n.kind {
	case KindLayout:
		axis = n.axis
	case KindTransparent:
		axis = inherited
	}

	var flow []*Node
	var cs []layout.Constraint
	for _, k := range n.children {
		c := t.get(k)
		switch c.kind {
		case KindPlaceholder:
			c.rect = geom.Rect{X: n.rect.X, Y: n.rect.Y}
		case KindOverlay:
			c.rect = layout.Center(n.rect, c.width, c.height)
			t.layoutChildren(c, layout.Vertical)
		default:
			flow = append(flow, c)
			cs = append(cs, c.constraint)
		}
	}

	rects := layout.Split(n.rect, axis, cs)
	for i, c := range flow {
		c.rect = rects[i]
		t.layoutChildren(c, axis)
	}
}

// layers returns the paint order of independent subtrees: the root first,
// then every overlay by ascending z-index, ties by mount order.
func (t *Tree) layers() []*Node {
	var overlays []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, k := range n.children {
			c := t.get(k)
			if c.kind == KindOverlay {
				overlays = append(overlays, c)
			}
			walk(c)
		}
	}
	root := t.get(t.root)
	walk(root)
	sort.SliceStable(overlays, func(i, j int) bool {
		if overlays[i].zIndex != overlays[j].zIndex {
			return overlays[i].zIndex < overlays[j].zIndex
		}
		return overlays[i].seq < overlays[j].seq
	})
	return append([]*Node{root}, overlays...)
}

// Paint draws the tree into buf using the rects from the last Layout.
// Each overlay layer clears its rect before painting so background content
// does not show through.
func (t *Tree) Paint(buf *buffer.Buffer) {
	for i, layer := range t.layers() {
		if i > 0 {
			buf.Clear(layer.rect)
		}
		t.paintNode(buf, layer)
	}
}

func (t *Tree) paintNode(buf *buffer.Buffer, n *Node) {
	if n.kind == KindPlaceholder || n.rect.IsEmpty() {
		return
	}
	if n.kind == KindWidget {
		switch {
		case n.painter != nil:
			n.painter.Paint(buf, n.rect)
		case n.text != "":
			for i, line := range strings.Split(n.text, "\n") {
				buf.Print(n.rect, i, line, buffer.Style{})
			}
		}
	}
	for _, k := range n.children {
		if c := t.get(k); c.kind != KindOverlay {
			t.paintNode(buf, c)
		}
	}
}

// HitTest returns the node under (x, y). Layers are searched in reverse
// paint order, so the topmost overlay wins over the main tree. Within a
// layer later siblings win over earlier ones and the deepest containing
// node is returned. Placeholders and disabled subtrees are never hit.
func (t *Tree) HitTest(x, y int) (NodeKey, bool) {
	layers := t.layers()
	for i := len(layers) - 1; i >= 0; i-- {
		if t.IsDisabled(layers[i].key) {
			continue
		}
		if key, ok := t.hit(layers[i], x, y); ok {
			return key, true
		}
	}
	return NodeKey{}, false
}

func (t *Tree) hit(n *Node, x, y int) (NodeKey, bool) {
	if n.kind == KindPlaceholder || n.disabled || !n.rect.Contains(x, y) {
		return NodeKey{}, false
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		c := t.get(n.children[i])
		if c.kind == KindOverlay {
			continue
		}
		if key, ok := t.hit(c, x, y); ok {
			return key, true
		}
	}
	return n.key, true
}
