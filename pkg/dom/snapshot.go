package dom

import (
	"fmt"
	"strings"

	"github.com/vango-dev/tessel/pkg/geom"
)

// Snapshot is a serializable copy of a subtree, used by devtools and tests.
type Snapshot struct {
	Key       string     `json:"key"`
	Kind      string     `json:"kind"`
	ID        NodeID     `json:"id,omitempty"`
	Name      string     `json:"name,omitempty"`
	Text      string     `json:"text,omitempty"`
	Rect      geom.Rect  `json:"rect"`
	Focusable bool       `json:"focusable,omitempty"`
	Focused   bool       `json:"focused,omitempty"`
	Disabled  bool       `json:"disabled,omitempty"`
	ZIndex    int        `json:"zIndex,omitempty"`
	Children  []Snapshot `json:"children,omitempty"`
}

// Snapshot captures the subtree under the root.
func (t *Tree) Snapshot() Snapshot {
	return t.snapshot(t.get(t.root))
}

func (t *Tree) snapshot(n *Node) Snapshot {
	s := Snapshot{
		Key:       n.key.String(),
		Kind:      n.kind.String(),
		ID:        n.id,
		Name:      n.name,
		Text:      n.text,
		Rect:      n.rect,
		Focusable: n.focusable,
		Focused:   n.key == t.focus.focused,
		Disabled:  n.disabled,
		ZIndex:    n.zIndex,
	}
	for _, k := range n.children {
		s.Children = append(s.Children, t.snapshot(t.get(k)))
	}
	return s
}

// Dump renders the tree as indented text, one node per line.
func (t *Tree) Dump() string {
	var b strings.Builder
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Label())
		if n.text != "" {
			fmt.Fprintf(&b, " %q", n.text)
		}
		if n.focusable {
			b.WriteString(" [focusable]")
		}
		if n.key == t.focus.focused {
			b.WriteString(" [focused]")
		}
		if n.disabled {
			b.WriteString(" [disabled]")
		}
		b.WriteByte('\n')
		for _, k := range n.children {
			walk(t.get(k), depth+1)
		}
	}
	walk(t.get(t.root), 0)
	return b.String()
}
