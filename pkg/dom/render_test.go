package dom

import (
	"testing"

	"github.com/vango-dev/tessel/pkg/buffer"
	"github.com/vango-dev/tessel/pkg/geom"
	"github.com/vango-dev/tessel/pkg/layout"
)

func TestLayout_SplitsAlongAxis(t *testing.T) {
	tr := NewTree()
	row := tr.Create(KindLayout)
	tr.SetAxis(row, layout.Horizontal)
	tr.SetConstraint(row, layout.Length(2))
	mustInsert(t, tr, tr.Root(), row, NodeKey{})
	body := newWidget(t, tr, tr.Root(), false)

	left := newWidget(t, tr, row, false)
	tr.SetConstraint(left, layout.Length(3))
	marker := tr.CreatePlaceholder()
	mustInsert(t, tr, row, marker, NodeKey{})
	right := newWidget(t, tr, row, false)

	tr.Layout(geom.R(0, 0, 10, 5))

	tests := []struct {
		name string
		key  NodeKey
		want geom.Rect
	}{
		{"row", row, geom.R(0, 0, 10, 2)},
		{"body", body, geom.R(0, 2, 10, 3)},
		{"left", left, geom.R(0, 0, 3, 2)},
		{"right", right, geom.R(3, 0, 7, 2)},
		{"placeholder", marker, geom.R(0, 0, 0, 0)},
	}
	for _, tt := range tests {
		if got := tr.Node(tt.key).Rect(); got != tt.want {
			t.Errorf("%s rect = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLayout_TransparentInheritsAxis(t *testing.T) {
	tr := NewTree()
	row := tr.Create(KindLayout)
	tr.SetAxis(row, layout.Horizontal)
	mustInsert(t, tr, tr.Root(), row, NodeKey{})
	group := tr.Create(KindTransparent)
	mustInsert(t, tr, row, group, NodeKey{})
	a := newWidget(t, tr, group, false)
	b := newWidget(t, tr, group, false)

	tr.Layout(geom.R(0, 0, 8, 1))

	if got := tr.Node(a).Rect(); got != geom.R(0, 0, 4, 1) {
		t.Errorf("a = %v", got)
	}
	if got := tr.Node(b).Rect(); got != geom.R(4, 0, 4, 1) {
		t.Errorf("b = %v", got)
	}
}

func TestPaint_TextAndPainterAndOverlay(t *testing.T) {
	tr := NewTree()
	title := tr.CreateText("title")
	tr.SetConstraint(title, layout.Length(1))
	mustInsert(t, tr, tr.Root(), title, NodeKey{})
	body := newWidget(t, tr, tr.Root(), false)
	tr.SetPainter(body, PainterFunc(func(buf *buffer.Buffer, area geom.Rect) {
		buf.Fill(area, buffer.Cell{Content: "."})
	}))

	popup := tr.Create(KindOverlay)
	tr.SetSize(popup, 4, 1)
	mustInsert(t, tr, body, popup, NodeKey{})
	msg := tr.CreateText("ok")
	mustInsert(t, tr, popup, msg, NodeKey{})

	buf := buffer.New(8, 3)
	tr.Layout(buf.Area())
	tr.Paint(buf)

	want := "title\n..ok  ..\n........"
	if got := buf.String(); got != want {
		t.Errorf("Paint() =\n%s\nwant\n%s", got, want)
	}
}

func TestHitTest_DeepestAndLaterSiblingWins(t *testing.T) {
	tr := NewTree()
	box := tr.Create(KindLayout)
	mustInsert(t, tr, tr.Root(), box, NodeKey{})
	leaf := newWidget(t, tr, box, false)

	tr.Layout(geom.R(0, 0, 4, 4))

	if k, ok := tr.HitTest(1, 1); !ok || k != leaf {
		t.Errorf("HitTest = %v, want deepest leaf %v", k, leaf)
	}
	if _, ok := tr.HitTest(10, 10); ok {
		t.Error("outside the root nothing is hit")
	}
}

func TestHitTest_OverlayPrecedence(t *testing.T) {
	tr := NewTree()
	background := newWidget(t, tr, tr.Root(), true)
	overlay := tr.Create(KindOverlay)
	mustInsert(t, tr, tr.Root(), overlay, NodeKey{})
	target := newWidget(t, tr, overlay, true)

	tr.Layout(geom.R(0, 0, 10, 4))
	if tr.Node(background).Rect() != tr.Node(target).Rect() {
		t.Fatalf("test expects identical rects: %v vs %v", tr.Node(background).Rect(), tr.Node(target).Rect())
	}

	if k, ok := tr.HitTest(3, 2); !ok || k != target {
		t.Errorf("HitTest = %v, want overlay target %v", k, target)
	}
}

func TestHitTest_OverlayZOrder(t *testing.T) {
	tr := NewTree()
	high := tr.Create(KindOverlay)
	tr.SetZIndex(high, 5)
	mustInsert(t, tr, tr.Root(), high, NodeKey{})
	low1 := tr.Create(KindOverlay)
	mustInsert(t, tr, tr.Root(), low1, NodeKey{})
	low2 := tr.Create(KindOverlay)
	mustInsert(t, tr, tr.Root(), low2, NodeKey{})

	tr.Layout(geom.R(0, 0, 5, 5))
	if k, _ := tr.HitTest(2, 2); k != high {
		t.Errorf("HitTest = %v, want highest z-index %v", k, high)
	}

	tr.SetZIndex(high, 0)
	if k, _ := tr.HitTest(2, 2); k != low2 {
		t.Errorf("HitTest = %v, want latest mounted overlay %v", k, low2)
	}
}

func TestHitTest_OverlayOnlyCoversItsRect(t *testing.T) {
	tr := NewTree()
	bg := newWidget(t, tr, tr.Root(), false)
	popup := tr.Create(KindOverlay)
	tr.SetSize(popup, 2, 2)
	mustInsert(t, tr, tr.Root(), popup, NodeKey{})

	tr.Layout(geom.R(0, 0, 6, 6))
	if k, _ := tr.HitTest(0, 0); k != bg {
		t.Errorf("HitTest outside the popup = %v, want background", k)
	}
	if k, _ := tr.HitTest(2, 2); k != popup {
		t.Errorf("HitTest inside the popup = %v, want popup", k)
	}
}
