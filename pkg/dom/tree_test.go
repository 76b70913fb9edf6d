package dom

import (
	stderrors "errors"
	"reflect"
	"strings"
	"testing"
)

type countingNotifier struct{ n int }

func (c *countingNotifier) Invalidate() { c.n++ }

func mustInsert(t *testing.T, tr *Tree, parent, child, marker NodeKey) {
	t.Helper()
	if err := tr.Insert(parent, child, marker); err != nil {
		t.Fatalf("Insert(%s, %s, %s) error = %v", parent, child, marker, err)
	}
}

func newWidget(t *testing.T, tr *Tree, parent NodeKey, focusable bool) NodeKey {
	t.Helper()
	k := tr.Create(KindWidget)
	tr.SetFocusable(k, focusable)
	mustInsert(t, tr, parent, k, NodeKey{})
	return k
}

func TestNewTree(t *testing.T) {
	tr := NewTree()
	root := tr.Node(tr.Root())
	if root == nil || !root.Mounted() || root.Kind() != KindLayout {
		t.Fatalf("root = %+v", root)
	}
	if tr.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tr.Len())
	}
	if _, ok := tr.Parent(tr.Root()); ok {
		t.Error("root should have no parent")
	}
}

func TestInsert_AppendAndMarker(t *testing.T) {
	tr := NewTree()
	root := tr.Root()
	a := tr.CreateText("a")
	b := tr.CreateText("b")
	c := tr.CreateText("c")

	mustInsert(t, tr, root, a, NodeKey{})
	mustInsert(t, tr, root, c, NodeKey{})
	mustInsert(t, tr, root, b, c)

	if got, want := tr.Children(root), []NodeKey{a, b, c}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Children() = %v, want %v", got, want)
	}
	if p, ok := tr.Parent(b); !ok || p != root {
		t.Errorf("Parent(b) = %v, %v", p, ok)
	}
	if f, _ := tr.FirstChild(root); f != a {
		t.Errorf("FirstChild = %v, want a", f)
	}
	if n, _ := tr.NextSibling(a); n != b {
		t.Errorf("NextSibling(a) = %v, want b", n)
	}
	if _, ok := tr.NextSibling(c); ok {
		t.Error("NextSibling(c) should not exist")
	}
}

func TestInsert_MoveKeepsIdentityAndFocus(t *testing.T) {
	tr := NewTree()
	root := tr.Root()
	a := newWidget(t, tr, root, true)
	b := newWidget(t, tr, root, true)
	if err := tr.Focus().SetFocused(a); err != nil {
		t.Fatal(err)
	}

	mustInsert(t, tr, root, a, NodeKey{})

	if got, want := tr.Children(root), []NodeKey{b, a}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Children() = %v, want %v", got, want)
	}
	if f, _ := tr.Focus().Focused(); f != a {
		t.Errorf("focus after move = %v, want %v", f, a)
	}
	if got := len(tr.Focus().Focusables()); got != 2 {
		t.Errorf("registry size = %d, want 2", got)
	}
}

func TestInsert_Validation(t *testing.T) {
	tr := NewTree()
	root := tr.Root()
	box := tr.Create(KindLayout)
	mustInsert(t, tr, root, box, NodeKey{})
	inner := tr.Create(KindLayout)
	mustInsert(t, tr, box, inner, NodeKey{})
	other := tr.CreateText("x")
	mustInsert(t, tr, root, other, NodeKey{})
	stale := tr.CreateText("gone")
	tr.Remove(stale)

	before := tr.Dump()

	tests := []struct {
		name                  string
		parent, child, marker NodeKey
		want                  error
	}{
		{"stale parent", stale, other, NodeKey{}, ErrStaleKey},
		{"stale child", root, stale, NodeKey{}, ErrStaleKey},
		{"root as child", box, root, NodeKey{}, ErrRootInsert},
		{"self insert", box, box, NodeKey{}, ErrCycle},
		{"into own subtree", inner, box, NodeKey{}, ErrCycle},
		{"foreign marker", box, other, other, ErrBadMarker},
		{"stale marker", root, other, stale, ErrBadMarker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tr.Insert(tt.parent, tt.child, tt.marker)
			if !stderrors.Is(err, tt.want) {
				t.Errorf("Insert() error = %v, want %v", err, tt.want)
			}
		})
	}

	if after := tr.Dump(); after != before {
		t.Errorf("rejected inserts changed the tree:\n%s\nwant\n%s", after, before)
	}
}

func TestInsert_StrictPanics(t *testing.T) {
	tr := NewTree(WithStrict(true))
	stale := tr.CreateText("x")
	tr.Remove(stale)

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !stderrors.Is(err, ErrStaleKey) {
			t.Errorf("recover() = %v, want ErrStaleKey panic", r)
		}
	}()
	_ = tr.Insert(tr.Root(), stale, NodeKey{})
}

func TestRemove_Subtree(t *testing.T) {
	tr := NewTree()
	root := tr.Root()
	box := tr.Create(KindLayout)
	mustInsert(t, tr, root, box, NodeKey{})
	a := newWidget(t, tr, box, true)
	b := newWidget(t, tr, box, true)

	var order []string
	tr.OnCleanup(a, func() { order = append(order, "a") })
	tr.OnCleanup(box, func() { order = append(order, "box1") })
	tr.OnCleanup(box, func() { order = append(order, "box2") })

	tr.Remove(box)

	for _, k := range []NodeKey{box, a, b} {
		if tr.Contains(k) {
			t.Errorf("%s should be gone", k)
		}
	}
	if len(tr.Focus().Focusables()) != 0 {
		t.Errorf("registry = %v, want empty", tr.Focus().Focusables())
	}
	if tr.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tr.Len())
	}
	if want := []string{"a", "box2", "box1"}; !reflect.DeepEqual(order, want) {
		t.Errorf("cleanup order = %v, want %v", order, want)
	}
	if len(tr.Children(root)) != 0 {
		t.Errorf("root children = %v", tr.Children(root))
	}
}

func TestRemove_Idempotent(t *testing.T) {
	tr := NewTree()
	root := tr.Root()
	a := newWidget(t, tr, root, true)
	b := newWidget(t, tr, root, true)
	tr.SetID(b, "b")
	if err := tr.Focus().SetFocused(b); err != nil {
		t.Fatal(err)
	}

	tr.Remove(a)
	once := tr.Dump()
	onceReg := tr.Focus().Focusables()
	onceLen := tr.Len()

	tr.Remove(a)
	if tr.Dump() != once || !reflect.DeepEqual(tr.Focus().Focusables(), onceReg) || tr.Len() != onceLen {
		t.Error("second Remove changed observable state")
	}
	if f, _ := tr.Focus().Focused(); f != b {
		t.Errorf("focus = %v, want b", f)
	}

	tr.Remove(NodeKey{})
	tr.Remove(NodeKey{index: 99, gen: 7})
}

func TestRemove_RootIsRefused(t *testing.T) {
	tr := NewTree()
	tr.Remove(tr.Root())
	if !tr.Contains(tr.Root()) {
		t.Error("root must survive Remove")
	}
}

func TestMountUnmount_NoLeak(t *testing.T) {
	tr := NewTree()
	root := tr.Root()
	a := newWidget(t, tr, root, true)
	if err := tr.Focus().SetFocused(a); err != nil {
		t.Fatal(err)
	}

	regBefore := tr.Focus().Focusables()
	focusBefore, _ := tr.Focus().Focused()
	lenBefore := tr.Len()

	sub := tr.Create(KindLayout)
	newWidget(t, tr, sub, true)
	inner := newWidget(t, tr, sub, true)
	tr.SetID(inner, "inner")
	mustInsert(t, tr, root, sub, NodeKey{})
	if _, ok := tr.Lookup("inner"); !ok {
		t.Fatal("id should be claimed after mount")
	}
	tr.Remove(sub)

	if got := tr.Focus().Focusables(); !reflect.DeepEqual(got, regBefore) {
		t.Errorf("registry = %v, want %v", got, regBefore)
	}
	if got, _ := tr.Focus().Focused(); got != focusBefore {
		t.Errorf("focused = %v, want %v", got, focusBefore)
	}
	if tr.Len() != lenBefore {
		t.Errorf("Len() = %d, want %d", tr.Len(), lenBefore)
	}
	if _, ok := tr.Lookup("inner"); ok {
		t.Error("id should be released after unmount")
	}
}

func TestDetachedSubtreeRegistersOnlyWhenMounted(t *testing.T) {
	tr := NewTree()
	sub := tr.Create(KindLayout)
	w := newWidget(t, tr, sub, true)

	if len(tr.Focus().Focusables()) != 0 {
		t.Fatal("detached focusable should not be registered")
	}
	if tr.Node(w).Mounted() {
		t.Fatal("detached node should not be mounted")
	}
	mustInsert(t, tr, tr.Root(), sub, NodeKey{})
	if got := tr.Focus().Focusables(); len(got) != 1 || got[0] != w {
		t.Errorf("registry = %v, want [%v]", got, w)
	}
}

func TestClearChildren(t *testing.T) {
	tr := NewTree()
	root := tr.Root()
	a := newWidget(t, tr, root, true)
	b := newWidget(t, tr, root, false)

	tr.ClearChildren(root)

	if tr.Contains(a) || tr.Contains(b) {
		t.Error("children should be removed")
	}
	if len(tr.Children(root)) != 0 || len(tr.Focus().Focusables()) != 0 {
		t.Error("root and registry should be empty")
	}
	tr.ClearChildren(NodeKey{})
}

func TestStaleKeyAfterSlotReuse(t *testing.T) {
	tr := NewTree()
	a := tr.CreateText("a")
	tr.Remove(a)
	b := tr.CreateText("b")

	if a.index != b.index {
		t.Skip("slot was not reused")
	}
	if tr.Contains(a) {
		t.Error("old key must not reach the new node")
	}
	if tr.Node(b).Text() != "b" {
		t.Error("new key should resolve")
	}
}

func TestDuplicateIDNewestWins(t *testing.T) {
	tr := NewTree()
	root := tr.Root()
	a := newWidget(t, tr, root, false)
	tr.SetID(a, "dup")
	b := tr.Create(KindWidget)
	tr.SetID(b, "dup")
	mustInsert(t, tr, root, b, NodeKey{})

	if k, _ := tr.Lookup("dup"); k != b {
		t.Errorf("Lookup = %v, want newest %v", k, b)
	}
	tr.Remove(a)
	if k, _ := tr.Lookup("dup"); k != b {
		t.Error("removing the older claimant must not release the newer claim")
	}
}

func TestSettersNotify(t *testing.T) {
	n := &countingNotifier{}
	tr := NewTree(WithNotifier(n))
	a := tr.CreateText("a")
	mustInsert(t, tr, tr.Root(), a, NodeKey{})

	n.n = 0
	tr.SetText(a, "a")
	if n.n != 0 {
		t.Error("unchanged text should not invalidate")
	}
	tr.SetText(a, "b")
	if n.n != 1 {
		t.Errorf("invalidations = %d, want 1", n.n)
	}
	tr.SetHandlers(a, Handlers{})
	if n.n != 1 {
		t.Error("handlers are invisible and should not invalidate")
	}

	tr.SetText(NodeKey{index: 50, gen: 1}, "x")
}

func TestSetFocusableWhileMounted(t *testing.T) {
	tr := NewTree()
	a := newWidget(t, tr, tr.Root(), false)
	tr.SetFocusable(a, true)
	if len(tr.Focus().Focusables()) != 1 {
		t.Fatal("SetFocusable(true) should register a mounted node")
	}
	if err := tr.Focus().SetFocused(a); err != nil {
		t.Fatal(err)
	}
	tr.SetFocusable(a, false)
	if _, ok := tr.Focus().Focused(); ok {
		t.Error("SetFocusable(false) should clear focus")
	}
}

func TestDump(t *testing.T) {
	tr := NewTree()
	a := newWidget(t, tr, tr.Root(), true)
	tr.SetText(a, "hi")
	tr.SetID(a, "greeting")
	_ = tr.Focus().SetFocused(a)

	out := tr.Dump()
	for _, want := range []string{"layout:root", `widget#greeting "hi" [focusable] [focused]`} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump() missing %q:\n%s", want, out)
		}
	}

	snap := tr.Snapshot()
	if len(snap.Children) != 1 || !snap.Children[0].Focused || snap.Children[0].ID != "greeting" {
		t.Errorf("Snapshot() = %+v", snap)
	}
}
