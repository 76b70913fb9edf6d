package view

import (
	"reflect"
	"testing"

	"github.com/vango-dev/tessel/pkg/dom"
	"github.com/vango-dev/tessel/pkg/reactive"
)

func mountList(t *testing.T, tree *dom.Tree, owner *reactive.Owner, items *reactive.Signal[[]string]) dom.NodeKey {
	t.Helper()
	mountRoot(t, tree, owner, Col(ID("list"),
		Each(items.Get,
			func(s string) string { return s },
			func(s string) *View { return Text(s, ID(s), Focusable()) },
		),
	))
	return lookup(t, tree, "list")
}

func keysOf(t *testing.T, tree *dom.Tree, ids ...string) map[string]dom.NodeKey {
	t.Helper()
	out := make(map[string]dom.NodeKey, len(ids))
	for _, id := range ids {
		out[id] = lookup(t, tree, id)
	}
	return out
}

func TestEachKeyedReconciliation(t *testing.T) {
	tree, owner := setup(t)
	items := reactive.NewSignal([]string{"A", "B", "C"})
	list := mountList(t, tree, owner, items)
	before := keysOf(t, tree, "A", "B", "C")

	var removed []string
	tree.OnCleanup(before["A"], func() { removed = append(removed, "A") })

	items.Set([]string{"B", "C", "D"})
	owner.Flush(8)

	if got, want := texts(tree, list), []string{"B", "C", "D", "|"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("children = %v, want %v", got, want)
	}
	after := keysOf(t, tree, "B", "C", "D")
	for _, k := range []string{"B", "C"} {
		if after[k] != before[k] {
			t.Errorf("%s changed key %s -> %s", k, before[k], after[k])
		}
	}
	if tree.Contains(before["A"]) {
		t.Error("A should be removed")
	}
	if !reflect.DeepEqual(removed, []string{"A"}) {
		t.Errorf("removed = %v", removed)
	}
	if got := len(tree.Focus().Focusables()); got != 3 {
		t.Errorf("Focusables() = %d, want 3", got)
	}
}

func TestEachReorderMovesWithoutRemount(t *testing.T) {
	tree, owner := setup(t)
	items := reactive.NewSignal([]string{"A", "B", "C", "D"})
	list := mountList(t, tree, owner, items)
	before := keysOf(t, tree, "A", "B", "C", "D")
	if err := tree.Focus().SetFocused(before["B"]); err != nil {
		t.Fatal(err)
	}
	size := tree.Len()

	items.Set([]string{"D", "B", "A", "C"})
	owner.Flush(8)

	if got, want := texts(tree, list), []string{"D", "B", "A", "C", "|"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("children = %v, want %v", got, want)
	}
	after := keysOf(t, tree, "A", "B", "C", "D")
	if !reflect.DeepEqual(before, after) {
		t.Errorf("keys changed: %v -> %v", before, after)
	}
	if tree.Len() != size {
		t.Errorf("Len() = %d, want %d", tree.Len(), size)
	}
	if k, _ := tree.Focus().Focused(); k != before["B"] {
		t.Error("moving the focused item lost focus")
	}
}

func TestEachTableDriven(t *testing.T) {
	tests := []struct {
		name string
		from []string
		to   []string
	}{
		{"empty to items", nil, []string{"A", "B"}},
		{"items to empty", []string{"A", "B"}, nil},
		{"reverse", []string{"A", "B", "C"}, []string{"C", "B", "A"}},
		{"insert middle", []string{"A", "C"}, []string{"A", "B", "C"}},
		{"replace all", []string{"A", "B"}, []string{"X", "Y"}},
		{"rotate", []string{"A", "B", "C", "D"}, []string{"B", "C", "D", "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, owner := setup(t)
			items := reactive.NewSignal(tt.from)
			list := mountList(t, tree, owner, items)

			items.Set(tt.to)
			owner.Flush(8)

			want := append(append([]string{}, tt.to...), "|")
			if got := texts(tree, list); !reflect.DeepEqual(got, want) {
				t.Errorf("children = %v, want %v", got, want)
			}
			if got, want := tree.Len(), 3+len(tt.to); got != want {
				t.Errorf("Len() = %d, want %d", got, want)
			}
		})
	}
}

func TestEachDuplicateKeysDropLater(t *testing.T) {
	tree, owner := setup(t)
	items := reactive.NewSignal([]string{"A", "B", "A"})
	list := mountList(t, tree, owner, items)

	if got, want := texts(tree, list), []string{"A", "B", "|"}; !reflect.DeepEqual(got, want) {
		t.Errorf("children = %v, want %v", got, want)
	}
}

func TestEachItemOwnersDisposed(t *testing.T) {
	tree, owner := setup(t)
	items := reactive.NewSignal([]int{1, 2})
	tick := reactive.NewSignal(0)
	runs := map[int]int{}

	mountRoot(t, tree, owner, Each(items.Get,
		func(n int) string { return string(rune('0' + n)) },
		func(n int) *View {
			return Dyn(func() *View {
				runs[n]++
				_ = tick.Get()
				return Text("item")
			})
		},
	))

	items.Set([]int{2})
	owner.Flush(8)
	tick.Set(1)
	owner.Flush(8)

	if runs[1] != 1 {
		t.Errorf("removed item re-ran: runs = %d", runs[1])
	}
	if runs[2] != 2 {
		t.Errorf("kept item runs = %d, want 2", runs[2])
	}
}

func TestEachMovesFragmentItemsAsAUnit(t *testing.T) {
	tree, owner := setup(t)
	items := reactive.NewSignal([]string{"A", "B"})
	mountRoot(t, tree, owner, Col(ID("list"),
		Text("head"),
		Each(items.Get,
			func(s string) string { return s },
			func(s string) *View { return Fragment(Text(s+"1"), Text(s+"2")) },
		),
	))
	list := lookup(t, tree, "list")

	items.Set([]string{"B", "A"})
	owner.Flush(8)

	want := []string{"head", "B1", "B2", "A1", "A2", "|"}
	if got := texts(tree, list); !reflect.DeepEqual(got, want) {
		t.Errorf("children = %v, want %v", got, want)
	}
}
