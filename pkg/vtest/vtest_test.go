package vtest_test

import (
	"fmt"
	"testing"

	"github.com/vango-dev/tessel"
	"github.com/vango-dev/tessel/pkg/components"
	"github.com/vango-dev/tessel/pkg/dom"
	"github.com/vango-dev/tessel/pkg/vtest"
)

func counter() *tessel.View {
	return tessel.Component(func() *tessel.View {
		count := tessel.NewSignal(0)
		return tessel.Col(
			tessel.Dyn(func() *tessel.View {
				return tessel.Text(fmt.Sprintf("count: %d", count.Get()))
			}),
			components.Button("+1", func() { count.Update(func(n int) int { return n + 1 }) }, tessel.ID("inc")),
		)
	})
}

func TestPressAndWait(t *testing.T) {
	h := vtest.Run(t, func(*tessel.App) *tessel.View { return counter() }, vtest.WithSize(20, 2))
	h.WaitText("count: 0")

	h.Press("tab", "enter", "space")
	h.WaitText("count: 2")
	if got := h.Focused(); got != "inc" {
		t.Errorf("Focused() = %q, want inc", got)
	}
	vtest.ExpectLine(t, h.Frame(), 0, "count: 2")
	vtest.ExpectNotContains(t, h.Frame(), "count: 0")
}

func TestClick(t *testing.T) {
	h := vtest.Run(t, func(*tessel.App) *tessel.View { return counter() }, vtest.WithSize(20, 2))
	h.WaitText("count: 0")
	h.Click(10, 1)
	h.WaitText("count: 1")
}

func TestTypeAndPaste(t *testing.T) {
	value := tessel.NewSignal("")
	h := vtest.Run(t, func(*tessel.App) *tessel.View {
		return components.Input(value, nil, tessel.ID("in"))
	})
	h.Press("tab")
	h.Type("hello ")
	h.Paste("world\n")
	vtest.ExpectContains(t, h.WaitText("hello world"), "hello world")
	if value.Peek() != "hello world" {
		t.Errorf("value = %q", value.Peek())
	}
}

func TestDoneAfterViewQuits(t *testing.T) {
	h := vtest.Run(t, func(app *tessel.App) *tessel.View {
		return components.Button("quit", app.Quit)
	})
	h.WaitText("quit")
	h.Press("tab", "enter")
	if err := h.Done(); err != nil {
		t.Errorf("Done() = %v", err)
	}
	if err := h.Quit(); err != nil {
		t.Errorf("Quit() after Done = %v", err)
	}
}

func TestResizeAndInspect(t *testing.T) {
	h := vtest.Run(t, func(*tessel.App) *tessel.View {
		return tessel.Row(tessel.Text("L"), tessel.Text("R", tessel.ID("r")))
	}, vtest.WithSize(10, 1), vtest.WithConfig(tessel.Config{ResizeDebounce: -1}))
	h.WaitText("R")

	h.Resize(20, 1)
	h.WaitFor(func(frame string) bool { return len(frame) == 20 })
	h.Inspect(func(tree *dom.Tree) {
		k, ok := tree.Lookup("r")
		if !ok {
			t.Error("r not mounted")
			return
		}
		if x := tree.Node(k).Rect().X; x != 10 {
			t.Errorf("r.X = %d, want 10", x)
		}
	})
}
