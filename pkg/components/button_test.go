package components

import (
	"testing"

	"github.com/vango-dev/tessel/pkg/event"
	"github.com/vango-dev/tessel/pkg/view"
)

func TestButtonPress(t *testing.T) {
	tests := []struct {
		name string
		evs  []event.Event
		want int
	}{
		{"enter", []event.Event{event.Special(event.KeyEnter)}, 1},
		{"space", []event.Event{event.Char(' ')}, 1},
		{"other key", []event.Event{event.Char('x')}, 0},
		{"twice", []event.Event{event.Special(event.KeyEnter), event.Char(' ')}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			presses := 0
			r := newRig(t, 10, 1, Button("OK", func() { presses++ }, view.ID("ok")))
			r.send(event.Special(event.KeyTab))
			if r.focused() != "ok" {
				t.Fatalf("focused = %q, want ok", r.focused())
			}
			r.send(tt.evs...)
			if presses != tt.want {
				t.Errorf("presses = %d, want %d", presses, tt.want)
			}
		})
	}
}

func TestButtonClick(t *testing.T) {
	presses := 0
	r := newRig(t, 10, 1, Button("OK", func() { presses++ }, view.ID("ok")))

	lines := r.click(4, 0)
	if presses != 1 {
		t.Errorf("presses = %d, want 1", presses)
	}
	if r.focused() != "ok" {
		t.Errorf("click should focus the button, focused = %q", r.focused())
	}
	if lines[0] != "  [ OK ]" {
		t.Errorf("line = %q, want centered label", lines[0])
	}
}

func TestButtonFocusStyle(t *testing.T) {
	r := newRig(t, 6, 1, Button("A", nil))
	if c := r.buf.Cell(0, 0); c.Content != "[" || c.Style.Reverse {
		t.Fatalf("unfocused cell = %+v", c)
	}
	r.send(event.Special(event.KeyTab))
	if c := r.buf.Cell(0, 0); !c.Style.Reverse {
		t.Errorf("focused cell should be reversed: %+v", c)
	}
	r.send(event.Special(event.KeyTab))
	if c := r.buf.Cell(0, 0); !c.Style.Reverse {
		t.Errorf("Tab with one focusable should keep focus, cell = %+v", c)
	}
}

func TestButtonStopsPropagation(t *testing.T) {
	var outer int
	r := newRig(t, 10, 1, view.Col(
		view.OnKeyDown(func(event.Key, *event.Handle) { outer++ }),
		Button("OK", func() {}),
	))
	r.send(event.Special(event.KeyTab), event.Special(event.KeyEnter), event.Char('z'))
	if outer != 1 {
		t.Errorf("outer handler ran %d times, want 1 (only for z)", outer)
	}
}
