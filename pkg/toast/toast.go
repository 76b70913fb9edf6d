package toast

import (
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vango-dev/tessel/pkg/buffer"
	"github.com/vango-dev/tessel/pkg/dom"
	"github.com/vango-dev/tessel/pkg/event"
	"github.com/vango-dev/tessel/pkg/geom"
	"github.com/vango-dev/tessel/pkg/layout"
	"github.com/vango-dev/tessel/pkg/reactive"
	"github.com/vango-dev/tessel/pkg/view"
)

// Type is the toast level.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

var icons = map[Type]string{
	TypeSuccess: "✓",
	TypeError:   "✗",
	TypeWarning: "!",
	TypeInfo:    "i",
}

var styles = map[Type]buffer.Style{
	TypeSuccess: {Fg: lipgloss.Color("2")},
	TypeError:   {Fg: lipgloss.Color("1"), Bold: true},
	TypeWarning: {Fg: lipgloss.Color("3")},
	TypeInfo:    {Fg: lipgloss.Color("4")},
}

const (
	// DefaultTTL is how long a toast stays up.
	DefaultTTL = 4 * time.Second

	// DefaultMaxVisible bounds the stack. Older toasts are dropped first.
	DefaultMaxVisible = 3

	// ZIndex is the overlay layer toasts are drawn on.
	ZIndex = 1000
)

// Toast is one notification.
type Toast struct {
	ID      uint64
	Level   Type
	Title   string
	Message string
}

// Text returns the line the toast is drawn as.
func (t Toast) Text() string {
	s := icons[t.Level] + " "
	if t.Title != "" {
		s += t.Title + ": "
	}
	return s + t.Message
}

// Option configures a Stack.
type Option func(*Stack)

// WithTTL sets how long toasts stay up. Zero or negative keeps them until
// dismissed.
func WithTTL(d time.Duration) Option {
	return func(s *Stack) { s.ttl = d }
}

// WithMaxVisible bounds how many toasts are shown at once.
func WithMaxVisible(n int) Option {
	return func(s *Stack) {
		if n > 0 {
			s.max = n
		}
	}
}

// Stack is a queue of visible toasts. Its methods are safe to call from any
// goroutine.
type Stack struct {
	ttl time.Duration
	max int

	mu     sync.Mutex
	nextID uint64
	timers map[uint64]*time.Timer

	toasts *reactive.Signal[[]Toast]
}

// NewStack creates an empty stack.
func NewStack(opts ...Option) *Stack {
	s := &Stack{
		ttl:    DefaultTTL,
		max:    DefaultMaxVisible,
		timers: make(map[uint64]*time.Timer),
		toasts: reactive.NewSignal[[]Toast](nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Show pushes a toast and returns its id.
func (s *Stack) Show(level Type, message string) uint64 {
	return s.push(Toast{Level: level, Message: message})
}

// WithTitle pushes a toast with a title.
func (s *Stack) WithTitle(level Type, title, message string) uint64 {
	return s.push(Toast{Level: level, Title: title, Message: message})
}

// Success pushes a success toast.
func (s *Stack) Success(message string) uint64 { return s.Show(TypeSuccess, message) }

// Error pushes an error toast.
func (s *Stack) Error(message string) uint64 { return s.Show(TypeError, message) }

// Warning pushes a warning toast.
func (s *Stack) Warning(message string) uint64 { return s.Show(TypeWarning, message) }

// Info pushes an informational toast.
func (s *Stack) Info(message string) uint64 { return s.Show(TypeInfo, message) }

func (s *Stack) push(t Toast) uint64 {
	s.mu.Lock()
	s.nextID++
	t.ID = s.nextID
	if s.ttl > 0 {
		id := t.ID
		s.timers[id] = time.AfterFunc(s.ttl, func() { s.Dismiss(id) })
	}
	s.mu.Unlock()

	var dropped []uint64
	s.toasts.Update(func(ts []Toast) []Toast {
		out := append(append([]Toast(nil), ts...), t)
		for len(out) > s.max {
			dropped = append(dropped, out[0].ID)
			out = out[1:]
		}
		return out
	})
	s.stopTimers(dropped...)
	return t.ID
}

// Dismiss removes the toast with the given id, if it is still shown.
func (s *Stack) Dismiss(id uint64) {
	s.stopTimers(id)
	s.toasts.Update(func(ts []Toast) []Toast {
		out := make([]Toast, 0, len(ts))
		for _, t := range ts {
			if t.ID != id {
				out = append(out, t)
			}
		}
		return out
	})
}

// Clear removes every toast.
func (s *Stack) Clear() {
	s.mu.Lock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()
	s.toasts.Set(nil)
}

func (s *Stack) stopTimers(ids ...uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if t, ok := s.timers[id]; ok {
			t.Stop()
			delete(s.timers, id)
		}
	}
}

// Toasts returns the visible toasts, oldest first. Reading it inside an
// effect subscribes to changes.
func (s *Stack) Toasts() []Toast { return s.toasts.Get() }

// View renders the stack as an overlay width columns wide and one row per
// toast. It renders nothing while the stack is empty.
func (s *Stack) View(width int) *view.View {
	rows := view.Each(s.toasts.Get,
		func(t Toast) string { return strconv.FormatUint(t.ID, 10) },
		func(t Toast) *view.View {
			return view.Widget(line(t), view.Name("toast"),
				view.Constraint(layout.Length(1)),
				view.OnClick(func(_ event.Mouse, h *event.Handle) {
					h.StopPropagation()
					s.Dismiss(t.ID)
				}),
			)
		})
	return view.Dyn(func() *view.View {
		n := len(s.toasts.Get())
		if n == 0 {
			return nil
		}
		return view.Overlay(view.Name("toasts"), view.Size(width, n), view.ZIndex(ZIndex), view.Col(rows))
	})
}

func line(t Toast) dom.Painter {
	return dom.PainterFunc(func(buf *buffer.Buffer, area geom.Rect) {
		buf.Print(area, 0, t.Text(), styles[t.Level])
	})
}
