package vtest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/vango-dev/tessel"
	"github.com/vango-dev/tessel/internal/logging"
	"github.com/vango-dev/tessel/pkg/backend"
	"github.com/vango-dev/tessel/pkg/dom"
	"github.com/vango-dev/tessel/pkg/event"
	"github.com/vango-dev/tessel/pkg/view"
)

// DefaultTimeout bounds every wait.
const DefaultTimeout = 2 * time.Second

type options struct {
	width, height int
	config        tessel.Config
	timeout       time.Duration
}

// Option configures Run.
type Option func(*options)

// WithSize sets the screen size. The default is 40x10.
func WithSize(width, height int) Option {
	return func(o *options) { o.width, o.height = width, height }
}

// WithConfig sets the app configuration. A nil logger is replaced with one
// that discards everything.
func WithConfig(cfg tessel.Config) Option {
	return func(o *options) { o.config = cfg }
}

// WithTimeout bounds waits. The default is DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// Harness is a running app driven by a test.
type Harness struct {
	t       testing.TB
	App     *tessel.App
	Backend *backend.MemoryBackend

	timeout time.Duration
	done    chan error
	err     error
	stopped bool
}

// Run starts the view returned by build. build receives the app so views
// can call Quit or read FocusedID. The app is stopped when the test ends.
func Run(t testing.TB, build func(app *tessel.App) *view.View, opts ...Option) *Harness {
	t.Helper()
	o := options{width: 40, height: 10, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.config.Logger == nil {
		o.config.Logger = logging.Discard()
	}

	h := &Harness{
		t:       t,
		App:     tessel.New(o.config),
		Backend: backend.Memory(o.width, o.height),
		timeout: o.timeout,
		done:    make(chan error, 1),
	}
	v := build(h.App)
	go func() { h.done <- h.App.Run(context.Background(), h.Backend, v) }()
	t.Cleanup(func() { _ = h.Quit() })
	return h
}

// Send delivers events in order.
func (h *Harness) Send(evs ...event.Event) {
	h.t.Helper()
	if !h.Backend.Send(evs...) {
		h.t.Fatal("vtest: app has stopped")
	}
}

// Press sends key-down events for bindings such as "tab", "ctrl+c" or "q".
func (h *Harness) Press(bindings ...string) {
	h.t.Helper()
	evs := make([]event.Event, 0, len(bindings))
	for _, b := range bindings {
		k, ok := event.ParseKey(b)
		if !ok {
			h.t.Fatalf("vtest: unknown key %q", b)
		}
		evs = append(evs, k)
	}
	h.Send(evs...)
}

// Type sends one key per rune of s.
func (h *Harness) Type(s string) {
	h.t.Helper()
	evs := make([]event.Event, 0, len(s))
	for _, r := range s {
		evs = append(evs, event.Char(r))
	}
	h.Send(evs...)
}

// Paste sends s as one paste event.
func (h *Harness) Paste(s string) {
	h.t.Helper()
	h.Send(event.Paste{Text: s})
}

// Click presses and releases the left button at (x, y).
func (h *Harness) Click(x, y int) {
	h.t.Helper()
	h.Send(
		event.Mouse{X: x, Y: y, Button: event.ButtonLeft, Action: event.MousePress},
		event.Mouse{X: x, Y: y, Button: event.ButtonLeft, Action: event.MouseRelease},
	)
}

// Resize changes the screen size.
func (h *Harness) Resize(width, height int) {
	h.t.Helper()
	h.Backend.Resize(width, height)
}

// Frame returns the last drawn frame as plain text.
func (h *Harness) Frame() string { return h.Backend.Text() }

// Lines returns the last drawn frame split into rows.
func (h *Harness) Lines() []string { return h.Backend.Lines() }

// WaitFor waits until a drawn frame satisfies match and returns it.
func (h *Harness) WaitFor(match func(frame string) bool) string {
	h.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	text, err := h.Backend.WaitFor(ctx, match)
	if err != nil {
		h.t.Fatalf("vtest: %v; last frame:\n%s", err, text)
	}
	return text
}

// WaitText waits until a frame contains want.
func (h *Harness) WaitText(want string) string {
	h.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	text, err := h.Backend.WaitFor(ctx, func(s string) bool { return strings.Contains(s, want) })
	if err != nil {
		h.t.Fatalf("vtest: frame never contained %q (%v); last frame:\n%s", want, err, text)
	}
	return text
}

// WaitGone waits until a frame no longer contains text.
func (h *Harness) WaitGone(text string) string {
	h.t.Helper()
	return h.WaitFor(func(s string) bool { return !strings.Contains(s, text) })
}

// Inspect runs fn with the tree on the UI goroutine.
func (h *Harness) Inspect(fn func(tree *dom.Tree)) {
	h.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	if err := h.App.Inspect(ctx, fn); err != nil {
		h.t.Fatalf("vtest: inspect: %v", err)
	}
}

// Focused returns the NodeID of the focused node, or "".
func (h *Harness) Focused() dom.NodeID {
	h.t.Helper()
	var id dom.NodeID
	h.Inspect(func(tree *dom.Tree) { id = tree.Focus().FocusedID() })
	return id
}

// Done returns Run's result once the app has stopped on its own, for
// example after a view called Quit.
func (h *Harness) Done() error {
	h.t.Helper()
	if h.stopped {
		return h.err
	}
	select {
	case h.err = <-h.done:
		h.stopped = true
		return h.err
	case <-time.After(h.timeout):
		h.t.Fatal("vtest: app did not stop")
		return nil
	}
}

// Quit stops the app and returns Run's result.
func (h *Harness) Quit() error {
	if h.stopped {
		return h.err
	}
	h.App.Quit()
	select {
	case h.err = <-h.done:
		h.stopped = true
	case <-time.After(h.timeout):
		h.t.Error("vtest: app did not stop after Quit")
	}
	return h.err
}

// ExpectContains asserts that frame contains expected.
func ExpectContains(t testing.TB, frame, expected string) {
	t.Helper()
	frame = ansi.Strip(frame)
	if !strings.Contains(frame, expected) {
		t.Errorf("expected frame to contain %q, got:\n%s", expected, truncate(frame, 500))
	}
}

// ExpectNotContains asserts that frame does not contain unexpected.
func ExpectNotContains(t testing.TB, frame, unexpected string) {
	t.Helper()
	frame = ansi.Strip(frame)
	if strings.Contains(frame, unexpected) {
		t.Errorf("expected frame to NOT contain %q, got:\n%s", unexpected, truncate(frame, 500))
	}
}

// ExpectLine asserts that row n of frame, with trailing spaces trimmed,
// equals want.
func ExpectLine(t testing.TB, frame string, n int, want string) {
	t.Helper()
	lines := strings.Split(ansi.Strip(frame), "\n")
	if n < 0 || n >= len(lines) {
		t.Errorf("frame has %d lines, no line %d", len(lines), n)
		return
	}
	if got := strings.TrimRight(lines[n], " "); got != want {
		t.Errorf("line %d = %q, want %q", n, got, want)
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
