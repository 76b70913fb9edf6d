package backend

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"

	"github.com/vango-dev/tessel/pkg/event"
)

// MemoryBackend is an in-memory Backend. Input is scripted with Send and
// drawn frames are kept for inspection. It is safe for concurrent use.
type MemoryBackend struct {
	mu      sync.Mutex
	width   int
	height  int
	frame   string
	frames  int
	changed chan struct{}
	closed  bool

	// sendMu orders Send against Close so nothing is sent on a closed
	// channel. Draw does not take it, so a full event buffer never blocks
	// drawing.
	sendMu sync.Mutex
	events chan event.Event
}

var _ Backend = (*MemoryBackend)(nil)

// Memory returns a width x height in-memory backend.
func Memory(width, height int) *MemoryBackend {
	return &MemoryBackend{
		width:   width,
		height:  height,
		changed: make(chan struct{}),
		events:  make(chan event.Event, eventBuffer),
	}
}

// Size implements Backend.
func (m *MemoryBackend) Size() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

// Draw implements Backend.
func (m *MemoryBackend) Draw(frame string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.frame = frame
	m.frames++
	close(m.changed)
	m.changed = make(chan struct{})
}

// Events implements Backend.
func (m *MemoryBackend) Events() <-chan event.Event {
	return m.events
}

// Close implements Backend. It closes the event channel, which ends a
// running app.
func (m *MemoryBackend) Close() error {
	m.sendMu.Lock()
	defer m.sendMu.Unlock()

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	close(m.changed)
	m.changed = make(chan struct{})
	m.mu.Unlock()

	close(m.events)
	return nil
}

// Send queues scripted input. It returns false once the backend is closed.
func (m *MemoryBackend) Send(evs ...event.Event) bool {
	m.sendMu.Lock()
	defer m.sendMu.Unlock()
	if m.isClosed() {
		return false
	}
	for _, ev := range evs {
		m.events <- ev
	}
	return true
}

func (m *MemoryBackend) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Resize changes the size and queues the matching Resize event.
func (m *MemoryBackend) Resize(width, height int) {
	m.mu.Lock()
	m.width, m.height = width, height
	m.mu.Unlock()
	m.Send(event.Resize{Width: width, Height: height})
}

// Frame returns the last drawn frame, styling included.
func (m *MemoryBackend) Frame() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frame
}

// Frames returns how many frames have been drawn.
func (m *MemoryBackend) Frames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames
}

// Lines returns the last frame with styling stripped, one string per row.
func (m *MemoryBackend) Lines() []string {
	return strings.Split(ansi.Strip(m.Frame()), "\n")
}

// Text returns the last frame with styling stripped.
func (m *MemoryBackend) Text() string {
	return ansi.Strip(m.Frame())
}

// WaitFor blocks until a drawn frame satisfies match, the backend closes or
// ctx is done. match receives the frame with styling stripped. The current
// frame is checked first. A closed backend returns ErrClosed.
func (m *MemoryBackend) WaitFor(ctx context.Context, match func(text string) bool) (string, error) {
	for {
		m.mu.Lock()
		text := ansi.Strip(m.frame)
		changed := m.changed
		closed := m.closed
		m.mu.Unlock()

		if match(text) {
			return text, nil
		}
		if closed {
			return text, ErrClosed
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return text, ctx.Err()
		}
	}
}
