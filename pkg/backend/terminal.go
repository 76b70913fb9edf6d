package backend

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vango-dev/tessel/internal/errors"
	"github.com/vango-dev/tessel/pkg/event"
)

// TerminalOption configures Terminal.
type TerminalOption func(*terminalConfig)

type terminalConfig struct {
	altScreen bool
	mouse     bool
	input     io.Reader
	output    io.Writer
	ctx       context.Context
	logger    *slog.Logger
}

// WithAltScreen runs in the alternate screen buffer. Default: true.
func WithAltScreen(enabled bool) TerminalOption {
	return func(c *terminalConfig) { c.altScreen = enabled }
}

// WithMouse enables mouse reporting with cell motion. Default: true.
func WithMouse(enabled bool) TerminalOption {
	return func(c *terminalConfig) { c.mouse = enabled }
}

// WithInput reads input from r instead of stdin.
func WithInput(r io.Reader) TerminalOption {
	return func(c *terminalConfig) { c.input = r }
}

// WithOutput writes frames to w instead of stdout.
func WithOutput(w io.Writer) TerminalOption {
	return func(c *terminalConfig) { c.output = w }
}

// WithContext stops the terminal when ctx is done.
func WithContext(ctx context.Context) TerminalOption {
	return func(c *terminalConfig) { c.ctx = ctx }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) TerminalOption {
	return func(c *terminalConfig) { c.logger = l }
}

// TerminalBackend drives a terminal through a bubbletea program. The
// program owns raw mode, the alternate screen and input decoding.
//
// Neither side ever waits on the other: Draw stores the frame in a slot and
// pokes a separate goroutine that asks the program to re-render, and the
// program drops pointer motion instead of blocking when the event buffer is
// full.
type TerminalBackend struct {
	program *tea.Program
	events  chan event.Event
	logger  *slog.Logger

	width  atomic.Int64
	height atomic.Int64

	frameMu sync.Mutex
	frame   string
	redraw  chan struct{}
	dropped atomic.Uint64

	closing   chan struct{}
	done      chan struct{}
	err       error
	closeOnce sync.Once
}

var _ Backend = (*TerminalBackend)(nil)

// redrawMsg asks the program to render the latest frame.
type redrawMsg struct{}

// Terminal starts a bubbletea program and returns its backend.
func Terminal(opts ...TerminalOption) *TerminalBackend {
	cfg := terminalConfig{altScreen: true, mouse: true, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	t := newTerminal(cfg.logger)

	var popts []tea.ProgramOption
	if cfg.altScreen {
		popts = append(popts, tea.WithAltScreen())
	}
	if cfg.mouse {
		popts = append(popts, tea.WithMouseCellMotion())
	}
	if cfg.input != nil {
		popts = append(popts, tea.WithInput(cfg.input))
	}
	if cfg.output != nil {
		popts = append(popts, tea.WithOutput(cfg.output))
	}
	if cfg.ctx != nil {
		popts = append(popts, tea.WithContext(cfg.ctx))
	}
	// Ctrl-C is an ordinary key event routed through the tree.
	popts = append(popts, tea.WithoutSignalHandler())

	t.program = tea.NewProgram(&model{backend: t}, popts...)
	go t.run()
	go t.pump()
	return t
}

func newTerminal(logger *slog.Logger) *TerminalBackend {
	t := &TerminalBackend{
		events:  make(chan event.Event, eventBuffer),
		logger:  logger,
		redraw:  make(chan struct{}, 1),
		closing: make(chan struct{}),
		done:    make(chan struct{}),
	}
	t.width.Store(80)
	t.height.Store(24)
	return t
}

func (t *TerminalBackend) run() {
	defer close(t.events)
	defer close(t.done)

	if _, err := t.program.Run(); err != nil && !stderrors.Is(err, tea.ErrProgramKilled) {
		t.logger.Error("tessel: terminal stopped", "error", err)
		t.err = errors.New("T040").Wrap(err)
	}
}

// pump turns frame notifications into redraw messages for the program.
func (t *TerminalBackend) pump() {
	for {
		select {
		case <-t.redraw:
			t.program.Send(redrawMsg{})
		case <-t.closing:
			return
		case <-t.done:
			return
		}
	}
}

// Size implements Backend.
func (t *TerminalBackend) Size() (int, int) {
	return int(t.width.Load()), int(t.height.Load())
}

// Draw implements Backend. It never blocks; frames drawn faster than the
// terminal renders them collapse into the latest one.
func (t *TerminalBackend) Draw(frame string) {
	t.frameMu.Lock()
	t.frame = frame
	t.frameMu.Unlock()
	select {
	case t.redraw <- struct{}{}:
	default:
	}
}

func (t *TerminalBackend) latest() string {
	t.frameMu.Lock()
	defer t.frameMu.Unlock()
	return t.frame
}

// Events implements Backend.
func (t *TerminalBackend) Events() <-chan event.Event {
	return t.events
}

// Dropped counts pointer motion events discarded because the event buffer
// was full.
func (t *TerminalBackend) Dropped() uint64 {
	return t.dropped.Load()
}

// Close implements Backend. It restores the terminal and returns the
// error the program stopped with, if any.
func (t *TerminalBackend) Close() error {
	t.closeOnce.Do(func() {
		close(t.closing)
		t.program.Quit()
	})
	<-t.done
	return t.err
}

// Done is closed when the program has stopped.
func (t *TerminalBackend) Done() <-chan struct{} {
	return t.done
}

// emit hands ev to the app. Motion is dropped when the buffer is full;
// other events wait for room until the backend closes.
func (t *TerminalBackend) emit(ev event.Event) {
	if m, ok := ev.(event.Mouse); ok && m.Action == event.MouseMotion {
		select {
		case t.events <- ev:
		default:
			t.dropped.Add(1)
		}
		return
	}
	select {
	case t.events <- ev:
	case <-t.closing:
	case <-t.done:
	}
}

// model adapts the backend to tea.Model.
type model struct {
	backend *TerminalBackend
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.backend.width.Store(int64(msg.Width))
		m.backend.height.Store(int64(msg.Height))
		m.backend.emit(event.Resize{Width: msg.Width, Height: msg.Height})
	case tea.KeyMsg:
		if ev, ok := convertKey(msg); ok {
			m.backend.emit(ev)
		}
	case tea.MouseMsg:
		if ev, ok := convertMouse(msg); ok {
			m.backend.emit(ev)
		}
	}
	return m, nil
}

func (m *model) View() string { return m.backend.latest() }
