package tessel

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vango-dev/tessel/internal/errors"
	"github.com/vango-dev/tessel/pkg/backend"
	"github.com/vango-dev/tessel/pkg/buffer"
	"github.com/vango-dev/tessel/pkg/dispatch"
	"github.com/vango-dev/tessel/pkg/dom"
	"github.com/vango-dev/tessel/pkg/event"
	"github.com/vango-dev/tessel/pkg/reactive"
	"github.com/vango-dev/tessel/pkg/schedule"
	"github.com/vango-dev/tessel/pkg/telemetry"
	"github.com/vango-dev/tessel/pkg/view"
)

// =============================================================================
// App Type
// =============================================================================

// App is one running UI: a node tree, its reactive root, a dispatcher and
// the loop that ties them to a backend. Apps share no state, so several
// can run side by side.
//
//	app := tessel.New(tessel.DefaultConfig())
//	err := app.Run(ctx, tessel.NewTerminal(cfg), tessel.Col(
//	    tessel.Text("hello"),
//	    components.Button("Quit", app.Quit),
//	))
//
// The tree, focus state and dispatcher belong to the goroutine inside Run.
// Other goroutines reach them through signals, QueueUpdate or Inspect.
type App struct {
	config Config
	logger *slog.Logger

	tree       *dom.Tree
	root       *reactive.Owner
	dispatcher *dispatch.Dispatcher
	sched      *schedule.Scheduler
	pacer      *schedule.Pacer
	resize     *schedule.Debouncer
	buf        *buffer.Buffer

	focusedID *reactive.Signal[dom.NodeID]

	// wake is signalled when effects or queued updates are waiting.
	wake    chan struct{}
	queueMu sync.Mutex
	queue   []func()

	running  atomic.Bool
	stopped  chan struct{}
	quit     chan struct{}
	quitOnce sync.Once

	frameMu    sync.RWMutex
	frame      string
	frames     atomic.Uint64
	hooksMu    sync.Mutex
	hooks      map[uint64]func(Frame)
	nextHookID uint64
}

// Frame is one painted frame, as delivered to OnFrame hooks.
type Frame struct {
	Seq     uint64     `json:"seq"`
	Text    string     `json:"frame"`
	Focused dom.NodeID `json:"focused"`
	Width   int        `json:"width"`
	Height  int        `json:"height"`
}

// New creates an app. It does not touch any display until Run.
func New(cfg Config) *App {
	cfg = cfg.withDefaults()

	a := &App{
		config:  cfg,
		logger:  cfg.Logger,
		sched:   schedule.New(),
		pacer:   schedule.NewPacer(cfg.MaxFPS),
		resize:  schedule.NewDebouncer(cfg.ResizeDebounce),
		buf:     buffer.New(0, 0),
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
		quit:    make(chan struct{}),
		hooks:   make(map[uint64]func(Frame)),
	}

	a.tree = dom.NewTree(
		dom.WithNotifier(a.sched),
		dom.WithLogger(cfg.Logger),
		dom.WithStrict(cfg.Strict),
	)
	a.root = reactive.NewRoot(a.signalWake)
	a.focusedID = reactive.NewSignal[dom.NodeID]("")
	a.tree.Focus().Subscribe(a.focusedID.Set)

	// Metrics and tracing observe the user middleware, not the other way round.
	var mw []dispatch.Middleware
	if cfg.Metrics != nil {
		mw = append(mw, cfg.Metrics.Middleware())
	}
	if cfg.TracerProvider != nil {
		mw = append(mw, telemetry.OpenTelemetry(
			telemetry.WithTracerProvider(cfg.TracerProvider),
			telemetry.WithEventFilter(telemetry.SkipMotion),
		))
	}
	mw = append(mw, cfg.Middleware...)

	a.dispatcher = dispatch.New(a.tree,
		dispatch.WithClickTolerance(cfg.ClickTolerance),
		dispatch.WithTabNavigation(!cfg.DisableTabNavigation),
		dispatch.WithQuit(a.Quit),
		dispatch.WithMiddleware(mw...),
		dispatch.WithLogger(cfg.Logger),
	)
	return a
}

// NewTerminal returns a terminal backend configured from cfg.
func NewTerminal(cfg Config, opts ...backend.TerminalOption) *backend.TerminalBackend {
	base := []backend.TerminalOption{
		backend.WithAltScreen(cfg.AltScreen),
		backend.WithMouse(cfg.Mouse),
	}
	if cfg.Logger != nil {
		base = append(base, backend.WithLogger(cfg.Logger))
	}
	return backend.Terminal(append(base, opts...)...)
}

// =============================================================================
// Accessors
// =============================================================================

// Logger returns the app's logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Tree returns the node tree. Only touch it from the UI goroutine, for
// example inside QueueUpdate or an event handler.
func (a *App) Tree() *dom.Tree { return a.tree }

// Owner returns the app's reactive root.
func (a *App) Owner() *reactive.Owner { return a.root }

// Metrics returns the configured metrics, or nil.
func (a *App) Metrics() *telemetry.Metrics { return a.config.Metrics }

// FocusedID is a signal holding the NodeID of the focused node, or "".
// Views may read it to restyle on focus changes.
func (a *App) FocusedID() *reactive.Signal[dom.NodeID] { return a.focusedID }

// Frame returns the last painted frame. It is safe to call from any
// goroutine.
func (a *App) Frame() string {
	a.frameMu.RLock()
	defer a.frameMu.RUnlock()
	return a.frame
}

// Stats counts invalidations and painted frames.
type Stats struct {
	schedule.Stats
	Frames uint64 `json:"frames"`
}

// Stats returns the app's counters. It is safe to call from any goroutine.
func (a *App) Stats() Stats {
	return Stats{Stats: a.sched.Stats(), Frames: a.frames.Load()}
}

// OnFrame registers fn to be called on the UI goroutine after every
// painted frame. fn must not block. The returned function unregisters it.
func (a *App) OnFrame(fn func(Frame)) (cancel func()) {
	a.hooksMu.Lock()
	defer a.hooksMu.Unlock()
	id := a.nextHookID
	a.nextHookID++
	a.hooks[id] = fn
	return func() {
		a.hooksMu.Lock()
		defer a.hooksMu.Unlock()
		delete(a.hooks, id)
	}
}

// =============================================================================
// Cross-goroutine entry points
// =============================================================================

// ErrNotRunning is returned by Inspect once the app has stopped.
var ErrNotRunning = errors.Newf(errors.CategoryBackend, "app is not running")

func (a *App) signalWake() {
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

// QueueUpdate runs fn on the UI goroutine before the next frame. It never
// blocks and reports false once the app has stopped. Updates queued before
// Run starts run when it does.
func (a *App) QueueUpdate(fn func()) bool {
	select {
	case <-a.stopped:
		return false
	default:
	}
	a.queueMu.Lock()
	a.queue = append(a.queue, fn)
	a.queueMu.Unlock()
	a.signalWake()
	return true
}

// Inspect runs fn with the tree on the UI goroutine and waits for it.
func (a *App) Inspect(ctx context.Context, fn func(tree *dom.Tree)) error {
	done := make(chan struct{})
	if !a.QueueUpdate(func() {
		defer close(done)
		fn(a.tree)
	}) {
		return ErrNotRunning
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-a.stopped:
		return ErrNotRunning
	}
}

// Invalidate requests a redraw.
func (a *App) Invalidate() { a.sched.Invalidate() }

// Quit stops Run. Calling it more than once is harmless.
func (a *App) Quit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// =============================================================================
// Run Loop
// =============================================================================

// Run mounts v, draws it on b and processes input until Quit is called, ctx
// is done or b's event channel closes. On return the view is unmounted,
// every effect is disposed and b is closed. An App runs once.
func (a *App) Run(ctx context.Context, b backend.Backend, v *view.View) (err error) {
	if !a.running.CompareAndSwap(false, true) {
		return errors.Newf(errors.CategoryBackend, "app is already running")
	}
	defer close(a.stopped)
	defer func() {
		if cerr := b.Close(); err == nil {
			err = cerr
		}
	}()

	a.layout(b.Size())

	var mountErr error
	var mounted *view.Mounted
	reactive.WithOwner(a.root, func() {
		mounted, mountErr = view.Mount(a.tree, a.tree.Root(), dom.NodeKey{}, v)
	})
	if mountErr != nil {
		return mountErr
	}
	defer func() {
		mounted.Remove()
		a.root.Dispose()
		a.resize.Stop()
		a.logger.Info("tessel: app stopped", "frames", a.frames.Load())
	}()

	a.logger.Info("tessel: app started", "nodes", a.tree.Len(), "maxFps", a.config.MaxFPS)
	a.sched.Invalidate()

	var pace *time.Timer
	var paceC <-chan time.Time
	defer func() {
		if pace != nil {
			pace.Stop()
		}
	}()

	for {
		a.flush()

		if a.sched.Pending() && paceC == nil {
			if d := a.pacer.Delay(time.Now()); d > 0 {
				pace = time.NewTimer(d)
				paceC = pace.C
			} else {
				a.redraw(b)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.quit:
			return nil
		case ev, ok := <-b.Events():
			if !ok {
				return nil
			}
			a.handle(ev)
		case <-a.wake:
		case <-a.sched.C():
		case <-a.resize.C():
			a.layout(b.Size())
		case <-paceC:
			paceC = nil
			a.redraw(b)
		}
	}
}

func (a *App) handle(ev event.Event) {
	if _, ok := ev.(event.Resize); ok {
		a.resize.Trigger()
		return
	}
	a.dispatcher.Dispatch(ev)
}

// layout resizes the frame buffer and schedules a redraw.
func (a *App) layout(width, height int) {
	a.buf.Resize(width, height)
	a.sched.Invalidate()
}

// flush runs queued updates and then pending effects.
func (a *App) flush() {
	a.queueMu.Lock()
	queue := a.queue
	a.queue = nil
	a.queueMu.Unlock()
	for _, fn := range queue {
		fn()
	}

	if !a.root.HasPendingEffects() {
		return
	}
	passes := a.root.Flush(a.config.FlushPasses)
	if a.root.HasPendingEffects() {
		a.logger.Warn("tessel: effects still pending after flush", "passes", passes)
		a.signalWake()
	}
}

// redraw lays out, paints and draws one frame if one is pending. Rects
// from this layout serve hit-testing until the next frame, so pointer
// events always target what is on screen.
func (a *App) redraw(b backend.Backend) {
	if !a.sched.Take() {
		return
	}
	start := time.Now()

	a.tree.Layout(a.buf.Area())
	a.buf.Reset()
	a.tree.Paint(a.buf)
	text := a.buf.Render()
	b.Draw(text)

	a.pacer.Mark(start)
	a.frameMu.Lock()
	a.frame = text
	a.frameMu.Unlock()
	seq := a.frames.Add(1)

	if m := a.config.Metrics; m != nil {
		m.RecordFrame(time.Since(start), a.tree.Len(), len(a.tree.Focus().Focusables()))
	}

	a.hooksMu.Lock()
	hooks := make([]func(Frame), 0, len(a.hooks))
	for _, fn := range a.hooks {
		hooks = append(hooks, fn)
	}
	a.hooksMu.Unlock()
	if len(hooks) == 0 {
		return
	}
	f := Frame{
		Seq:     seq,
		Text:    text,
		Focused: a.tree.Focus().FocusedID(),
		Width:   a.buf.Width(),
		Height:  a.buf.Height(),
	}
	for _, fn := range hooks {
		fn(f)
	}
}
