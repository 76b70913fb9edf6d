package tessel

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/tessel/internal/config"
	"github.com/vango-dev/tessel/internal/logging"
	"github.com/vango-dev/tessel/pkg/dispatch"
	"github.com/vango-dev/tessel/pkg/telemetry"
)

// =============================================================================
// Configuration Types
// =============================================================================

// Config is the runtime configuration of an App. The zero value is usable:
// zero fields take the defaults listed on each field.
type Config struct {
	// Logger is the structured logger for the app.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// MaxFPS caps the redraw rate. Invalidations arriving faster are
	// coalesced into the next frame slot. Negative disables pacing.
	// Default: 60.
	MaxFPS int

	// ClickTolerance is the maximum pointer travel, in cells, between press
	// and release that still counts as a click. Negative means the pointer
	// must not move at all.
	// Default: 1.
	ClickTolerance int

	// DisableTabNavigation turns off Tab / Shift-Tab focus traversal.
	DisableTabNavigation bool

	// Strict turns structural misuse, such as focusing a stale key, into
	// panics. Use it in tests and debug builds.
	Strict bool

	// ResizeDebounce is the quiet period after a terminal resize before the
	// tree is laid out again. Negative relayouts on every resize event.
	// Default: 50ms.
	ResizeDebounce time.Duration

	// FlushPasses bounds how many effect passes run between two frames.
	// Effects still pending afterwards run on the next loop iteration.
	// Default: 16.
	FlushPasses int

	// Metrics records dispatch and frame metrics when set.
	Metrics *telemetry.Metrics

	// TracerProvider enables a span per dispatched event when set. Pointer
	// motion is not traced.
	TracerProvider trace.TracerProvider

	// Middleware wraps every dispatch pass, inside metrics and tracing.
	Middleware []dispatch.Middleware

	// Mouse enables mouse reporting in terminal backends.
	// Only read by NewTerminal.
	Mouse bool

	// AltScreen runs terminal backends in the alternate screen.
	// Only read by NewTerminal.
	AltScreen bool

	// DevtoolsAddr is where the devtools server listens. Empty disables it.
	// The app itself does not start devtools; see package devtools.
	DevtoolsAddr string
}

const (
	// DefaultMaxFPS is the default redraw cap.
	DefaultMaxFPS = config.DefaultMaxFPS

	// DefaultResizeDebounce is the default resize quiet period.
	DefaultResizeDebounce = config.DefaultResizeDebounceMs * time.Millisecond

	// DefaultFlushPasses is the default number of effect passes per frame.
	DefaultFlushPasses = 16
)

// DefaultConfig returns a Config with every default spelled out and the
// terminal features on.
func DefaultConfig() Config {
	return Config{
		MaxFPS:         DefaultMaxFPS,
		ClickTolerance: dispatch.DefaultClickTolerance,
		ResizeDebounce: DefaultResizeDebounce,
		FlushPasses:    DefaultFlushPasses,
		Mouse:          true,
		AltScreen:      true,
	}
}

// withDefaults fills zero fields.
func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	switch {
	case c.MaxFPS == 0:
		c.MaxFPS = DefaultMaxFPS
	case c.MaxFPS < 0:
		c.MaxFPS = 0
	}
	switch {
	case c.ClickTolerance == 0:
		c.ClickTolerance = dispatch.DefaultClickTolerance
	case c.ClickTolerance < 0:
		c.ClickTolerance = 0
	}
	switch {
	case c.ResizeDebounce == 0:
		c.ResizeDebounce = DefaultResizeDebounce
	case c.ResizeDebounce < 0:
		c.ResizeDebounce = 0
	}
	if c.FlushPasses <= 0 {
		c.FlushPasses = DefaultFlushPasses
	}
	return c
}

// =============================================================================
// File Configuration
// =============================================================================

// ConfigFromFile loads tessel.json from dir and maps it onto a Config. A
// missing file yields the defaults. The logger writes to log.file when set;
// the returned close function closes that file.
func ConfigFromFile(dir string) (Config, func() error, error) {
	fc, err := config.LoadOrDefault(dir)
	if err != nil {
		return Config{}, nil, err
	}

	logger, closeLog, err := logging.New(logging.Options{
		File:  fc.Log.File,
		Level: fc.Log.Level,
	})
	if err != nil {
		return Config{}, nil, err
	}

	cfg := Config{
		Logger:               logger,
		MaxFPS:               fc.MaxFPS,
		ClickTolerance:       fc.ClickTolerance,
		DisableTabNavigation: !fc.TabNavigation,
		Strict:               fc.Strict,
		ResizeDebounce:       time.Duration(fc.ResizeDebounceMs) * time.Millisecond,
		Mouse:                fc.Mouse,
		AltScreen:            fc.AltScreen,
		Metrics:              telemetry.NewMetrics(telemetry.WithNamespace(fc.Metrics.Namespace)),
	}
	if fc.ClickTolerance == 0 {
		cfg.ClickTolerance = -1
	}
	if fc.ResizeDebounceMs == 0 {
		cfg.ResizeDebounce = -1
	}
	if fc.Devtools.Enabled {
		cfg.DevtoolsAddr = fc.Devtools.Addr
	}
	return cfg, closeLog, nil
}
