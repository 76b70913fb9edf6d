// Package backend connects an app to a display.
//
// A Backend reports its size, draws whole frames and delivers input as
// event.Event values. Terminal drives a real terminal through bubbletea.
// Memory keeps frames in memory and replays scripted input, which is how
// apps are tested.
package backend

import (
	"github.com/vango-dev/tessel/internal/errors"
	"github.com/vango-dev/tessel/pkg/event"
)

// Backend is a display plus its input source.
type Backend interface {
	// Size returns the current display size in cells.
	Size() (width, height int)

	// Draw replaces the displayed frame. frame holds one line per row and
	// may contain ANSI styling.
	Draw(frame string)

	// Events delivers input. The channel is closed when the backend stops.
	Events() <-chan event.Event

	// Close stops the backend and releases the display.
	Close() error
}

// eventBuffer is the capacity of the event channels of both backends.
const eventBuffer = 256

// ErrClosed is returned when waiting on a backend that has been closed.
var ErrClosed = errors.New("T040").WithDetail("backend closed")
