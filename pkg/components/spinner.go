package components

import (
	"sync/atomic"
	"time"

	"github.com/vango-dev/tessel/pkg/reactive"
	"github.com/vango-dev/tessel/pkg/view"
)

// DefaultSpinnerFrames is used when Spinner is given no frames.
var DefaultSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// DefaultSpinnerInterval is used when Spinner is given no interval.
const DefaultSpinnerInterval = 100 * time.Millisecond

// activeSpinners counts running ticker goroutines.
var activeSpinners atomic.Int64

// Spinner cycles through frames every interval for as long as it is
// mounted. The ticker runs on its own goroutine and stops on unmount.
func Spinner(frames []string, interval time.Duration, opts ...view.Option) *view.View {
	if len(frames) == 0 {
		frames = DefaultSpinnerFrames
	}
	if interval <= 0 {
		interval = DefaultSpinnerInterval
	}
	return view.Component(func() *view.View {
		idx := reactive.NewSignal(0)
		stop := make(chan struct{})

		activeSpinners.Add(1)
		go func() {
			defer activeSpinners.Add(-1)
			defer reactive.ReleaseGoroutine()
			t := time.NewTicker(interval)
			defer t.Stop()
			for {
				select {
				case <-stop:
					return
				case <-t.C:
					idx.Update(func(i int) int { return (i + 1) % len(frames) })
				}
			}
		}()
		reactive.OnCleanup(func() { close(stop) })

		return view.Dyn(func() *view.View {
			return view.Text(frames[idx.Get()], opts...)
		})
	})
}
