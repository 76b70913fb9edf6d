package components

import (
	"github.com/vango-dev/tessel/pkg/event"
	"github.com/vango-dev/tessel/pkg/reactive"
	"github.com/vango-dev/tessel/pkg/view"
)

// Popup floats content in a width x height box centered over its parent
// while open is true. The box takes focus when it opens and esc closes it.
// Pass view.ZIndex to stack several popups; the default is 1.
func Popup(open *reactive.Signal[bool], content *view.View, width, height int, opts ...view.Option) *view.View {
	box := view.Overlay(items(withDefaults([]view.Option{
		view.Name("popup"),
		view.Size(width, height),
		view.ZIndex(1),
		view.AutoFocus(),
		view.OnKeyDown(func(k event.Key, h *event.Handle) {
			if k.Matches("esc") {
				h.StopPropagation()
				open.Set(false)
			}
		}),
	}, opts), content)...)
	return view.Show(open.Get, box, nil)
}
