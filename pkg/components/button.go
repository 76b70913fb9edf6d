package components

import (
	"github.com/vango-dev/tessel/pkg/buffer"
	"github.com/vango-dev/tessel/pkg/dom"
	"github.com/vango-dev/tessel/pkg/event"
	"github.com/vango-dev/tessel/pkg/geom"
	"github.com/vango-dev/tessel/pkg/view"
)

// Button is a focusable "[ label ]" that calls onPress when clicked or when
// enter or space is pressed while it has focus.
func Button(label string, onPress func(), opts ...view.Option) *view.View {
	return view.Component(func() *view.View {
		// Focus transitions invalidate the tree, so a plain bool is enough
		// for the painter to pick it up on the next frame.
		focused := false
		press := func(h *event.Handle) {
			h.StopPropagation()
			if onPress != nil {
				onPress()
			}
		}

		text := "[ " + label + " ]"
		paint := func(buf *buffer.Buffer, area geom.Rect) {
			style := LabelStyle
			if focused {
				style = FocusStyle
			}
			x := area.X
			if w := buffer.StringWidth(text); w < area.Width {
				x += (area.Width - w) / 2
			}
			buf.SetStringIn(area, x, area.Y+area.Height/2, text, style)
		}

		return view.Widget(dom.PainterFunc(paint), withDefaults([]view.Option{
			view.Name("button"),
			view.Focusable(),
			view.OnFocus(func() { focused = true }),
			view.OnBlur(func() { focused = false }),
			view.OnKeyDown(func(k event.Key, h *event.Handle) {
				if k.Matches("enter", "space") {
					press(h)
				}
			}),
			view.OnClick(func(_ event.Mouse, h *event.Handle) { press(h) }),
		}, opts)...)
	})
}
