package components

import (
	"strconv"

	"github.com/vango-dev/tessel/pkg/buffer"
	"github.com/vango-dev/tessel/pkg/dom"
	"github.com/vango-dev/tessel/pkg/event"
	"github.com/vango-dev/tessel/pkg/geom"
	"github.com/vango-dev/tessel/pkg/layout"
	"github.com/vango-dev/tessel/pkg/reactive"
	"github.com/vango-dev/tessel/pkg/view"
)

const tabSeparator = "│"

// Tabs is a one-row header of labels above the body render(selected). The
// header is focusable; left and right move between tabs and clicking a
// label selects it. Switching tabs unmounts the old body, disposing
// whatever it set up.
func Tabs(labels []string, selected *reactive.Signal[int], render func(int) *view.View, opts ...view.Option) *view.View {
	return view.Component(func() *view.View {
		h := &tabHeader{labels: labels}

		shift := func(d int) {
			selected.Update(func(i int) int {
				return max(0, min(i+d, len(labels)-1))
			})
		}
		headerOpts := []view.Option{
			view.Name("tabs"),
			view.Focusable(),
			view.Constraint(layout.Length(1)),
			view.OnFocus(func() { h.focused = true }),
			view.OnBlur(func() { h.focused = false }),
			view.OnKeyDown(func(k event.Key, eh *event.Handle) {
				switch {
				case k.Matches("left"):
					shift(-1)
				case k.Matches("right"):
					shift(1)
				default:
					return
				}
				eh.StopPropagation()
			}),
			view.OnClick(func(m event.Mouse, eh *event.Handle) {
				if i := h.at(m.X); i >= 0 {
					selected.Set(i)
					eh.StopPropagation()
				}
			}),
		}

		header := view.Dyn(func() *view.View {
			h.selected = selected.Get()
			return view.Widget(dom.PainterFunc(h.paint), headerOpts...)
		})

		// A single-item keyed list remounts the body whenever the selection
		// changes, even if both tabs render views of the same shape.
		body := view.Each(func() []int {
			i := selected.Get()
			if i < 0 || i >= len(labels) {
				return nil
			}
			return []int{i}
		}, strconv.Itoa, render)

		return view.Col(items(opts, header, body)...)
	})
}

type tabHeader struct {
	labels   []string
	selected int
	focused  bool

	// spans holds the absolute [start, end) columns of each label as of
	// the last paint.
	spans [][2]int
}

func (h *tabHeader) paint(buf *buffer.Buffer, area geom.Rect) {
	h.spans = h.spans[:0]
	x := area.X
	for i, label := range h.labels {
		if i > 0 {
			x += buf.SetStringIn(area, x, area.Y, tabSeparator, buffer.Style{Faint: true})
		}
		style := buffer.Style{}
		if i == h.selected {
			style = LabelStyle
			if h.focused {
				style = FocusStyle
			}
		}
		start := x
		x += buf.SetStringIn(area, x, area.Y, " "+label+" ", style)
		h.spans = append(h.spans, [2]int{start, x})
	}
}

// at returns the tab under column x, or -1.
func (h *tabHeader) at(x int) int {
	for i, s := range h.spans {
		if x >= s[0] && x < s[1] {
			return i
		}
	}
	return -1
}
