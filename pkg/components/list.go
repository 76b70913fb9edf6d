package components

import (
	"slices"

	"github.com/vango-dev/tessel/pkg/event"
	"github.com/vango-dev/tessel/pkg/layout"
	"github.com/vango-dev/tessel/pkg/reactive"
	"github.com/vango-dev/tessel/pkg/view"
)

// ListConfig describes a selectable list.
type ListConfig[T any] struct {
	// Items is re-evaluated whenever a signal it reads changes. Rows are
	// reconciled by Key, so a row whose key persists is not rendered again.
	Items func() []T

	// Key identifies an item. Keys must be unique.
	Key func(T) string

	// Render draws one row. It is re-run for a row when the row's selection
	// state flips.
	Render func(item T, selected bool) *view.View

	// Selected holds the key of the selected item. If nil the list keeps its
	// own.
	Selected *reactive.Signal[string]

	// OnActivate is called with the selected item on enter.
	OnActivate func(T)
}

// List is a focusable column with one row per item. Up and down move the
// selection, home and end jump to the ends, enter activates, and clicking a
// row selects it.
func List[T any](cfg ListConfig[T], opts ...view.Option) *view.View {
	return view.Component(func() *view.View {
		selected := cfg.Selected
		if selected == nil {
			selected = reactive.NewSignal("")
		}

		move := func(step func(idx, n int) int) {
			xs := cfg.Items()
			if len(xs) == 0 {
				return
			}
			cur := slices.IndexFunc(xs, func(x T) bool { return cfg.Key(x) == selected.Peek() })
			next := max(0, min(step(cur, len(xs)), len(xs)-1))
			selected.Set(cfg.Key(xs[next]))
		}

		onKey := func(k event.Key, h *event.Handle) {
			switch {
			case k.Matches("up", "k"):
				move(func(i, n int) int {
					if i < 0 {
						return n - 1
					}
					return i - 1
				})
			case k.Matches("down", "j"):
				move(func(i, _ int) int { return i + 1 })
			case k.Matches("home"):
				move(func(int, int) int { return 0 })
			case k.Matches("end"):
				move(func(_, n int) int { return n - 1 })
			case k.Matches("enter"):
				xs := cfg.Items()
				i := slices.IndexFunc(xs, func(x T) bool { return cfg.Key(x) == selected.Peek() })
				if i < 0 || cfg.OnActivate == nil {
					return
				}
				cfg.OnActivate(xs[i])
			default:
				return
			}
			h.StopPropagation()
		}

		rows := view.Each(cfg.Items, cfg.Key, func(item T) *view.View {
			key := cfg.Key(item)
			return view.Row(
				view.Constraint(layout.Length(1)),
				view.OnClick(func(_ event.Mouse, h *event.Handle) {
					selected.Set(key)
				}),
				view.Dyn(func() *view.View {
					return cfg.Render(item, selected.Get() == key)
				}),
			)
		})

		return view.Col(items(withDefaults([]view.Option{
			view.Name("list"),
			view.Focusable(),
			view.OnKeyDown(onKey),
		}, opts), rows)...)
	})
}
