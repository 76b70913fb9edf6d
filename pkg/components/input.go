package components

import (
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vango-dev/tessel/pkg/buffer"
	"github.com/vango-dev/tessel/pkg/dom"
	"github.com/vango-dev/tessel/pkg/event"
	"github.com/vango-dev/tessel/pkg/geom"
	"github.com/vango-dev/tessel/pkg/reactive"
	"github.com/vango-dev/tessel/pkg/view"
)

// Input is a single-line text field bound to value. Printable keys insert
// at the cursor; backspace, delete, arrows, home and end edit and move as
// usual, and enter calls onSubmit with the current text. Pasted newlines
// are dropped. Setting value from outside moves the cursor to the end.
//
// The field scrolls horizontally to keep the cursor in view. While it has
// focus the cursor cell is drawn reversed.
func Input(value *reactive.Signal[string], onSubmit func(string), opts ...view.Option) *view.View {
	return view.Component(func() *view.View {
		cursor := reactive.NewSignal(len([]rune(value.Peek())))
		focused := reactive.NewSignal(false)
		var own string

		// edit applies fn to the text and cursor. Cursor positions are in runes.
		edit := func(fn func(rs []rune, cur int) ([]rune, int)) {
			rs := []rune(value.Peek())
			cur := min(cursor.Peek(), len(rs))
			rs, cur = fn(rs, cur)
			cur = max(0, min(cur, len(rs)))
			own = string(rs)
			reactive.Batch(func() {
				value.Set(own)
				cursor.Set(cur)
			})
		}

		onKey := func(k event.Key, h *event.Handle) {
			switch {
			case k.Code == event.KeyRune && k.Mods&^event.ModShift == 0 && k.Rune >= ' ':
				edit(func(rs []rune, cur int) ([]rune, int) {
					return slices.Insert(rs, cur, k.Rune), cur + 1
				})
			case k.Matches("backspace"):
				edit(func(rs []rune, cur int) ([]rune, int) {
					if cur == 0 {
						return rs, cur
					}
					return slices.Delete(rs, cur-1, cur), cur - 1
				})
			case k.Matches("delete"):
				edit(func(rs []rune, cur int) ([]rune, int) {
					if cur >= len(rs) {
						return rs, cur
					}
					return slices.Delete(rs, cur, cur+1), cur
				})
			case k.Matches("left"):
				edit(func(rs []rune, cur int) ([]rune, int) { return rs, cur - 1 })
			case k.Matches("right"):
				edit(func(rs []rune, cur int) ([]rune, int) { return rs, cur + 1 })
			case k.Matches("home", "ctrl+a"):
				edit(func(rs []rune, _ int) ([]rune, int) { return rs, 0 })
			case k.Matches("end", "ctrl+e"):
				edit(func(rs []rune, _ int) ([]rune, int) { return rs, len(rs) })
			case k.Matches("enter"):
				if onSubmit != nil {
					onSubmit(value.Peek())
				}
			default:
				return
			}
			h.StopPropagation()
		}

		onPaste := func(p event.Paste, h *event.Handle) {
			h.StopPropagation()
			text := strings.NewReplacer("\r\n", "", "\n", "", "\r", "").Replace(p.Text)
			edit(func(rs []rune, cur int) ([]rune, int) {
				ins := []rune(text)
				return slices.Insert(rs, cur, ins...), cur + len(ins)
			})
		}

		// own is the last text this field wrote. Any other value came from
		// outside and moves the cursor to the end.
		own = value.Peek()
		reactive.CreateEffect(func() reactive.Cleanup {
			if v := value.Get(); v != own {
				own = v
				cursor.Set(len([]rune(v)))
			}
			return nil
		})

		options := withDefaults([]view.Option{
			view.Name("input"),
			view.Focusable(),
			view.OnFocus(func() { focused.Set(true) }),
			view.OnBlur(func() { focused.Set(false) }),
			view.OnKeyDown(onKey),
			view.OnPaste(onPaste),
		}, opts)

		return view.Dyn(func() *view.View {
			p := &fieldPainter{
				text:    []rune(value.Get()),
				cursor:  cursor.Get(),
				focused: focused.Get(),
			}
			return view.Widget(p, options...)
		})
	})
}

type fieldPainter struct {
	text    []rune
	cursor  int
	focused bool
}

// offset returns the first rune shown so that the cursor cell fits in
// width columns.
func (p *fieldPainter) offset(width int) int {
	start := 0
	used := 1 // the cursor cell
	for i := p.cursor - 1; i >= 0; i-- {
		w := runewidth.RuneWidth(p.text[i])
		if used+w > width {
			start = i + 1
			break
		}
		used += w
	}
	return start
}

func (p *fieldPainter) Paint(buf *buffer.Buffer, area geom.Rect) {
	if area.IsEmpty() {
		return
	}
	cur := min(p.cursor, len(p.text))
	x := area.X
	y := area.Y
	for i := p.offset(area.Width); i <= len(p.text); i++ {
		if x >= area.Right() {
			return
		}
		r := ' '
		if i < len(p.text) {
			r = p.text[i]
		}
		style := buffer.Style{}
		if p.focused && i == cur {
			style.Reverse = true
		}
		if i == len(p.text) && style == (buffer.Style{}) {
			return
		}
		n := buf.SetStringIn(area, x, y, string(r), style)
		if n == 0 {
			return
		}
		x += n
	}
}

var _ dom.Painter = (*fieldPainter)(nil)
