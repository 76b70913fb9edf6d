// Package buffer is the cell grid that paint callbacks draw into.
//
// A Buffer is a plain width x height array of cells. Painters receive it
// along with the rect they own; nothing stops them drawing outside that
// rect, but the helpers here clip to it.
package buffer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/vango-dev/tessel/pkg/geom"
)

// Style is the visual attributes of a cell. It is comparable so runs of
// equal style can be merged when rendering.
type Style struct {
	Fg        lipgloss.Color
	Bg        lipgloss.Color
	Bold      bool
	Italic    bool
	Underline bool
	Reverse   bool
	Faint     bool
}

// Lipgloss converts s into a lipgloss style.
func (s Style) Lipgloss() lipgloss.Style {
	ls := lipgloss.NewStyle().
		Bold(s.Bold).
		Italic(s.Italic).
		Underline(s.Underline).
		Reverse(s.Reverse).
		Faint(s.Faint)
	if s.Fg != "" {
		ls = ls.Foreground(s.Fg)
	}
	if s.Bg != "" {
		ls = ls.Background(s.Bg)
	}
	return ls
}

// Cell is one grid position. A wide rune occupies its cell and marks the
// next one as a continuation with empty Content.
type Cell struct {
	Content string
	Style   Style
}

var blank = Cell{Content: " "}

// Buffer is a grid of cells.
type Buffer struct {
	width  int
	height int
	cells  []Cell
}

// New creates a blank buffer.
func New(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Width returns the number of columns.
func (b *Buffer) Width() int { return b.width }

// Height returns the number of rows.
func (b *Buffer) Height() int { return b.height }

// Area returns the rect covering the whole buffer.
func (b *Buffer) Area() geom.Rect {
	return geom.Rect{Width: b.width, Height: b.height}
}

// Resize changes the dimensions and clears the buffer.
func (b *Buffer) Resize(width, height int) {
	b.width = max(width, 0)
	b.height = max(height, 0)
	b.cells = make([]Cell, b.width*b.height)
	b.Reset()
}

// Reset blanks every cell.
func (b *Buffer) Reset() {
	for i := range b.cells {
		b.cells[i] = blank
	}
}

func (b *Buffer) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return 0, false
	}
	return y*b.width + x, true
}

// Cell returns the cell at (x, y). Out-of-range positions read as blank.
func (b *Buffer) Cell(x, y int) Cell {
	i, ok := b.index(x, y)
	if !ok {
		return blank
	}
	return b.cells[i]
}

// SetCell writes a single cell. Out-of-range writes are ignored.
func (b *Buffer) SetCell(x, y int, c Cell) {
	if i, ok := b.index(x, y); ok {
		b.cells[i] = c
	}
}

// Fill sets every cell of area to c.
func (b *Buffer) Fill(area geom.Rect, c Cell) {
	area = area.Intersect(b.Area())
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			b.cells[y*b.width+x] = c
		}
	}
}

// Clear blanks area.
func (b *Buffer) Clear(area geom.Rect) {
	b.Fill(area, blank)
}

// SetString writes s starting at (x, y) on one row, clipped to the buffer.
// Escape sequences in s are stripped. It returns the number of columns used.
func (b *Buffer) SetString(x, y int, s string, style Style) int {
	return b.SetStringIn(b.Area(), x, y, s, style)
}

// SetStringIn is SetString clipped to area.
func (b *Buffer) SetStringIn(area geom.Rect, x, y int, s string, style Style) int {
	area = area.Intersect(b.Area())
	if y < area.Y || y >= area.Bottom() {
		return 0
	}
	s = ansi.Strip(s)

	col := x
	for _, r := range s {
		if r == '\n' || r == '\r' {
			break
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > area.Right() {
			break
		}
		if col >= area.X {
			b.cells[y*b.width+col] = Cell{Content: string(r), Style: style}
			for i := 1; i < w; i++ {
				b.cells[y*b.width+col+i] = Cell{Style: style}
			}
		}
		col += w
	}
	return col - x
}

// Print writes s on row line of area, relative to its top-left corner.
func (b *Buffer) Print(area geom.Rect, line int, s string, style Style) int {
	return b.SetStringIn(area, area.X, area.Y+line, s, style)
}

// Lines returns the plain text of each row with trailing spaces removed.
func (b *Buffer) Lines() []string {
	lines := make([]string, b.height)
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		sb.Reset()
		for x := 0; x < b.width; x++ {
			sb.WriteString(b.cells[y*b.width+x].Content)
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	return lines
}

// String returns the plain text of the buffer.
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}

// Render returns the buffer as styled terminal text. Consecutive cells of
// the same style are rendered as one run.
func (b *Buffer) Render() string {
	var out strings.Builder
	var run strings.Builder
	for y := 0; y < b.height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		var current Style
		run.Reset()
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current == (Style{}) {
				out.WriteString(run.String())
			} else {
				out.WriteString(current.Lipgloss().Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			if c.Style != current {
				flush()
				current = c.Style
			}
			run.WriteString(c.Content)
		}
		flush()
	}
	return out.String()
}

// StringWidth returns the display width of s in cells, ignoring escape codes.
func StringWidth(s string) int {
	return ansi.StringWidth(s)
}
