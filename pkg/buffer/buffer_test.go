package buffer

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vango-dev/tessel/pkg/geom"
)

func TestSetString(t *testing.T) {
	b := New(6, 2)
	n := b.SetString(1, 0, "hello world", Style{})
	if n != 5 {
		t.Errorf("SetString() = %d, want 5", n)
	}
	if got := b.Lines()[0]; got != " hello" {
		t.Errorf("row 0 = %q, want %q", got, " hello")
	}
}

func TestSetString_WideRunes(t *testing.T) {
	b := New(5, 1)
	n := b.SetString(0, 0, "日本語", Style{})
	if n != 4 {
		t.Errorf("SetString() = %d, want 4 (third rune does not fit)", n)
	}
	if c := b.Cell(1, 0); c.Content != "" {
		t.Errorf("continuation cell = %q, want empty", c.Content)
	}
	if got := b.String(); got != "日本" {
		t.Errorf("String() = %q", got)
	}
}

func TestSetString_StripsEscapes(t *testing.T) {
	b := New(10, 1)
	b.SetString(0, 0, "\x1b[31mred\x1b[0m", Style{})
	if got := b.String(); got != "red" {
		t.Errorf("String() = %q, want %q", got, "red")
	}
}

func TestSetStringIn_Clips(t *testing.T) {
	b := New(10, 3)
	area := geom.R(2, 1, 3, 1)
	b.SetStringIn(area, 0, 1, "abcdefgh", Style{})
	b.SetStringIn(area, 2, 2, "zzz", Style{})

	lines := b.Lines()
	if lines[1] != "  cde" {
		t.Errorf("row 1 = %q, want %q", lines[1], "  cde")
	}
	if lines[2] != "" {
		t.Errorf("row 2 should be untouched, got %q", lines[2])
	}
}

func TestFillAndClear(t *testing.T) {
	b := New(4, 2)
	b.Fill(geom.R(1, 0, 2, 2), Cell{Content: "#"})
	if got := b.String(); got != " ##\n ##" {
		t.Errorf("after Fill = %q", got)
	}
	b.Clear(geom.R(0, 0, 4, 1))
	if got := b.String(); got != "\n ##" {
		t.Errorf("after Clear = %q", got)
	}
}

func TestPrint(t *testing.T) {
	b := New(8, 3)
	b.Print(geom.R(2, 1, 4, 2), 1, "hi", Style{})
	if got := b.Lines()[2]; got != "  hi" {
		t.Errorf("row 2 = %q", got)
	}
}

func TestRender_PlainTextSurvives(t *testing.T) {
	b := New(6, 1)
	b.SetString(0, 0, "ok", Style{Bold: true, Fg: "9"})
	b.SetString(3, 0, "go", Style{})

	got := ansi.Strip(b.Render())
	if !strings.HasPrefix(got, "ok") || !strings.Contains(got, "go") {
		t.Errorf("Render() stripped = %q", got)
	}
}

func TestResize(t *testing.T) {
	b := New(2, 2)
	b.SetString(0, 0, "xx", Style{})
	b.Resize(3, 1)
	if b.Width() != 3 || b.Height() != 1 || b.String() != "" {
		t.Errorf("Resize() left %dx%d %q", b.Width(), b.Height(), b.String())
	}
}

func TestStringWidth(t *testing.T) {
	if w := StringWidth("\x1b[1m日本\x1b[0m"); w != 4 {
		t.Errorf("StringWidth() = %d, want 4", w)
	}
}
