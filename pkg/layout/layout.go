// Package layout resolves size constraints into concrete rectangles.
//
// Nodes only carry Constraints; a Split call per container turns them into
// rects once per frame. The algorithm is intentionally small: fixed sizes
// first, then flexible slots share what is left.
package layout

import (
	"fmt"

	"github.com/vango-dev/tessel/pkg/geom"
)

// Axis is the direction children are stacked in.
type Axis uint8

const (
	// Vertical stacks children top to bottom.
	Vertical Axis = iota
	// Horizontal stacks children left to right.
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

type kind uint8

const (
	kindFill kind = iota
	kindLength
	kindPercentage
	kindRatio
	kindMin
	kindMax
)

// Constraint is a backend-agnostic size request along the parent's axis.
// The zero Constraint is Fill(1).
type Constraint struct {
	kind kind
	a, b int
}

// Length requests exactly n cells.
func Length(n int) Constraint { return Constraint{kind: kindLength, a: n} }

// Percentage requests p percent of the parent's extent.
func Percentage(p int) Constraint { return Constraint{kind: kindPercentage, a: p} }

// Ratio requests num/den of the parent's extent.
func Ratio(num, den int) Constraint { return Constraint{kind: kindRatio, a: num, b: den} }

// Fill shares leftover space in proportion to weight.
func Fill(weight int) Constraint { return Constraint{kind: kindFill, a: weight} }

// Min takes at least n cells and grows like Fill(1).
func Min(n int) Constraint { return Constraint{kind: kindMin, a: n} }

// Max grows like Fill(1) but never past n cells.
func Max(n int) Constraint { return Constraint{kind: kindMax, a: n} }

// IsZero reports whether c is the default constraint.
func (c Constraint) IsZero() bool { return c == Constraint{} }

func (c Constraint) String() string {
	switch c.kind {
	case kindLength:
		return fmt.Sprintf("Length(%d)", c.a)
	case kindPercentage:
		return fmt.Sprintf("Percentage(%d)", c.a)
	case kindRatio:
		return fmt.Sprintf("Ratio(%d/%d)", c.a, c.b)
	case kindMin:
		return fmt.Sprintf("Min(%d)", c.a)
	case kindMax:
		return fmt.Sprintf("Max(%d)", c.a)
	default:
		return fmt.Sprintf("Fill(%d)", c.weight())
	}
}

func (c Constraint) weight() int {
	switch c.kind {
	case kindFill:
		if c.a <= 0 {
			return 1
		}
		return c.a
	case kindMin, kindMax:
		return 1
	}
	return 0
}

func (c Constraint) fixed(total int) int {
	switch c.kind {
	case kindLength:
		return c.a
	case kindPercentage:
		return total * c.a / 100
	case kindRatio:
		if c.b == 0 {
			return 0
		}
		return total * c.a / c.b
	case kindMin:
		return c.a
	}
	return 0
}

// Sizes resolves constraints against a total extent. The result always sums
// to at most total; rounding leftovers go to the last flexible slot.
func Sizes(total int, cs []Constraint) []int {
	sizes := make([]int, len(cs))
	if total <= 0 || len(cs) == 0 {
		return sizes
	}

	// Fixed portions, clamped to the remaining space in order.
	remaining := total
	for i, c := range cs {
		n := max(c.fixed(total), 0)
		n = min(n, remaining)
		sizes[i] = n
		remaining -= n
	}

	// Flexible portions. Max slots that hit their cap drop out and the
	// space is redistributed among the rest.
	capped := make([]bool, len(cs))
	for remaining > 0 {
		weights := 0
		lastFlex := -1
		for i, c := range cs {
			if w := c.weight(); w > 0 && !capped[i] {
				weights += w
				lastFlex = i
			}
		}
		if weights == 0 {
			break
		}

		share := remaining
		given := 0
		recheck := false
		for i, c := range cs {
			w := c.weight()
			if w == 0 || capped[i] {
				continue
			}
			n := share * w / weights
			if i == lastFlex {
				n = share - given
			}
			if c.kind == kindMax && sizes[i]+n >= c.a {
				n = max(c.a-sizes[i], 0)
				capped[i] = true
				recheck = true
			}
			sizes[i] += n
			given += n
		}
		remaining -= given
		if !recheck {
			break
		}
	}
	return sizes
}

// Split divides area along axis according to cs.
func Split(area geom.Rect, axis Axis, cs []Constraint) []geom.Rect {
	total := area.Height
	if axis == Horizontal {
		total = area.Width
	}
	sizes := Sizes(total, cs)

	rects := make([]geom.Rect, len(cs))
	offset := 0
	for i, n := range sizes {
		if axis == Horizontal {
			rects[i] = geom.Rect{X: area.X + offset, Y: area.Y, Width: n, Height: area.Height}
		} else {
			rects[i] = geom.Rect{X: area.X, Y: area.Y + offset, Width: area.Width, Height: n}
		}
		offset += n
	}
	return rects
}

// Center places a w x h box in the middle of area. Zero or oversized
// dimensions take the full extent of area.
func Center(area geom.Rect, w, h int) geom.Rect {
	if w <= 0 || w > area.Width {
		w = area.Width
	}
	if h <= 0 || h > area.Height {
		h = area.Height
	}
	return geom.Rect{
		X:      area.X + (area.Width-w)/2,
		Y:      area.Y + (area.Height-h)/2,
		Width:  w,
		Height: h,
	}
}
