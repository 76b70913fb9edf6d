package layout

import (
	"reflect"
	"testing"

	"github.com/vango-dev/tessel/pkg/geom"
)

func TestSizes(t *testing.T) {
	tests := []struct {
		name  string
		total int
		cs    []Constraint
		want  []int
	}{
		{"empty", 10, nil, []int{}},
		{"single fill", 10, []Constraint{{}}, []int{10}},
		{"even fill", 10, []Constraint{Fill(1), Fill(1)}, []int{5, 5}},
		{"remainder to last", 10, []Constraint{Fill(1), Fill(1), Fill(1)}, []int{3, 3, 4}},
		{"weighted", 12, []Constraint{Fill(1), Fill(2)}, []int{4, 8}},
		{"length then fill", 10, []Constraint{Length(3), Fill(1)}, []int{3, 7}},
		{"percentage", 20, []Constraint{Percentage(25), Fill(1)}, []int{5, 15}},
		{"ratio", 9, []Constraint{Ratio(1, 3), Ratio(2, 3)}, []int{3, 6}},
		{"overflow clamps in order", 5, []Constraint{Length(4), Length(4)}, []int{4, 1}},
		{"min grows", 10, []Constraint{Min(2), Length(4)}, []int{6, 4}},
		{"max caps and redistributes", 10, []Constraint{Max(2), Fill(1)}, []int{2, 8}},
		{"fixed only leaves slack", 10, []Constraint{Length(2)}, []int{2}},
		{"zero total", 0, []Constraint{Fill(1)}, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sizes(tt.total, tt.cs)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sizes(%d, %v) = %v, want %v", tt.total, tt.cs, got, tt.want)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	area := geom.R(2, 1, 10, 4)

	rows := Split(area, Vertical, []Constraint{Length(1), Fill(1)})
	want := []geom.Rect{geom.R(2, 1, 10, 1), geom.R(2, 2, 10, 3)}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("vertical Split() = %v, want %v", rows, want)
	}

	cols := Split(area, Horizontal, []Constraint{Fill(1), Fill(1)})
	want = []geom.Rect{geom.R(2, 1, 5, 4), geom.R(7, 1, 5, 4)}
	if !reflect.DeepEqual(cols, want) {
		t.Errorf("horizontal Split() = %v, want %v", cols, want)
	}
}

func TestCenter(t *testing.T) {
	if got := Center(geom.R(0, 0, 10, 6), 4, 2); got != geom.R(3, 2, 4, 2) {
		t.Errorf("Center() = %v", got)
	}
	if got := Center(geom.R(1, 1, 5, 5), 0, 9); got != geom.R(1, 1, 5, 5) {
		t.Errorf("Center() full = %v", got)
	}
}

func TestConstraintString(t *testing.T) {
	if s := (Constraint{}).String(); s != "Fill(1)" {
		t.Errorf("zero constraint String() = %q", s)
	}
	if s := Ratio(1, 2).String(); s != "Ratio(1/2)" {
		t.Errorf("String() = %q", s)
	}
}
