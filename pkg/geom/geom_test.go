package geom

import (
	"fmt"
	"math"
	"testing"
)

func TestDistances(t *testing.T) {
	tests := []struct {
		name       string
		p, q       Point
		horizontal float64
		vertical   float64
		euclidean  float64
	}{
		{"same point", Pt(3, 4), Pt(3, 4), 0, 0, 0},
		{"3-4-5", Pt(0, 0), Pt(3, 4), 3, 4, 5},
		{"negative deltas", Pt(10, 10), Pt(7, 6), 3, 4, 5},
		{"horizontal only", Pt(0, 0), Pt(-8, 0), 8, 0, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.HorizontalDistance(tt.q); got != tt.horizontal {
				t.Errorf("HorizontalDistance = %v, want %v", got, tt.horizontal)
			}
			if got := tt.p.VerticalDistance(tt.q); got != tt.vertical {
				t.Errorf("VerticalDistance = %v, want %v", got, tt.vertical)
			}
			if got := tt.p.Distance(tt.q); math.Abs(got-tt.euclidean) > 1e-9 {
				t.Errorf("Distance = %v, want %v", got, tt.euclidean)
			}
			if tt.p.Distance(tt.q) != tt.q.Distance(tt.p) {
				t.Error("Distance is not symmetric")
			}
		})
	}
}

func TestRect(t *testing.T) {
	r := R(10, 20, 30, 40)
	if got := r.Center(); got != Pt(25, 40) {
		t.Errorf("Center = %v, want (25,40)", got)
	}
	if got := r.Origin(); got != Pt(10, 20) {
		t.Errorf("Origin = %v", got)
	}
	if got := r.Size(); got != (Size{W: 30, H: 40}) {
		t.Errorf("Size = %v", got)
	}
	if got := r.Offset(Pt(5, 5)); got != R(15, 25, 30, 40) {
		t.Errorf("Offset = %v", got)
	}
}

func TestPositionResolve(t *testing.T) {
	size := Size{W: 100, H: 50}
	want := map[Position]Point{
		TopLeft:      Pt(0, 0),
		TopMiddle:    Pt(50, 0),
		TopRight:     Pt(100, 0),
		Right:        Pt(100, 25),
		Middle:       Pt(50, 25),
		Left:         Pt(0, 25),
		BottomLeft:   Pt(0, 50),
		BottomMiddle: Pt(50, 50),
		BottomRight:  Pt(100, 50),
	}
	for _, p := range Positions {
		t.Run(p.String(), func(t *testing.T) {
			if got := p.Resolve(size); got != want[p] {
				t.Errorf("Resolve = %v, want %v", got, want[p])
			}
		})
	}

	if got := Position(42).Resolve(size); got != Pt(0, 0) {
		t.Errorf("unknown position resolved to %v, want top-left", got)
	}
}

func TestCornerResolve(t *testing.T) {
	size := Size{W: 8, H: 6}
	tests := []struct {
		c    Corner
		want Point
	}{
		{CornerTopLeft, Pt(0, 0)},
		{CornerTopRight, Pt(8, 0)},
		{CornerBottomLeft, Pt(0, 6)},
		{CornerBottomRight, Pt(8, 6)},
		{Corner(-1), Pt(0, 0)},
	}
	for _, tt := range tests {
		if got := tt.c.Resolve(size); got != tt.want {
			t.Errorf("%v.Resolve = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestDirectionStart(t *testing.T) {
	tests := []struct {
		d          Direction
		start      Position
		horizontal bool
	}{
		{TopToBottom, TopMiddle, false},
		{BottomToTop, BottomMiddle, false},
		{LeftToRight, Left, true},
		{RightToLeft, Right, true},
	}
	for _, tt := range tests {
		if got := tt.d.Start(); got != tt.start {
			t.Errorf("%v.Start = %v, want %v", tt.d, got, tt.start)
		}
		if got := tt.d.Horizontal(); got != tt.horizontal {
			t.Errorf("%v.Horizontal = %v", tt.d, got)
		}
	}
}

func TestWeightCoefficient(t *testing.T) {
	tests := []struct {
		w    Weight
		want float64
	}{
		{Light, 0.5},
		{Medium, 1.0},
		{Heavy, 1.5},
		{Weight(9), 1.0},
	}
	for _, tt := range tests {
		if got := tt.w.Coefficient(); got != tt.want {
			t.Errorf("%v.Coefficient = %v, want %v", tt.w, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	t.Run("positions round trip", func(t *testing.T) {
		for _, p := range Positions {
			got, ok := ParsePosition(p.String())
			if !ok || got != p {
				t.Errorf("ParsePosition(%q) = %v, %v", p.String(), got, ok)
			}
		}
	})

	t.Run("lenient spelling", func(t *testing.T) {
		tests := []struct {
			in   string
			want Position
		}{
			{"bottomRight", BottomRight},
			{"TOP_MIDDLE", TopMiddle},
			{" top left ", TopLeft},
			{"center", Middle},
		}
		for _, tt := range tests {
			if got, ok := ParsePosition(tt.in); !ok || got != tt.want {
				t.Errorf("ParsePosition(%q) = %v, %v; want %v", tt.in, got, ok, tt.want)
			}
		}
	})

	t.Run("unknown falls back", func(t *testing.T) {
		if p, ok := ParsePosition("nowhere"); ok || p != TopLeft {
			t.Errorf("ParsePosition(nowhere) = %v, %v", p, ok)
		}
		if c, ok := ParseCorner("middle"); ok || c != CornerTopLeft {
			t.Errorf("ParseCorner(middle) = %v, %v", c, ok)
		}
		if d, ok := ParseDirection("sideways"); ok || d != TopToBottom {
			t.Errorf("ParseDirection(sideways) = %v, %v", d, ok)
		}
		if w, ok := ParseWeight("feather"); ok || w != Medium {
			t.Errorf("ParseWeight(feather) = %v, %v", w, ok)
		}
	})

	t.Run("corners and directions", func(t *testing.T) {
		if c, ok := ParseCorner("bottom-right"); !ok || c != CornerBottomRight {
			t.Errorf("ParseCorner = %v, %v", c, ok)
		}
		if d, ok := ParseDirection("right_to_left"); !ok || d != RightToLeft {
			t.Errorf("ParseDirection = %v, %v", d, ok)
		}
		if w, ok := ParseWeight("Heavy"); !ok || w != Heavy {
			t.Errorf("ParseWeight = %v, %v", w, ok)
		}
	})
}

func ExamplePosition_Resolve() {
	fmt.Println(BottomMiddle.Resolve(Size{W: 320, H: 480}))
	// Output: {160 480}
}
