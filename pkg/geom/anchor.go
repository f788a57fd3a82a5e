package geom

import "strings"

// =============================================================================
// Position - nine named anchors
// =============================================================================

// Position names a point on a container: a corner, an edge midpoint or the
// center. The zero value is TopLeft.
type Position int

const (
	TopLeft Position = iota
	TopMiddle
	TopRight
	Right
	Middle
	Left
	BottomLeft
	BottomMiddle
	BottomRight
)

var positionNames = map[Position]string{
	TopLeft:      "top-left",
	TopMiddle:    "top-middle",
	TopRight:     "top-right",
	Right:        "right",
	Middle:       "middle",
	Left:         "left",
	BottomLeft:   "bottom-left",
	BottomMiddle: "bottom-middle",
	BottomRight:  "bottom-right",
}

// Positions lists every Position in declaration order.
var Positions = []Position{TopLeft, TopMiddle, TopRight, Right, Middle, Left, BottomLeft, BottomMiddle, BottomRight}

// Resolve maps the position onto a container of the given size.
// Unknown values resolve as TopLeft.
func (p Position) Resolve(s Size) Point {
	switch p {
	case TopMiddle:
		return Point{X: s.W / 2, Y: 0}
	case TopRight:
		return Point{X: s.W, Y: 0}
	case Right:
		return Point{X: s.W, Y: s.H / 2}
	case Middle:
		return Point{X: s.W / 2, Y: s.H / 2}
	case Left:
		return Point{X: 0, Y: s.H / 2}
	case BottomLeft:
		return Point{X: 0, Y: s.H}
	case BottomMiddle:
		return Point{X: s.W / 2, Y: s.H}
	case BottomRight:
		return Point{X: s.W, Y: s.H}
	default:
		return Point{}
	}
}

func (p Position) String() string {
	if s, ok := positionNames[p]; ok {
		return s
	}
	return positionNames[TopLeft]
}

// ParsePosition parses a position name such as "top-left" or "middle".
// Underscores, spaces and camel case ("bottomRight") are accepted. The
// second result is false when the name is unknown, in which case TopLeft
// is returned.
func ParsePosition(s string) (Position, bool) {
	key := normalize(s)
	for p, name := range positionNames {
		if normalize(name) == key {
			return p, true
		}
	}
	if key == "center" || key == "centre" {
		return Middle, true
	}
	return TopLeft, false
}

// =============================================================================
// Corner
// =============================================================================

// Corner names one of the four corners of a container.
type Corner int

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

// Corners lists every Corner in declaration order.
var Corners = []Corner{CornerTopLeft, CornerTopRight, CornerBottomLeft, CornerBottomRight}

// Position returns the equivalent nine-way anchor.
func (c Corner) Position() Position {
	switch c {
	case CornerTopRight:
		return TopRight
	case CornerBottomLeft:
		return BottomLeft
	case CornerBottomRight:
		return BottomRight
	default:
		return TopLeft
	}
}

// Resolve maps the corner onto a container of the given size.
func (c Corner) Resolve(s Size) Point { return c.Position().Resolve(s) }

func (c Corner) String() string { return c.Position().String() }

// ParseCorner parses a corner name. Unknown names yield CornerTopLeft, false.
func ParseCorner(s string) (Corner, bool) {
	p, ok := ParsePosition(s)
	if !ok {
		return CornerTopLeft, false
	}
	for _, c := range Corners {
		if c.Position() == p {
			return c, true
		}
	}
	return CornerTopLeft, false
}

// =============================================================================
// Direction
// =============================================================================

// Direction is the sweep direction of a linear ordering.
type Direction int

const (
	TopToBottom Direction = iota
	BottomToTop
	LeftToRight
	RightToLeft
)

var directionNames = map[Direction]string{
	TopToBottom: "top-to-bottom",
	BottomToTop: "bottom-to-top",
	LeftToRight: "left-to-right",
	RightToLeft: "right-to-left",
}

// Directions lists every Direction in declaration order.
var Directions = []Direction{TopToBottom, BottomToTop, LeftToRight, RightToLeft}

// Start returns the edge midpoint the sweep starts from.
func (d Direction) Start() Position {
	switch d {
	case BottomToTop:
		return BottomMiddle
	case LeftToRight:
		return Left
	case RightToLeft:
		return Right
	default:
		return TopMiddle
	}
}

// Horizontal reports whether the sweep runs along the x axis.
func (d Direction) Horizontal() bool { return d == LeftToRight || d == RightToLeft }

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return directionNames[TopToBottom]
}

// ParseDirection parses a direction name. Unknown names yield TopToBottom, false.
func ParseDirection(s string) (Direction, bool) {
	key := normalize(s)
	for d, name := range directionNames {
		if normalize(name) == key {
			return d, true
		}
	}
	return TopToBottom, false
}

// =============================================================================
// Weight
// =============================================================================

// Weight scales one axis of a two-axis weighted ordering.
type Weight int

const (
	Light Weight = iota
	Medium
	Heavy
)

// Coefficient returns the multiplier for the weight. Unknown weights count
// as Medium.
func (w Weight) Coefficient() float64 {
	switch w {
	case Light:
		return 0.5
	case Heavy:
		return 1.5
	default:
		return 1.0
	}
}

func (w Weight) String() string {
	switch w {
	case Light:
		return "light"
	case Heavy:
		return "heavy"
	default:
		return "medium"
	}
}

// ParseWeight parses "light", "medium" or "heavy". Unknown names yield Medium, false.
func ParseWeight(s string) (Weight, bool) {
	switch normalize(s) {
	case "light":
		return Light, true
	case "medium":
		return Medium, true
	case "heavy":
		return Heavy, true
	}
	return Medium, false
}

// normalize lowercases s and strips separators so that "top-left",
// "top_left", "Top Left" and "topLeft" compare equal.
func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
