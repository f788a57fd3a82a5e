package sortfn

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/cascade/pkg/geom"
	"github.com/matzehuels/cascade/pkg/scene"
)

// Kind selects a sort-function variant.
type Kind int

const (
	KindDefault Kind = iota
	KindLinear
	KindCornered
	KindRadial
	KindInline
	KindContinuous
	KindWeighted
	KindRandom
)

var kindNames = map[Kind]string{
	KindDefault:    "default",
	KindLinear:     "linear",
	KindCornered:   "cornered",
	KindRadial:     "radial",
	KindInline:     "inline",
	KindContinuous: "continuous",
	KindWeighted:   "weighted",
	KindRandom:     "random",
}

// Kinds lists every Kind in declaration order.
var Kinds = []Kind{KindDefault, KindLinear, KindCornered, KindRadial, KindInline, KindContinuous, KindWeighted, KindRandom}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[KindDefault]
}

// Continuous reports whether the kind uses the duration-proportional model.
func (k Kind) Continuous() bool { return k == KindContinuous || k == KindWeighted }

// ParseKind parses a kind name. "continuous-weighted" is accepted as an
// alias for weighted. Unknown names yield KindDefault, false.
func ParseKind(s string) (Kind, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "continuous-weighted", "continuousweighted", "continuous_weighted":
		return KindWeighted, true
	}
	for k, name := range kindNames {
		if name == key {
			return k, true
		}
	}
	return KindDefault, false
}

// KindNames returns the kind names in declaration order.
func KindNames() []string {
	out := make([]string, len(Kinds))
	for i, k := range Kinds {
		out[i] = k.String()
	}
	return out
}

// TimedElement is one element together with the delay after which its
// animation starts.
type TimedElement struct {
	Element scene.Node
	// Point is the element's reference point in root coordinates.
	Point  geom.Point
	Offset time.Duration
}

// SortFunction maps a container to timed elements.
type SortFunction interface {
	TimeOffsets(root scene.Node, depth int) []TimedElement
}

// Func is the configuration of one sort function. Only the fields relevant
// to Kind are read:
//
//	default, random     Delay (random also Seed)
//	linear              Delay, Direction
//	cornered, inline    Delay, Corner
//	radial              Delay, Position
//	continuous          Duration, Position
//	weighted            Duration, Position, HorizontalWeight, VerticalWeight
//
// Reversed applies to every kind. The zero value is a default function with
// no delay.
type Func struct {
	Kind     Kind
	Delay    time.Duration
	Duration time.Duration
	Reversed bool

	Direction        geom.Direction
	Corner           geom.Corner
	Position         geom.Position
	HorizontalWeight geom.Weight
	VerticalWeight   geom.Weight

	// Seed drives the random shuffle. Zero draws a fresh seed per call.
	Seed uint64
}

var _ SortFunction = Func{}

// Default orders elements by traversal index.
func Default(delay time.Duration) Func {
	return Func{Kind: KindDefault, Delay: delay}
}

// Linear sweeps across the container in direction d.
func Linear(d geom.Direction, delay time.Duration) Func {
	return Func{Kind: KindLinear, Direction: d, Delay: delay}
}

// Cornered radiates diagonally from corner c.
func Cornered(c geom.Corner, delay time.Duration) Func {
	return Func{Kind: KindCornered, Corner: c, Delay: delay}
}

// Radial radiates outwards from position p.
func Radial(p geom.Position, delay time.Duration) Func {
	return Func{Kind: KindRadial, Position: p, Delay: delay}
}

// Inline orders by distance from corner c, ties by traversal index.
func Inline(c geom.Corner, delay time.Duration) Func {
	return Func{Kind: KindInline, Corner: c, Delay: delay}
}

// Continuous spreads offsets over duration in proportion to the distance
// from position p.
func Continuous(p geom.Position, duration time.Duration) Func {
	return Func{Kind: KindContinuous, Position: p, Duration: duration}
}

// ContinuousWeighted is Continuous with independently weighted axes.
func ContinuousWeighted(p geom.Position, duration time.Duration, horizontal, vertical geom.Weight) Func {
	return Func{
		Kind:             KindWeighted,
		Position:         p,
		Duration:         duration,
		HorizontalWeight: horizontal,
		VerticalWeight:   vertical,
	}
}

// Random shuffles the traversal order. A zero seed reshuffles on every call.
func Random(delay time.Duration, seed uint64) Func {
	return Func{Kind: KindRandom, Delay: delay, Seed: seed}
}

// Reverse returns a copy of f with the Reversed flag toggled.
func (f Func) Reverse() Func {
	f.Reversed = !f.Reversed
	return f
}

// TimeOffsets flattens root to the given depth and computes the timed
// elements.
func (f Func) TimeOffsets(root scene.Node, depth int) []TimedElement {
	return f.Offsets(scene.Subviews(root, depth), scene.Bounds(root))
}

// Offsets computes timed elements for an already flattened container whose
// root has the given size.
func (f Func) Offsets(views []scene.Subview, bounds geom.Size) []TimedElement {
	if len(views) == 0 {
		return nil
	}
	anchor := f.DistancePoint(bounds)
	switch f.Kind {
	case KindLinear:
		measure := geom.Point.VerticalDistance
		if f.Direction.Horizontal() {
			measure = geom.Point.HorizontalDistance
		}
		return f.ranked(views, keyed(views, anchor, measure))
	case KindCornered, KindRadial, KindInline:
		return f.ranked(views, keyed(views, anchor, geom.Point.Distance))
	case KindRandom:
		return f.ranked(views, shuffled(len(views), f.Seed))
	case KindContinuous:
		return f.continuous(views, anchor)
	case KindWeighted:
		return f.weighted(views, anchor)
	default:
		return f.ranked(views, indexKeys(len(views)))
	}
}

// DistancePoint resolves the variant's anchor against the root size. Kinds
// without an anchor resolve to the origin.
func (f Func) DistancePoint(bounds geom.Size) geom.Point {
	switch f.Kind {
	case KindLinear:
		return f.Direction.Start().Resolve(bounds)
	case KindCornered, KindInline:
		return f.Corner.Resolve(bounds)
	case KindRadial, KindContinuous, KindWeighted:
		return f.Position.Resolve(bounds)
	}
	return geom.Point{}
}

// String describes the function, e.g. "radial(middle, delay=50ms)".
func (f Func) String() string {
	var args []string
	switch f.Kind {
	case KindLinear:
		args = append(args, f.Direction.String())
	case KindCornered, KindInline:
		args = append(args, f.Corner.String())
	case KindRadial, KindContinuous, KindWeighted:
		args = append(args, f.Position.String())
	}
	if f.Kind == KindWeighted {
		args = append(args, "h="+f.HorizontalWeight.String(), "v="+f.VerticalWeight.String())
	}
	if f.Kind.Continuous() {
		args = append(args, "duration="+f.Duration.String())
	} else {
		args = append(args, "delay="+f.Delay.String())
	}
	if f.Kind == KindRandom && f.Seed != 0 {
		args = append(args, fmt.Sprintf("seed=%d", f.Seed))
	}
	if f.Reversed {
		args = append(args, "reversed")
	}
	return fmt.Sprintf("%s(%s)", f.Kind, strings.Join(args, ", "))
}

// Span returns the largest offset in timed, the time after which the last
// element starts.
func Span(timed []TimedElement) time.Duration {
	var longest time.Duration
	for _, te := range timed {
		longest = max(longest, te.Offset)
	}
	return longest
}
