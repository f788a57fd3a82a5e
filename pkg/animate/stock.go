package animate

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/cascade/pkg/scene"
)

// Size is the magnitude of a stock animation.
type Size int

const (
	Small Size = iota
	Medium
	Large
)

func (s Size) String() string {
	switch s {
	case Small:
		return "small"
	case Large:
		return "large"
	default:
		return "medium"
	}
}

// ParseSize parses "small", "medium" or "large".
func ParseSize(s string) (Size, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small":
		return Small, true
	case "medium":
		return Medium, true
	case "large":
		return Large, true
	}
	return Medium, false
}

// SlideDirection is the direction an element travels while sliding in.
type SlideDirection int

const (
	SlideUp SlideDirection = iota
	SlideDown
	SlideLeft
	SlideRight
)

func (d SlideDirection) String() string {
	return [...]string{"up", "down", "left", "right"}[d&3]
}

// ParseSlideDirection parses "up", "down", "left" or "right".
func ParseSlideDirection(s string) (SlideDirection, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return SlideUp, true
	case "down":
		return SlideDown, true
	case "left":
		return SlideLeft, true
	case "right":
		return SlideRight, true
	}
	return SlideUp, false
}

type stockKind int

const (
	stockFade stockKind = iota
	stockSlide
	stockSpin
	stockExpand
	stockContract
)

// Stock is one of the built-in animations. Each has a prepare step that
// moves an element into its starting state and a change step that returns
// it to identity.
type Stock struct {
	kind      stockKind
	direction SlideDirection
	size      Size
}

// Fade fades elements in from transparent.
func Fade() Stock { return Stock{kind: stockFade} }

// Slide moves elements in from an offset opposite to d.
func Slide(d SlideDirection, s Size) Stock { return Stock{kind: stockSlide, direction: d, size: s} }

// Spin rotates elements back from an angle.
func Spin(s Size) Stock { return Stock{kind: stockSpin, size: s} }

// Expand grows elements from a reduced scale.
func Expand(s Size) Stock { return Stock{kind: stockExpand, size: s} }

// Contract shrinks elements from an enlarged scale.
func Contract(s Size) Stock { return Stock{kind: stockContract, size: s} }

func (s Stock) String() string {
	switch s.kind {
	case stockFade:
		return "fade"
	case stockSlide:
		return fmt.Sprintf("slide:%s:%s", s.direction, s.size)
	case stockSpin:
		return "spin:" + s.size.String()
	case stockExpand:
		return "expand:" + s.size.String()
	default:
		return "contract:" + s.size.String()
	}
}

// ParseStock parses names of the form "fade", "slide:up:large",
// "spin:small", "expand" or "contract:medium". Omitted sizes default to
// medium and an omitted slide direction defaults to up.
func ParseStock(s string) (Stock, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), ":")
	size := Medium
	sizeArg := func(i int) error {
		if len(parts) <= i {
			return nil
		}
		v, ok := ParseSize(parts[i])
		if !ok {
			return fmt.Errorf("animation %q: unknown size %q", s, parts[i])
		}
		size = v
		return nil
	}
	switch parts[0] {
	case "fade", "fadein", "fade-in":
		return Fade(), nil
	case "slide":
		dir := SlideUp
		if len(parts) > 1 {
			d, ok := ParseSlideDirection(parts[1])
			if !ok {
				return Stock{}, fmt.Errorf("animation %q: unknown direction %q", s, parts[1])
			}
			dir = d
		}
		if err := sizeArg(2); err != nil {
			return Stock{}, err
		}
		return Slide(dir, size), nil
	case "spin", "expand", "contract":
		if err := sizeArg(1); err != nil {
			return Stock{}, err
		}
		switch parts[0] {
		case "spin":
			return Spin(size), nil
		case "expand":
			return Expand(size), nil
		}
		return Contract(size), nil
	}
	return Stock{}, fmt.Errorf("unknown animation %q", s)
}

// ParseStocks parses a list of stock animation names.
func ParseStocks(names []string) ([]Stock, error) {
	out := make([]Stock, 0, len(names))
	for _, n := range names {
		st, err := ParseStock(n)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func (s Stock) slideOffset() (dx, dy float64) {
	mag := [...]float64{10, 30, 50}[s.size%3]
	switch s.direction {
	case SlideUp:
		return 0, mag
	case SlideDown:
		return 0, -mag
	case SlideLeft:
		return mag, 0
	default:
		return -mag, 0
	}
}

func (s Stock) spinAngle() float64 {
	return [...]float64{math.Pi / 4, math.Pi / 2, math.Pi}[s.size%3]
}

func (s Stock) scale() float64 {
	if s.kind == stockExpand {
		return [...]float64{0.9, 0.7, 0.5}[s.size%3]
	}
	return [...]float64{1.1, 1.3, 1.5}[s.size%3]
}

// PrepareFunc returns the function that moves an element into the
// animation's starting state. Transforms accumulate on top of the current
// properties.
func (s Stock) PrepareFunc() ChangeFunc {
	return func(n scene.Node) {
		p := propsOf(n)
		if p == nil {
			return
		}
		switch s.kind {
		case stockFade:
			p.Alpha = 0
		case stockSlide:
			dx, dy := s.slideOffset()
			p.TranslateX += dx
			p.TranslateY += dy
		case stockSpin:
			p.Rotation += s.spinAngle()
		case stockExpand, stockContract:
			p.Scale *= s.scale()
		}
	}
}

// ChangeFunc returns the function that restores the property the animation
// touches.
func (s Stock) ChangeFunc() ChangeFunc {
	return func(n scene.Node) {
		p := propsOf(n)
		if p == nil {
			return
		}
		switch s.kind {
		case stockFade:
			p.Alpha = 1
		case stockSlide:
			p.TranslateX, p.TranslateY = 0, 0
		case stockSpin:
			p.Rotation = 0
		case stockExpand, stockContract:
			p.Scale = 1
		}
	}
}

// Compose returns a change function applying every stock's change in order.
func Compose(stocks ...Stock) ChangeFunc {
	fns := make([]ChangeFunc, len(stocks))
	for i, s := range stocks {
		fns[i] = s.ChangeFunc()
	}
	return func(n scene.Node) {
		for _, fn := range fns {
			fn(n)
		}
	}
}

// Prepare moves every element below root into the starting state of the
// given animations. A fade also unhides the elements so they can fade in.
func Prepare(root scene.Node, depth int, stocks ...Stock) {
	fading := false
	for _, s := range stocks {
		fading = fading || s.kind == stockFade
	}
	for _, sv := range scene.Subviews(root, depth) {
		for _, s := range stocks {
			s.PrepareFunc()(sv.Node)
		}
		if p := propsOf(sv.Node); p != nil && fading {
			p.Hidden = false
		}
	}
}

// HideAll hides every element below root.
func HideAll(root scene.Node, depth int) {
	for _, sv := range scene.Subviews(root, depth) {
		if p := propsOf(sv.Node); p != nil {
			p.Hidden = true
		}
	}
}
