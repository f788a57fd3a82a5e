package animate

import (
	"math"
	"sort"
	"strings"

	"github.com/matzehuels/cascade/pkg/scene"
)

// Easing maps linear progress in [0, 1] to eased progress. Every curve
// returns exactly 0 at 0 and exactly 1 at 1.
type Easing func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 { return clamp01(t) }

// EaseOutCubic decelerates towards the end.
func EaseOutCubic(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}

// EaseInOutCubic accelerates then decelerates.
func EaseInOutCubic(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// Spring overshoots slightly and settles, approximating an underdamped
// spring.
func Spring(t float64) float64 {
	t = clamp01(t)
	if t == 1 {
		return 1
	}
	return 1 - math.Exp(-6*t)*math.Cos(12*t)
}

var easings = map[string]Easing{
	"linear":         Linear,
	"ease-out":       EaseOutCubic,
	"ease-in-out":    EaseInOutCubic,
	"spring":         Spring,
	"ease-out-cubic": EaseOutCubic,
}

// ParseEasing resolves an easing by name. Unknown names yield Linear, false.
func ParseEasing(name string) (Easing, bool) {
	if e, ok := easings[strings.ToLower(strings.TrimSpace(name))]; ok {
		return e, true
	}
	return Linear, false
}

// EasingNames lists the accepted easing names.
func EasingNames() []string {
	out := make([]string, 0, len(easings))
	for k := range easings {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Tween interpolates between two property sets. Hidden switches to the
// target value as soon as t > 0.
func Tween(from, to scene.Props, t float64) scene.Props {
	lerp := func(a, b float64) float64 { return a + (b-a)*t }
	out := scene.Props{
		Alpha:      lerp(from.Alpha, to.Alpha),
		TranslateX: lerp(from.TranslateX, to.TranslateX),
		TranslateY: lerp(from.TranslateY, to.TranslateY),
		Rotation:   lerp(from.Rotation, to.Rotation),
		Scale:      lerp(from.Scale, to.Scale),
		Hidden:     from.Hidden,
	}
	if t > 0 {
		out.Hidden = to.Hidden
	}
	if t >= 1 {
		return to
	}
	return out
}

func clamp01(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return t
}
