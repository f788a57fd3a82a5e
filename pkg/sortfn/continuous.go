package sortfn

import (
	"time"

	"github.com/matzehuels/cascade/pkg/geom"
	"github.com/matzehuels/cascade/pkg/scene"
)

// continuous maps the Euclidean distance from anchor linearly onto
// [0, Duration]. It returns nil when every element sits on the anchor.
func (f Func) continuous(views []scene.Subview, anchor geom.Point) []TimedElement {
	dist := keyed(views, anchor, geom.Point.Distance)
	var maxDist float64
	for _, d := range dist {
		maxDist = max(maxDist, d)
	}
	if maxDist <= 0 {
		return nil
	}
	out := make([]TimedElement, len(views))
	for i, v := range views {
		out[i] = TimedElement{Element: v.Node, Point: v.Point, Offset: f.scale(dist[i] / maxDist)}
	}
	return out
}

// weighted combines the per-axis distances from anchor. Each axis distance
// is scaled by its weight coefficient, normalised by that axis's maximum and
// weighted again before summing; the sums are then normalised so the
// largest equals Duration. It returns nil when either axis has no spread.
func (f Func) weighted(views []scene.Subview, anchor geom.Point) []TimedElement {
	wh := f.HorizontalWeight.Coefficient()
	wv := f.VerticalWeight.Coefficient()

	h := make([]float64, len(views))
	v := make([]float64, len(views))
	var maxH, maxV float64
	for i, sv := range views {
		h[i] = anchor.HorizontalDistance(sv.Point) * wh
		v[i] = anchor.VerticalDistance(sv.Point) * wv
		maxH = max(maxH, h[i])
		maxV = max(maxV, v[i])
	}
	if maxH <= 0 || maxV <= 0 {
		return nil
	}

	raw := make([]float64, len(views))
	var maxRaw float64
	for i := range views {
		raw[i] = h[i]/maxH*wh + v[i]/maxV*wv
		maxRaw = max(maxRaw, raw[i])
	}

	out := make([]TimedElement, len(views))
	for i, sv := range views {
		out[i] = TimedElement{Element: sv.Node, Point: sv.Point, Offset: f.scale(raw[i] / maxRaw)}
	}
	return out
}

// scale converts a ratio in [0, 1] to an offset within Duration, applying
// reversal.
func (f Func) scale(ratio float64) time.Duration {
	offset := time.Duration(ratio * float64(f.Duration))
	if f.Reversed {
		return f.Duration - offset
	}
	return offset
}
