package sink

import (
	"context"

	"github.com/matzehuels/cascade/pkg/render"
	"github.com/matzehuels/cascade/pkg/timeline"
)

// DefaultScale is the PNG scale factor used when none is given.
const DefaultScale = 2.0

// RenderPDF renders tl as a PDF of its final frame.
func RenderPDF(ctx context.Context, tl *timeline.Timeline, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(tl, opts...))
}

// RenderPNG renders tl as a PNG of its final frame. A non-positive scale
// uses DefaultScale.
func RenderPNG(ctx context.Context, tl *timeline.Timeline, scale float64, opts ...SVGOption) ([]byte, error) {
	if scale <= 0 {
		scale = DefaultScale
	}
	return render.ToPNG(ctx, RenderSVG(tl, opts...), scale)
}
