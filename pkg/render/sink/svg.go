package sink

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/cascade/pkg/animate"
	"github.com/matzehuels/cascade/pkg/geom"
	"github.com/matzehuels/cascade/pkg/scene"
	"github.com/matzehuels/cascade/pkg/timeline"
)

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	animations []animate.Stock
	duration   time.Duration
	easing     string
	labels     bool
	theme      Theme
}

// WithAnimations sets the stock animations played by every element.
// The default is a fade.
func WithAnimations(stocks ...animate.Stock) SVGOption {
	return func(r *svgRenderer) { r.animations = stocks }
}

// WithDuration sets the length of each element's animation.
func WithDuration(d time.Duration) SVGOption { return func(r *svgRenderer) { r.duration = d } }

// WithEasing sets the easing curve by name (see animate.EasingNames).
func WithEasing(name string) SVGOption { return func(r *svgRenderer) { r.easing = name } }

// WithLabels draws each element's id and start offset.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithTheme selects a colour theme. Unknown names keep the default.
func WithTheme(name string) SVGOption {
	return func(r *svgRenderer) {
		if t, ok := LookupTheme(name); ok {
			r.theme = t
		}
	}
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	light, _ := LookupTheme(DefaultTheme)
	r := svgRenderer{
		animations: []animate.Stock{animate.Fade()},
		duration:   animate.DefaultDuration,
		easing:     "ease-out",
		theme:      light,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

var cssEasings = map[string]string{
	"linear":         "linear",
	"ease-out":       "cubic-bezier(0.33, 1, 0.68, 1)",
	"ease-out-cubic": "cubic-bezier(0.33, 1, 0.68, 1)",
	"ease-in-out":    "cubic-bezier(0.65, 0, 0.35, 1)",
	"spring":         "cubic-bezier(0.34, 1.56, 0.64, 1)",
}

// RenderSVG renders tl as an animated SVG document.
func RenderSVG(tl *timeline.Timeline, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	entries := slices.Clone(tl.Entries)
	slices.SortStableFunc(entries, func(a, b timeline.Entry) int { return cmp.Compare(a.Level, b.Level) })

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		tl.Width, tl.Height, tl.Width, tl.Height)
	fmt.Fprintf(&buf, "  <title>%s: %s</title>\n", escapeXML(tl.Scene), escapeXML(tl.Sort))
	r.renderStyle(&buf)
	fmt.Fprintf(&buf, `  <rect class="bg" x="0" y="0" width="%.1f" height="%.1f"/>`+"\n", tl.Width, tl.Height)
	for _, e := range entries {
		r.renderEntry(&buf, e)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderStyle(buf *bytes.Buffer) {
	easing, ok := cssEasings[r.easing]
	if !ok {
		easing = cssEasings["ease-out"]
	}
	buf.WriteString("  <style>\n")
	fmt.Fprintf(buf, "    .bg { fill: %s; }\n", r.theme.Background)
	fmt.Fprintf(buf, "    .item { transform-box: fill-box; transform-origin: center; animation: cascade-enter %dms %s both; }\n",
		r.duration.Milliseconds(), easing)
	fmt.Fprintf(buf, "    .item rect { stroke: %s; stroke-width: 1; }\n", r.theme.Stroke)
	fmt.Fprintf(buf, "    .item text { fill: %s; font-family: ui-monospace, monospace; font-size: 10px; }\n", r.theme.Text)
	fmt.Fprintf(buf, "    @keyframes cascade-enter {\n      from { %s }\n      to { opacity: 1; transform: none; }\n    }\n",
		keyframeFrom(r.animations))
	buf.WriteString("  </style>\n")
}

// keyframeFrom returns the CSS declarations of the prepared state.
func keyframeFrom(stocks []animate.Stock) string {
	sample := scene.NewBox("sample", geom.R(0, 0, 1, 1))
	for _, s := range stocks {
		s.PrepareFunc()(sample)
	}
	p := sample.Props()

	var transforms []string
	if p.TranslateX != 0 || p.TranslateY != 0 {
		transforms = append(transforms, fmt.Sprintf("translate(%gpx, %gpx)", p.TranslateX, p.TranslateY))
	}
	if p.Rotation != 0 {
		transforms = append(transforms, fmt.Sprintf("rotate(%.4frad)", p.Rotation))
	}
	if p.Scale != 1 {
		transforms = append(transforms, fmt.Sprintf("scale(%g)", math.Round(p.Scale*1000)/1000))
	}
	decl := fmt.Sprintf("opacity: %g;", p.Alpha)
	if len(transforms) > 0 {
		decl += " transform: " + strings.Join(transforms, " ") + ";"
	}
	return decl
}

func (r *svgRenderer) renderEntry(buf *bytes.Buffer, e timeline.Entry) {
	fmt.Fprintf(buf, `  <g id="el-%s" class="item" style="animation-delay: %dms">`+"\n",
		escapeXML(e.ID), e.Delay().Milliseconds())
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="3" fill="%s"/>`+"\n",
		e.X, e.Y, e.Width, e.Height, r.theme.fill(e.Level))
	if r.labels {
		c := e.Center()
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle">%s +%dms</text>`+"\n",
			c.X, c.Y, escapeXML(e.ID), e.Delay().Milliseconds())
	}
	buf.WriteString("  </g>\n")
}
