package sink

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cascade/pkg/animate"
	"github.com/matzehuels/cascade/pkg/geom"
	"github.com/matzehuels/cascade/pkg/render"
	"github.com/matzehuels/cascade/pkg/scene"
	"github.com/matzehuels/cascade/pkg/sortfn"
	"github.com/matzehuels/cascade/pkg/timeline"
)

func sample() *timeline.Timeline {
	root := scene.NewBox("demo", geom.R(0, 0, 100, 20),
		scene.NewBox("a", geom.R(0, 0, 20, 20)),
		scene.NewBox("b<&>", geom.R(40, 0, 20, 20)),
		scene.NewBox("c", geom.R(80, 0, 20, 20)),
	)
	return timeline.Build(root, sortfn.Linear(geom.LeftToRight, 50*time.Millisecond), 0)
}

func TestRenderSVGDelays(t *testing.T) {
	out := string(RenderSVG(sample()))

	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, `id="el-a" class="item" style="animation-delay: 0ms"`)
	assert.Contains(t, out, `style="animation-delay: 50ms"`)
	assert.Contains(t, out, `id="el-c" class="item" style="animation-delay: 100ms"`)
	assert.Contains(t, out, "@keyframes cascade-enter")
	assert.Contains(t, out, "opacity: 0;")
	assert.Equal(t, 3, strings.Count(out, `class="item"`))
}

func TestRenderSVGEscapesIDs(t *testing.T) {
	out := string(RenderSVG(sample(), WithLabels()))
	assert.Contains(t, out, "el-b&lt;&amp;&gt;")
	assert.NotContains(t, out, "b<&>")
	assert.Contains(t, out, "+50ms</text>")
}

func TestRenderSVGOptions(t *testing.T) {
	out := string(RenderSVG(sample(),
		WithAnimations(animate.Slide(animate.SlideUp, animate.Medium), animate.Expand(animate.Small)),
		WithDuration(time.Second),
		WithEasing("spring"),
		WithTheme("dark"),
	))
	assert.Contains(t, out, "cascade-enter 1000ms cubic-bezier(0.34, 1.56, 0.64, 1) both")
	assert.Contains(t, out, "translate(0px, 30px)")
	assert.Contains(t, out, "scale(0.9)")
	assert.Contains(t, out, "opacity: 1;")
	assert.Contains(t, out, "fill: #0f172a")
}

func TestRenderSVGUnknownThemeKeepsDefault(t *testing.T) {
	out := string(RenderSVG(sample(), WithTheme("neon"), WithEasing("bogus")))
	assert.Contains(t, out, "fill: #ffffff")
	assert.Contains(t, out, cssEasings["ease-out"])
}

func TestRenderSVGEmptyTimeline(t *testing.T) {
	root := scene.NewBox("empty", geom.R(0, 0, 10, 10))
	out := string(RenderSVG(timeline.Build(root, sortfn.Default(time.Millisecond), 0)))
	assert.Contains(t, out, "</svg>")
	assert.NotContains(t, out, `class="item"`)
}

func TestRenderJSON(t *testing.T) {
	tl := sample()
	data, err := RenderJSON(tl)
	require.NoError(t, err)

	back, err := timeline.Read(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, tl.ID, back.ID)
	assert.Equal(t, tl.Len(), back.Len())
}

func TestThemeNames(t *testing.T) {
	assert.Equal(t, []string{"dark", "light"}, ThemeNames())
}

func TestRenderRaster(t *testing.T) {
	if !render.HasConverter() {
		t.Skip("rsvg-convert not installed")
	}
	ctx := context.Background()
	png, err := RenderPNG(ctx, sample(), 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	pdf, err := RenderPDF(ctx, sample())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
