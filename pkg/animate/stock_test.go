package animate

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cascade/pkg/scene"
)

func TestStockPrepareValues(t *testing.T) {
	tests := []struct {
		stock Stock
		check func(t *testing.T, p scene.Props)
	}{
		{Fade(), func(t *testing.T, p scene.Props) { assert.Equal(t, 0.0, p.Alpha) }},
		{Slide(SlideUp, Small), func(t *testing.T, p scene.Props) { assert.Equal(t, 10.0, p.TranslateY) }},
		{Slide(SlideDown, Medium), func(t *testing.T, p scene.Props) { assert.Equal(t, -30.0, p.TranslateY) }},
		{Slide(SlideLeft, Large), func(t *testing.T, p scene.Props) { assert.Equal(t, 50.0, p.TranslateX) }},
		{Slide(SlideRight, Small), func(t *testing.T, p scene.Props) { assert.Equal(t, -10.0, p.TranslateX) }},
		{Spin(Small), func(t *testing.T, p scene.Props) { assert.InDelta(t, math.Pi/4, p.Rotation, 1e-12) }},
		{Spin(Large), func(t *testing.T, p scene.Props) { assert.InDelta(t, math.Pi, p.Rotation, 1e-12) }},
		{Expand(Medium), func(t *testing.T, p scene.Props) { assert.InDelta(t, 0.7, p.Scale, 1e-12) }},
		{Contract(Large), func(t *testing.T, p scene.Props) { assert.InDelta(t, 1.5, p.Scale, 1e-12) }},
	}
	for _, tt := range tests {
		t.Run(tt.stock.String(), func(t *testing.T) {
			root := row(2)
			Prepare(root, 0, tt.stock)
			for _, k := range root.Kids {
				tt.check(t, *k.Props())
			}
			Compose(tt.stock)(root.Kids[0])
			assert.True(t, root.Kids[0].Props().IsIdentity(), "change should restore identity")
		})
	}
}

func TestPrepareUnhidesWhenFading(t *testing.T) {
	root := row(2)
	HideAll(root, 0)
	Prepare(root, 0, Spin(Small))
	assert.True(t, root.Kids[0].Props().Hidden)

	Prepare(root, 0, Fade(), Slide(SlideUp, Medium))
	p := root.Kids[0].Props()
	assert.False(t, p.Hidden)
	assert.Equal(t, 0.0, p.Alpha)
	assert.Equal(t, 30.0, p.TranslateY)
}

func TestParseStock(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"fade", "fade"},
		{"Fade-In", "fade"},
		{"slide", "slide:up:medium"},
		{"slide:left:large", "slide:left:large"},
		{"spin:small", "spin:small"},
		{"expand", "expand:medium"},
		{"contract:large", "contract:large"},
	}
	for _, tt := range tests {
		got, err := ParseStock(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got.String())
	}

	for _, bad := range []string{"wiggle", "slide:sideways", "spin:huge"} {
		_, err := ParseStock(bad)
		assert.Error(t, err, bad)
	}

	stocks, err := ParseStocks([]string{"fade", "spin"})
	require.NoError(t, err)
	assert.Len(t, stocks, 2)
	_, err = ParseStocks([]string{"fade", "nope"})
	assert.Error(t, err)
}

func TestUp(t *testing.T) {
	root := row(3)
	eng := &recorder{}
	Up(eng, root, []Stock{Fade()}, nil, nil)

	require.Len(t, eng.requests, 3)
	for i, req := range eng.requests {
		assert.Equal(t, DefaultDelay*time.Duration(i), req.delay)
		assert.Equal(t, 0.0, req.el.(*scene.Box).Props().Alpha, "elements are prepared before scheduling")
	}
}
