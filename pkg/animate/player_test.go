package animate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cascade/pkg/geom"
	"github.com/matzehuels/cascade/pkg/scene"
	"github.com/matzehuels/cascade/pkg/sortfn"
)

func TestPlayerTweensAndCompletes(t *testing.T) {
	root := row(3)
	p := NewPlayer(100*time.Millisecond, Linear)
	var got []bool
	Up(p, root, []Stock{Fade()}, sortfn.Linear(geom.LeftToRight, 50*time.Millisecond), func(finished bool) {
		got = append(got, finished)
	})

	a, b, c := root.Kids[0].Props(), root.Kids[1].Props(), root.Kids[2].Props()
	assert.Equal(t, 0.0, a.Alpha, "target state must not leak before playback")

	p.Advance(50 * time.Millisecond)
	assert.InDelta(t, 0.5, a.Alpha, 1e-9)
	assert.Equal(t, 0.0, b.Alpha)
	assert.Equal(t, 0.0, c.Alpha)

	prog, ok := p.Progress(root.Kids[1])
	require.True(t, ok)
	assert.Equal(t, 0.0, prog)

	p.Advance(50 * time.Millisecond)
	assert.Equal(t, 1.0, a.Alpha)
	assert.InDelta(t, 0.5, b.Alpha, 1e-9)
	assert.Empty(t, got)
	assert.False(t, p.Done())
	assert.Equal(t, 200*time.Millisecond, p.End())

	p.Advance(100 * time.Millisecond)
	assert.True(t, c.IsIdentity())
	assert.True(t, p.Done())
	assert.Equal(t, []bool{true}, got)
	assert.Equal(t, 200*time.Millisecond, p.Elapsed())
}

func TestPlayerInterrupt(t *testing.T) {
	root := row(3)
	p := NewPlayer(100*time.Millisecond, nil)
	var got []bool
	Container(p, root, sortfn.Default(100*time.Millisecond), Compose(Fade()), 0, func(finished bool) {
		got = append(got, finished)
	})

	p.Advance(100 * time.Millisecond)
	p.Interrupt()
	assert.Equal(t, []bool{false}, got)
	assert.True(t, p.Done())

	// Interrupted tracks stay where they stopped.
	p.Advance(time.Second)
	assert.Equal(t, []bool{false}, got)
}

func TestPlayerZeroDuration(t *testing.T) {
	root := row(2)
	p := NewPlayer(0, nil)
	var got []bool
	Up(p, root, []Stock{Spin(Medium)}, sortfn.Default(0), func(finished bool) { got = append(got, finished) })
	p.Advance(0)
	assert.Equal(t, []bool{true}, got)
	assert.True(t, root.Kids[1].Props().IsIdentity())
}

// plain has geometry but no props.
type plain struct{ frame geom.Rect }

func (n plain) Frame() geom.Rect       { return n.frame }
func (n plain) Children() []scene.Node { return nil }

func TestPlayerNodeWithoutProps(t *testing.T) {
	p := NewPlayer(10*time.Millisecond, nil)
	applied := 0
	var got []bool
	p.Animate(plain{}, 0, func(scene.Node) { applied++ }, func(finished bool) { got = append(got, finished) })

	assert.Zero(t, applied)
	p.Advance(10 * time.Millisecond)
	assert.Equal(t, 1, applied)
	assert.Equal(t, []bool{true}, got)

	_, ok := p.Progress(plain{frame: geom.R(1, 1, 1, 1)})
	assert.False(t, ok)
}

func TestPlayerConcurrentAnimateAndAdvance(t *testing.T) {
	root := row(8)
	p := NewPlayer(10*time.Millisecond, nil)
	prepare, change := Fade().PrepareFunc(), Fade().ChangeFunc()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 200 {
			p.Advance(time.Millisecond)
		}
	}()
	go func() {
		defer wg.Done()
		for _, kid := range root.Kids {
			prepare(kid)
			p.Animate(kid, 0, change, nil)
		}
	}()
	wg.Wait()

	p.Advance(time.Second)
	require.True(t, p.Done())
	for _, kid := range root.Kids {
		assert.True(t, kid.Props().IsIdentity(), kid.Name)
	}
}

func TestPlayerState(t *testing.T) {
	root := row(1)
	p := NewPlayer(100*time.Millisecond, nil)
	HideAll(root, 0)
	kid := root.Kids[0]
	p.Animate(kid, 0, func(n scene.Node) { n.(*scene.Box).Props().Hidden = false }, nil)

	st, ok := p.State(kid)
	require.True(t, ok)
	assert.True(t, st.Hidden, "pending tracks keep their starting state")

	p.Advance(10 * time.Millisecond)
	st, _ = p.State(kid)
	assert.False(t, st.Hidden)

	_, ok = p.State(plain{})
	assert.False(t, ok)
}

func TestRunFinishes(t *testing.T) {
	root := row(2)
	p := NewPlayer(5*time.Millisecond, EaseOutCubic)
	done := make(chan bool, 1)
	Up(p, root, []Stock{Fade()}, sortfn.Default(time.Millisecond), func(finished bool) { done <- finished })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	frames := 0
	require.NoError(t, Run(ctx, p, time.Millisecond, func() { frames++ }))
	assert.True(t, <-done)
	assert.Positive(t, frames)
}

func TestRunCancelInterrupts(t *testing.T) {
	root := row(2)
	p := NewPlayer(time.Hour, nil)
	done := make(chan bool, 1)
	Up(p, root, []Stock{Fade()}, nil, func(finished bool) { done <- finished })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Run(ctx, p, time.Millisecond, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, <-done)
}

func TestEasings(t *testing.T) {
	for _, name := range EasingNames() {
		e, ok := ParseEasing(name)
		require.True(t, ok, name)
		assert.Equal(t, 0.0, e(0), name)
		assert.Equal(t, 1.0, e(1), name)
		assert.Equal(t, 1.0, e(2), name)
		assert.Equal(t, 0.0, e(-1), name)
	}
	_, ok := ParseEasing("bounce")
	assert.False(t, ok)

	assert.Greater(t, EaseOutCubic(0.5), 0.5)
	assert.InDelta(t, 0.5, EaseInOutCubic(0.5), 1e-12)
}

func TestTween(t *testing.T) {
	from := scene.Props{Alpha: 0, Scale: 0.5, Hidden: true}
	to := scene.Identity()

	assert.Equal(t, from, Tween(from, to, 0))
	mid := Tween(from, to, 0.5)
	assert.InDelta(t, 0.5, mid.Alpha, 1e-12)
	assert.InDelta(t, 0.75, mid.Scale, 1e-12)
	assert.False(t, mid.Hidden)
	assert.Equal(t, to, Tween(from, to, 1))
}
