package animate

import (
	"sync"
	"time"

	"github.com/matzehuels/cascade/pkg/scene"
)

type trackState int

const (
	trackPending trackState = iota
	trackRunning
	trackFinished
	trackInterrupted
)

type track struct {
	node   scene.Node
	props  *scene.Props
	start  time.Duration
	from   scene.Props
	to     scene.Props
	change ChangeFunc
	done   Completion
	state  trackState
}

// Player is an Engine driven by a manual clock. Each Animate call records a
// track that starts delay after the current clock and lasts Duration.
// Advance moves the clock and tweens the props of every running track;
// tracks whose time is up complete with true, and Interrupt completes every
// unfinished track with false.
//
// Nodes without props (see [Animatable]) have their change applied when the
// track finishes. Completions are invoked after the player's lock is
// released, so they may call back into the player. A Player is safe for
// concurrent use: the props of animated nodes are only touched under its
// lock, so other goroutines should observe them through Progress rather
// than reading them directly while tracks run.
type Player struct {
	Duration time.Duration
	Easing   Easing

	mu     sync.Mutex
	clock  time.Duration
	tracks []*track
}

// NewPlayer returns a player whose animations last duration. A nil easing
// means Linear.
func NewPlayer(duration time.Duration, easing Easing) *Player {
	if easing == nil {
		easing = Linear
	}
	return &Player{Duration: duration, Easing: easing}
}

var _ Engine = (*Player)(nil)

// Animate implements Engine. For props-bearing nodes the target state is
// computed by applying change to the current props and restoring them
// afterwards. That happens under the player's lock, so change must not call
// back into the player.
func (p *Player) Animate(el scene.Node, delay time.Duration, change ChangeFunc, done Completion) {
	tr := &track{node: el, props: propsOf(el), change: change, done: done}

	p.mu.Lock()
	defer p.mu.Unlock()
	if tr.props != nil {
		tr.from = *tr.props
		if change != nil {
			change(el)
		}
		tr.to = *tr.props
		*tr.props = tr.from
	}
	tr.start = p.clock + max(delay, 0)
	p.tracks = append(p.tracks, tr)
}

// Advance moves the clock forward by elapsed and updates every track.
func (p *Player) Advance(elapsed time.Duration) {
	p.mu.Lock()
	p.clock += max(elapsed, 0)
	var finished []*track
	for _, tr := range p.tracks {
		if tr.state == trackFinished || tr.state == trackInterrupted {
			continue
		}
		if p.clock < tr.start {
			continue
		}
		t := p.progressLocked(tr)
		tr.state = trackRunning
		if tr.props != nil {
			*tr.props = Tween(tr.from, tr.to, p.ease()(t))
		}
		if t >= 1 {
			tr.state = trackFinished
			finished = append(finished, tr)
		}
	}
	p.mu.Unlock()

	for _, tr := range finished {
		if tr.props == nil && tr.change != nil {
			tr.change(tr.node)
		}
		if tr.done != nil {
			tr.done(true)
		}
	}
}

// Interrupt stops every unfinished track where it is and reports false for
// each of them.
func (p *Player) Interrupt() {
	p.mu.Lock()
	var stopped []*track
	for _, tr := range p.tracks {
		if tr.state == trackPending || tr.state == trackRunning {
			tr.state = trackInterrupted
			stopped = append(stopped, tr)
		}
	}
	p.mu.Unlock()

	for _, tr := range stopped {
		if tr.done != nil {
			tr.done(false)
		}
	}
}

// Progress returns the linear progress in [0, 1] of the most recent track
// for n, and false if n has never been animated.
func (p *Player) Progress(n scene.Node) (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.tracks) - 1; i >= 0; i-- {
		if p.tracks[i].node == n {
			return p.progressLocked(p.tracks[i]), true
		}
	}
	return 0, false
}

// State returns a copy of n's props read under the player's lock, and false
// if n has none.
func (p *Player) State(n scene.Node) (scene.Props, bool) {
	props := propsOf(n)
	if props == nil {
		return scene.Props{}, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return *props, true
}

// Elapsed returns the current clock.
func (p *Player) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clock
}

// End returns the clock time at which the last track finishes.
func (p *Player) End() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	var end time.Duration
	for _, tr := range p.tracks {
		end = max(end, tr.start+p.Duration)
	}
	return end
}

// Done reports whether no track is pending or running.
func (p *Player) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, tr := range p.tracks {
		if tr.state == trackPending || tr.state == trackRunning {
			return false
		}
	}
	return true
}

func (p *Player) progressLocked(tr *track) float64 {
	if tr.state == trackFinished {
		return 1
	}
	if p.clock < tr.start {
		return 0
	}
	if p.Duration <= 0 {
		return 1
	}
	return clamp01(float64(p.clock-tr.start) / float64(p.Duration))
}

func (p *Player) ease() Easing {
	if p.Easing == nil {
		return Linear
	}
	return p.Easing
}
