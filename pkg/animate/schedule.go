package animate

import (
	"sync"
	"sync/atomic"

	"github.com/matzehuels/cascade/pkg/scene"
	"github.com/matzehuels/cascade/pkg/sortfn"
)

// Schedule starts one animation per timed element and calls done exactly
// once after all of them have reported. done receives false if any element
// reported an interruption. With no elements done(true) is called before
// Schedule returns.
//
// Requests are issued in a single pass without waiting between them. The
// engine may call the per-element completions from any goroutine; a second
// report for the same element is ignored.
func Schedule(e Engine, timed []sortfn.TimedElement, change ChangeFunc, done Completion) {
	if done == nil {
		done = func(bool) {}
	}
	if len(timed) == 0 {
		done(true)
		return
	}

	var (
		remaining atomic.Int64
		failed    atomic.Bool
	)
	remaining.Store(int64(len(timed)))

	for _, te := range timed {
		var once sync.Once
		e.Animate(te.Element, te.Offset, change, func(finished bool) {
			once.Do(func() {
				if !finished {
					failed.Store(true)
				}
				if remaining.Add(-1) == 0 {
					done(!failed.Load())
				}
			})
		})
	}
}

// Container animates the elements below root in the order fn gives them.
// depth is passed to the traversal (0 animates direct children only).
func Container(e Engine, root scene.Node, fn sortfn.SortFunction, change ChangeFunc, depth int, done Completion) {
	Schedule(e, fn.TimeOffsets(root, depth), change, done)
}
