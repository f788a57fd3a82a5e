package animate

import (
	"time"

	"github.com/matzehuels/cascade/pkg/geom"
	"github.com/matzehuels/cascade/pkg/scene"
	"github.com/matzehuels/cascade/pkg/sortfn"
)

const (
	// DefaultDelay separates consecutive elements in Up.
	DefaultDelay = 50 * time.Millisecond
	// DefaultDuration is the length of one element's animation.
	DefaultDuration = 300 * time.Millisecond
)

// DefaultSort is the ordering Up uses when none is given.
func DefaultSort() sortfn.Func {
	return sortfn.Linear(geom.TopToBottom, DefaultDelay)
}

// Up prepares the direct children of root for the given stock animations
// and then animates them back to identity. A nil fn uses DefaultSort.
func Up(e Engine, root scene.Node, stocks []Stock, fn sortfn.SortFunction, done Completion) {
	if fn == nil {
		fn = DefaultSort()
	}
	Prepare(root, 0, stocks...)
	Container(e, root, fn, Compose(stocks...), 0, done)
}
