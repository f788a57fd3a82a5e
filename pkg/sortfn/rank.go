package sortfn

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/matzehuels/cascade/pkg/geom"
	"github.com/matzehuels/cascade/pkg/scene"
)

// keyed measures every reference point against anchor.
func keyed(views []scene.Subview, anchor geom.Point, measure func(geom.Point, geom.Point) float64) []float64 {
	keys := make([]float64, len(views))
	for i, v := range views {
		keys[i] = measure(anchor, v.Point)
	}
	return keys
}

func indexKeys(n int) []float64 {
	keys := make([]float64, n)
	for i := range keys {
		keys[i] = float64(i)
	}
	return keys
}

// shuffled returns a uniformly random permutation of 0..n-1 as sort keys.
func shuffled(n int, seed uint64) []float64 {
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	keys := indexKeys(n)
	rng.Shuffle(n, func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	return keys
}

// ranked stable-sorts views by key and assigns rank × Delay. Reversed
// assigns (n-1-rank) × Delay. The result is in ascending delay order.
func (f Func) ranked(views []scene.Subview, keys []float64) []TimedElement {
	order := make([]int, len(views))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return keys[order[a]] < keys[order[b]] })

	n := len(order)
	out := make([]TimedElement, n)
	for rank, idx := range order {
		slot := rank
		if f.Reversed {
			slot = n - 1 - rank
		}
		out[slot] = TimedElement{
			Element: views[idx].Node,
			Point:   views[idx].Point,
			Offset:  time.Duration(slot) * f.Delay,
		}
	}
	return out
}
