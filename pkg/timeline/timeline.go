// Package timeline is the serializable result of running a sort function
// over a scene: every animated element with its absolute frame, its parent
// and its start offset.
//
// Timelines are what the pipeline caches and what every renderer consumes,
// so an artifact can be produced without recomputing the schedule.
package timeline

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/cascade/pkg/geom"
	"github.com/matzehuels/cascade/pkg/scene"
	"github.com/matzehuels/cascade/pkg/sortfn"
)

// Entry is one timed element.
type Entry struct {
	ID     string  `json:"id"`
	Parent string  `json:"parent,omitempty"`
	Level  int     `json:"level"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// OffsetMS is the start delay in milliseconds.
	OffsetMS float64 `json:"offset_ms"`
}

// Delay returns the start offset as a duration.
func (e Entry) Delay() time.Duration {
	return time.Duration(math.Round(e.OffsetMS * float64(time.Millisecond)))
}

// Center returns the entry's reference point.
func (e Entry) Center() geom.Point {
	return geom.Rect{X: e.X, Y: e.Y, W: e.Width, H: e.Height}.Center()
}

// Timeline is a computed schedule for one scene.
type Timeline struct {
	ID      string  `json:"id"`
	Scene   string  `json:"scene"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Sort    string  `json:"sort"`
	Kind    string  `json:"kind"`
	Depth   int     `json:"depth"`
	SpanMS  float64 `json:"span_ms"`
	Entries []Entry `json:"entries"`
}

// Build runs fn over root and records the result. Entries appear in the
// order fn returns them. A degenerate layout yields a timeline with no
// entries.
func Build(root scene.Node, fn sortfn.SortFunction, depth int) *Timeline {
	size := scene.Bounds(root)
	t := &Timeline{
		ID:      uuid.NewString(),
		Scene:   scene.Label(root, "scene"),
		Width:   size.W,
		Height:  size.H,
		Sort:    describe(fn),
		Kind:    kindOf(fn),
		Depth:   max(depth, 0),
		Entries: []Entry{},
	}

	info := index(root, depth)
	timed := fn.TimeOffsets(root, depth)
	for i, te := range timed {
		meta := info[te.Element]
		frame := te.Element.Frame()
		t.Entries = append(t.Entries, Entry{
			ID:       scene.Label(te.Element, fmt.Sprintf("element-%d", i)),
			Parent:   meta.parent,
			Level:    meta.level,
			X:        te.Point.X - frame.W/2,
			Y:        te.Point.Y - frame.H/2,
			Width:    frame.W,
			Height:   frame.H,
			OffsetMS: millis(te.Offset),
		})
	}
	t.SpanMS = millis(sortfn.Span(timed))
	return t
}

// Span returns the largest start offset.
func (t *Timeline) Span() time.Duration {
	return time.Duration(math.Round(t.SpanMS * float64(time.Millisecond)))
}

// Len returns the number of entries.
func (t *Timeline) Len() int { return len(t.Entries) }

// Write encodes t as indented JSON.
func (t *Timeline) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// Read decodes a timeline written by Write.
func Read(r io.Reader) (*Timeline, error) {
	var t Timeline
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode timeline: %w", err)
	}
	return &t, nil
}

type nodeInfo struct {
	parent string
	level  int
}

// index records the parent label and nesting level of every node the
// traversal can reach.
func index(root scene.Node, depth int) map[scene.Node]nodeInfo {
	out := make(map[scene.Node]nodeInfo)
	var walk func(n scene.Node, parent string, level int)
	walk = func(n scene.Node, parent string, level int) {
		for i, c := range n.Children() {
			out[c] = nodeInfo{parent: parent, level: level}
			if level < depth {
				walk(c, scene.Label(c, fmt.Sprintf("%s/%d", parent, i)), level+1)
			}
		}
	}
	walk(root, "", 0)
	return out
}

func describe(fn sortfn.SortFunction) string {
	if s, ok := fn.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", fn)
}

func kindOf(fn sortfn.SortFunction) string {
	if f, ok := fn.(sortfn.Func); ok {
		return f.Kind.String()
	}
	return "custom"
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
