// Package pkg holds the cascade libraries.
//
// # Overview
//
// Cascade staggers the entrance of the elements of a nested layout. A sort
// function looks at where each element sits and decides when its animation
// starts; an animation engine then plays one animation per element and
// reports once all of them have settled.
//
//  1. [geom] - points, sizes, anchors and directions
//  2. [scene] - the element tree, scene files and generated grids
//  3. [sortfn] - the sort functions (default, linear, cornered, radial,
//     inline, continuous, weighted, random)
//  4. [animate] - engines, stock animations, scheduling and a manual-clock
//     player
//  5. [timeline] - a serialisable record of one schedule
//  6. [pipeline] - validation, caching and rendering shared by CLI and server
//
// # Data Flow
//
//	scene file / grid
//	       ↓
//	  [scene] package (element tree)
//	       ↓
//	  [sortfn] package (timed elements)
//	       ↓
//	  [animate] package (engine)  or  [timeline] → [render/sink] (SVG, JSON, PNG, PDF)
//
// # Quick Start
//
//	root, _ := scene.Load("login.yaml")
//	fn := sortfn.Radial(geom.Middle, 40*time.Millisecond)
//	for _, te := range fn.TimeOffsets(root, 0) {
//	    fmt.Println(scene.Label(te.Element, "?"), te.Offset)
//	}
package pkg
