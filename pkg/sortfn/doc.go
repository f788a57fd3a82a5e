// Package sortfn computes per-element animation delays from the geometry of
// a container's elements.
//
// A sort function flattens a container with [scene.Subviews], measures each
// element's reference point against an anchor, and returns one
// [TimedElement] per element. Two timing models exist:
//
//   - Rank based (default, linear, cornered, radial, inline, random): the
//     elements are ordered by a key and the element at rank r starts after
//     r × Delay. Ties keep traversal order. Results are returned in
//     ascending delay order.
//   - Continuous (continuous, weighted): each element's offset is its
//     distance normalised into [0, Duration]. Results keep traversal order.
//     A degenerate layout (no spread to normalise by) yields an empty
//     result, which callers treat as nothing to animate.
//
// All variants are represented by the single [Func] value; its Kind selects
// the arm of one dispatch in [Func.Offsets]. Functions are pure and hold no
// state between calls, so a Func may be shared between goroutines.
//
// # Example
//
//	fn := sortfn.Radial(geom.Middle, 50*time.Millisecond)
//	for _, te := range fn.TimeOffsets(root, 0) {
//	    fmt.Println(te.Element, te.Offset)
//	}
package sortfn
