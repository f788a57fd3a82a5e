package scene

import "github.com/matzehuels/cascade/pkg/geom"

// Subview pairs an element with its reference point: the centre of its
// frame expressed in the root's coordinate space.
type Subview struct {
	Node  Node
	Point geom.Point
}

// Subviews flattens the tree below root into a fresh slice.
//
// Depth 0 yields the direct children of root in native order. Each
// additional level of depth includes one more generation, with every child
// immediately followed by its own descendants (pre-order). Reference points
// accumulate ancestor frame origins, so a grandchild at (5,5) inside a child
// at (100,0) reports its centre relative to (105,5). Negative depth is
// treated as 0.
func Subviews(root Node, depth int) []Subview {
	if root == nil {
		return nil
	}
	if depth < 0 {
		depth = 0
	}
	var out []Subview
	collect(root, geom.Point{}, depth, &out)
	return out
}

func collect(parent Node, origin geom.Point, depth int, out *[]Subview) {
	for _, child := range parent.Children() {
		frame := child.Frame()
		*out = append(*out, Subview{
			Node:  child,
			Point: frame.Center().Add(origin),
		})
		if depth > 0 {
			collect(child, origin.Add(frame.Origin()), depth-1, out)
		}
	}
}

// Bounds returns the size of root's frame, the space anchors resolve in.
func Bounds(root Node) geom.Size {
	if root == nil {
		return geom.Size{}
	}
	return root.Frame().Size()
}
