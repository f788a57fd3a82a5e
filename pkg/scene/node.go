// Package scene models the host element tree that sort functions read.
//
// The cascade core only needs two capabilities from a host UI toolkit: the
// frame of an element in its parent's coordinate space, and its children in
// a stable order. [Node] captures exactly that. [Box] is an in-memory
// implementation used by the CLI, the HTTP API and tests, and carries the
// visual [Props] that the stock animations mutate.
package scene

import "github.com/matzehuels/cascade/pkg/geom"

// Node is a read-only view of one element in a host tree.
type Node interface {
	// Frame returns the element's rectangle in its parent's coordinates.
	Frame() geom.Rect
	// Children returns the element's children in native order. The order
	// must be the same on every call.
	Children() []Node
}

// Props holds the animatable visual state of a Box.
type Props struct {
	Alpha      float64 `json:"alpha"`
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
	Rotation   float64 `json:"rotation"`
	Scale      float64 `json:"scale"`
	Hidden     bool    `json:"hidden,omitempty"`
}

// Identity returns fully visible, untransformed properties.
func Identity() Props {
	return Props{Alpha: 1, Scale: 1}
}

// IsIdentity reports whether p equals Identity.
func (p Props) IsIdentity() bool { return p == Identity() }

// Box is an in-memory Node with a name and mutable visual properties.
type Box struct {
	Name  string
	Rect  geom.Rect
	Kids  []*Box
	props Props
}

// NewBox returns a box with identity properties.
func NewBox(name string, rect geom.Rect, kids ...*Box) *Box {
	return &Box{Name: name, Rect: rect, Kids: kids, props: Identity()}
}

// Frame implements Node.
func (b *Box) Frame() geom.Rect { return b.Rect }

// Children implements Node.
func (b *Box) Children() []Node {
	out := make([]Node, len(b.Kids))
	for i, k := range b.Kids {
		out[i] = k
	}
	return out
}

// Label returns the box name, used when rendering and logging.
func (b *Box) Label() string { return b.Name }

// Props returns a pointer to the box's visual properties.
func (b *Box) Props() *Props { return &b.props }

// Add appends children to the box and returns it.
func (b *Box) Add(kids ...*Box) *Box {
	b.Kids = append(b.Kids, kids...)
	return b
}

// Walk calls fn for b and every descendant in pre-order.
func (b *Box) Walk(fn func(*Box)) {
	fn(b)
	for _, k := range b.Kids {
		k.Walk(fn)
	}
}

// Count returns the number of descendants of b (b itself excluded).
func (b *Box) Count() int {
	n := 0
	for _, k := range b.Kids {
		n += 1 + k.Count()
	}
	return n
}

// Label returns a display name for any node: the Box name when available,
// otherwise the supplied fallback.
func Label(n Node, fallback string) string {
	if l, ok := n.(interface{ Label() string }); ok && l.Label() != "" {
		return l.Label()
	}
	return fallback
}
