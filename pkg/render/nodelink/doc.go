// Package nodelink draws a timeline as a Graphviz tree.
//
// Every timed element becomes a box labelled with its start offset, and
// edges follow the scene hierarchy from container to child. Boxes are
// shaded by start time, so the order a sort function produces can be read
// without playing the animation.
//
//	dot := nodelink.ToDOT(tl, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// SVG rendering runs Graphviz in-process through
// [github.com/goccy/go-graphviz]. PDF and PNG go through rsvg-convert.
package nodelink
