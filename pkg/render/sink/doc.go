// Package sink writes timelines in their output formats.
//
// [RenderSVG] produces a self-contained animated SVG: each element is a
// group that runs one shared @keyframes rule, offset by its own
// animation-delay. The keyframes start from the state the configured stock
// animations prepare (transparent, slid, rotated, scaled) and end at
// identity, mirroring what the animate package does at runtime.
//
// [RenderJSON] writes the timeline itself. [RenderPNG] and [RenderPDF]
// convert the SVG with rsvg-convert.
package sink
