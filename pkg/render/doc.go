// Package render turns timelines into artifacts.
//
//   - [sink]: timeline JSON, an animated SVG in which every element runs
//     the same CSS keyframes after its own delay, and PNG/PDF snapshots
//   - [nodelink]: a Graphviz tree of the scene hierarchy annotated with
//     start offsets
//
// The [ToPDF] and [ToPNG] helpers convert any SVG with the external
// rsvg-convert tool (librsvg). CSS animations are not evaluated during
// conversion, so raster and PDF output show the settled final frame.
//
// [sink]: github.com/matzehuels/cascade/pkg/render/sink
// [nodelink]: github.com/matzehuels/cascade/pkg/render/nodelink
package render
