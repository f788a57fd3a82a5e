package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cascade/pkg/render"
	"github.com/matzehuels/cascade/pkg/timeline"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the element frame to each label.
	Detailed bool
	// LeftToRight lays the tree out horizontally.
	LeftToRight bool
}

// ToDOT converts tl to Graphviz DOT source. The scene itself is the root
// node; elements without a recorded parent hang off it.
func ToDOT(tl *timeline.Timeline, opts Options) string {
	rankdir := "TB"
	if opts.LeftToRight {
		rankdir = "LR"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	root := rootID(tl)
	fmt.Fprintf(&buf, "  %q [label=%q, shape=folder, fillcolor=lightgrey];\n", root, tl.Scene+"\n"+tl.Sort)

	span := tl.SpanMS
	for _, e := range tl.Entries {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", e.ID, label(e, opts.Detailed), shade(e.OffsetMS, span))
	}

	buf.WriteString("\n")
	for _, e := range tl.Entries {
		parent := e.Parent
		if parent == "" {
			parent = root
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", parent, e.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func rootID(tl *timeline.Timeline) string {
	return "scene:" + tl.Scene
}

func label(e timeline.Entry, detailed bool) string {
	head := fmt.Sprintf("%s\n+%s", e.ID, e.Delay())
	if !detailed {
		return head
	}
	return head + fmt.Sprintf("\n(%g, %g) %gx%g", e.X, e.Y, e.Width, e.Height)
}

// shade maps an offset onto a white-to-blue ramp.
func shade(offset, span float64) string {
	t := 0.0
	if span > 0 {
		t = min(max(offset/span, 0), 1)
	}
	r := int(255 - t*(255-59))
	g := int(255 - t*(255-130))
	b := int(255 - t*(255-246))
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// unitless one so the diagram scales with its container.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders DOT source as PDF.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT source as PNG at the given scale.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

// Summary lists entries in start order as "offset id" lines.
func Summary(tl *timeline.Timeline) string {
	var sb strings.Builder
	for _, e := range tl.Entries {
		fmt.Fprintf(&sb, "%8s  %s\n", e.Delay(), e.ID)
	}
	return sb.String()
}
