package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cascade/pkg/errors"
	"github.com/matzehuels/cascade/pkg/render"
	"github.com/matzehuels/cascade/pkg/render/nodelink"
	"github.com/matzehuels/cascade/pkg/render/sink"
	"github.com/matzehuels/cascade/pkg/timeline"
)

// Render produces every format in opts.Formats. Formats are rendered
// concurrently; the first failure cancels the rest.
func Render(ctx context.Context, tl *timeline.Timeline, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := renderFormat(gctx, tl, format, &opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, tl *timeline.Timeline, format string, opts *Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(tl, opts.svgOptions()...), nil
	case FormatJSON:
		return sink.RenderJSON(tl)
	case FormatDOT:
		return []byte(nodelink.ToDOT(tl, opts.treeOptions())), nil
	case FormatTree:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(tl, opts.treeOptions()))
	case FormatPNG:
		data, err := sink.RenderPNG(ctx, tl, opts.Scale, opts.svgOptions()...)
		return data, converterError(err)
	case FormatPDF:
		data, err := sink.RenderPDF(ctx, tl, opts.svgOptions()...)
		return data, converterError(err)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
}

func converterError(err error) error {
	if stderrors.Is(err, render.ErrNoConverter) {
		return errors.Wrap(errors.ErrCodeUnsupported, err, "raster output unavailable")
	}
	return err
}

func (o *Options) treeOptions() nodelink.Options {
	return nodelink.Options{Detailed: o.Detailed, LeftToRight: o.LeftToRight}
}
