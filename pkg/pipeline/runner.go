package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cascade/pkg/cache"
	"github.com/matzehuels/cascade/pkg/observability"
	"github.com/matzehuels/cascade/pkg/scene"
	"github.com/matzehuels/cascade/pkg/timeline"
)

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner can serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses the default keyer and a nil logger uses the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute schedules root and renders the requested formats.
func (r *Runner) Execute(ctx context.Context, root *scene.Box, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{SceneHash: SceneHash(root)}
	result.Stats.Elements = len(scene.Subviews(root, opts.Depth))

	start := time.Now()
	tl, hit, err := r.ScheduleWithCacheInfo(ctx, root, opts)
	if err != nil {
		return nil, fmt.Errorf("schedule: %w", err)
	}
	result.Timeline = tl
	result.Stats.Timed = tl.Len()
	result.Stats.ScheduleTime = time.Since(start)
	result.CacheInfo.TimelineHit = hit

	r.Logger.Info("computed schedule",
		"sort", tl.Sort,
		"elements", result.Stats.Elements,
		"timed", tl.Len(),
		"span", tl.Span(),
		"cached", hit)

	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, tl, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime,
		"cached", hit)

	return result, nil
}

// ScheduleWithCacheInfo computes the timeline of root and reports whether
// it came from the cache.
func (r *Runner) ScheduleWithCacheInfo(ctx context.Context, root *scene.Box, opts Options) (*timeline.Timeline, bool, error) {
	if err := opts.ValidateForSchedule(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	fn := opts.Func()
	elements := len(scene.Subviews(root, opts.Depth))
	hooks.OnScheduleStart(ctx, fn.String(), elements)
	start := time.Now()

	cacheable := opts.Cacheable()
	key := r.Keyer.TimelineKey(SceneHash(root), opts.TimelineKeyOpts())

	if cacheable && !opts.Refresh {
		if tl, ok := r.cachedTimeline(ctx, key); ok {
			hooks.OnScheduleComplete(ctx, fn.String(), tl.Len(), time.Since(start), nil)
			return tl, true, nil
		}
	}

	tl := timeline.Build(root, fn, opts.Depth)
	hooks.OnScheduleComplete(ctx, fn.String(), tl.Len(), time.Since(start), nil)

	if cacheable {
		var buf bytes.Buffer
		if err := tl.Write(&buf); err == nil {
			if err := r.Cache.Set(ctx, key, buf.Bytes(), cache.TimelineTTL); err != nil {
				r.Logger.Warn("cache write failed", "key", key, "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "timeline", buf.Len())
			}
		}
	}
	return tl, false, nil
}

func (r *Runner) cachedTimeline(ctx context.Context, key string) (*timeline.Timeline, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "timeline")
		return nil, false
	}
	tl, err := timeline.Read(bytes.NewReader(data))
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, "timeline")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "timeline")
	return tl, true
}

// Schedule is ScheduleWithCacheInfo without the hit flag.
func (r *Runner) Schedule(ctx context.Context, root *scene.Box, opts Options) (*timeline.Timeline, error) {
	tl, _, err := r.ScheduleWithCacheInfo(ctx, root, opts)
	return tl, err
}

// RenderWithCacheInfo renders tl in every requested format and reports
// whether all artifacts came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, tl *timeline.Timeline, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hash := TimelineHash(tl)
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format)))
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			break
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, tl, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Render is RenderWithCacheInfo without the hit flag.
func (r *Runner) Render(ctx context.Context, tl *timeline.Timeline, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, tl, opts)
	return artifacts, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// SceneHash returns a content hash of the scene geometry.
func SceneHash(root *scene.Box) string {
	data, err := scene.Marshal(root, scene.FormatJSON)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

// TimelineHash hashes the parts of tl that affect rendering. The random
// timeline ID is left out so equal schedules share artifacts.
func TimelineHash(tl *timeline.Timeline) string {
	data, _ := json.Marshal(struct {
		Scene   string
		Width   float64
		Height  float64
		Sort    string
		Entries []timeline.Entry
	}{tl.Scene, tl.Width, tl.Height, tl.Sort, tl.Entries})
	return cache.Hash(data)
}
