// Package pipeline turns a scene and a sort-function configuration into a
// timeline and its rendered artifacts.
//
// It is shared by the CLI and the HTTP server so both resolve defaults,
// validate input and use the cache the same way.
//
// # Stages
//
//  1. Schedule: run the sort function over the scene, producing a
//     [timeline.Timeline]
//  2. Render: turn the timeline into artifacts (svg, json, dot, tree, png, pdf)
//
// Both stages are cached independently: a timeline under a hash of the scene
// and the sort options, each artifact under a hash of the timeline and the
// render options.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, root, pipeline.Options{
//	    Sort:      "radial",
//	    Position:  "middle",
//	    Delay:     pipeline.DurationPtr(40 * time.Millisecond),
//	    Formats:   []string{"svg", "json"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cascade/pkg/animate"
	"github.com/matzehuels/cascade/pkg/cache"
	"github.com/matzehuels/cascade/pkg/errors"
	"github.com/matzehuels/cascade/pkg/geom"
	"github.com/matzehuels/cascade/pkg/render/sink"
	"github.com/matzehuels/cascade/pkg/sortfn"
	"github.com/matzehuels/cascade/pkg/timeline"
	"github.com/matzehuels/cascade/pkg/validate"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSort is the sort function used when none is named.
	DefaultSort = "linear"

	// DefaultDelay is the per-rank step of rank-based functions.
	DefaultDelay = animate.DefaultDelay

	// DefaultSpan is the total duration of continuous functions.
	DefaultSpan = time.Second

	// DefaultAnimationDuration is the length of each element's animation.
	DefaultAnimationDuration = animate.DefaultDuration

	// DefaultEasing is the easing curve name.
	DefaultEasing = "ease-out"

	// DefaultScale is the PNG scale factor.
	DefaultScale = sink.DefaultScale
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatTree = "tree"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatJSON, FormatDOT, FormatTree, FormatPNG, FormatPDF}

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run. The HTTP layer converts from
// milliseconds.
//
// Delay and Duration are pointers so an explicit zero, where every element
// starts at once, differs from unset. Nil takes DefaultDelay or DefaultSpan.
type Options struct {
	// Sort options
	Sort             string         `validate:"omitempty"`
	Depth            int            `validate:"gte=0"`
	Delay            *time.Duration `validate:"omitempty,gte=0"`
	Duration         *time.Duration `validate:"omitempty,gte=0"`
	Reversed         bool
	Direction        string `validate:"omitempty,direction"`
	Corner           string `validate:"omitempty,corner"`
	Position         string `validate:"omitempty,position"`
	HorizontalWeight string `validate:"omitempty,weight"`
	VerticalWeight   string `validate:"omitempty,weight"`
	Seed             uint64

	// Render options
	Formats           []string
	Animations        []string
	Easing            string
	AnimationDuration time.Duration `validate:"gte=0"`
	Labels            bool
	Theme             string
	Scale             float64 `validate:"gte=0"`
	Detailed          bool
	// LeftToRight lays dot and tree output out horizontally.
	LeftToRight bool

	// Refresh bypasses cached timelines.
	Refresh bool

	Logger *log.Logger

	kind      sortfn.Kind
	stocks    []animate.Stock
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Timeline  *timeline.Timeline
	SceneHash string
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing and size information.
type Stats struct {
	Elements     int
	Timed        int
	ScheduleTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	TimelineHit bool
	RenderHit   bool
}

// =============================================================================
// Validation
// =============================================================================

// ValidateAndSetDefaults checks every field and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSchedule(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForSchedule checks the sort options and applies their defaults.
func (o *Options) ValidateForSchedule() error {
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", validate.Message(err))
	}
	if o.Sort == "" {
		o.Sort = DefaultSort
	}
	kind, ok := sortfn.ParseKind(o.Sort)
	if !ok {
		return errors.New(errors.ErrCodeInvalidFunction,
			"unknown sort function %q (want one of %s)", o.Sort, strings.Join(sortfn.KindNames(), ", "))
	}
	o.kind = kind
	o.Sort = kind.String()

	if o.Delay == nil {
		o.Delay = DurationPtr(DefaultDelay)
	}
	if o.Duration == nil {
		o.Duration = DurationPtr(DefaultSpan)
	}
	o.setLogger()
	return nil
}

// ValidateForRender checks the render options and applies their defaults.
func (o *Options) ValidateForRender() error {
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", validate.Message(err))
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	formats := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		if err := errors.ValidateFormat(f, Formats); err != nil {
			return err
		}
		formats = append(formats, strings.ToLower(f))
	}
	o.Formats = slices.Compact(formats)

	if len(o.Animations) == 0 {
		o.Animations = []string{"fade"}
	}
	stocks, err := animate.ParseStocks(o.Animations)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "animations")
	}
	o.stocks = stocks

	if o.Easing == "" {
		o.Easing = DefaultEasing
	}
	if _, ok := animate.ParseEasing(o.Easing); !ok {
		return errors.New(errors.ErrCodeInvalidInput,
			"unknown easing %q (want one of %s)", o.Easing, strings.Join(animate.EasingNames(), ", "))
	}
	if o.AnimationDuration == 0 {
		o.AnimationDuration = DefaultAnimationDuration
	}
	if o.Theme == "" {
		o.Theme = sink.DefaultTheme
	}
	if _, ok := sink.LookupTheme(o.Theme); !ok {
		return errors.New(errors.ErrCodeInvalidInput,
			"unknown theme %q (want one of %s)", o.Theme, strings.Join(sink.ThemeNames(), ", "))
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
	return nil
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// =============================================================================
// Derived values
// =============================================================================

// Func builds the sort function the options describe. Call
// ValidateForSchedule first; unparsed anchor names fall back to defaults.
func (o *Options) Func() sortfn.Func {
	dir, _ := geom.ParseDirection(o.Direction)
	corner, _ := geom.ParseCorner(o.Corner)
	pos, _ := geom.ParsePosition(o.Position)
	h, _ := geom.ParseWeight(o.HorizontalWeight)
	v, _ := geom.ParseWeight(o.VerticalWeight)

	delay, duration := deref(o.Delay), deref(o.Duration)

	var fn sortfn.Func
	switch o.kind {
	case sortfn.KindLinear:
		fn = sortfn.Linear(dir, delay)
	case sortfn.KindCornered:
		fn = sortfn.Cornered(corner, delay)
	case sortfn.KindRadial:
		fn = sortfn.Radial(pos, delay)
	case sortfn.KindInline:
		fn = sortfn.Inline(corner, delay)
	case sortfn.KindContinuous:
		fn = sortfn.Continuous(pos, duration)
	case sortfn.KindWeighted:
		fn = sortfn.ContinuousWeighted(pos, duration, h, v)
	case sortfn.KindRandom:
		fn = sortfn.Random(delay, o.Seed)
	default:
		fn = sortfn.Default(delay)
	}
	if o.Reversed {
		fn = fn.Reverse()
	}
	return fn
}

// DurationPtr returns a pointer to d, for setting Options.Delay and
// Options.Duration explicitly.
func DurationPtr(d time.Duration) *time.Duration { return &d }

func deref(d *time.Duration) time.Duration {
	if d == nil {
		return 0
	}
	return *d
}

// Stocks returns the parsed stock animations.
func (o *Options) Stocks() []animate.Stock { return o.stocks }

// Cacheable reports whether the timeline is deterministic. Random functions
// without a seed draw fresh entropy on every call.
func (o *Options) Cacheable() bool {
	return o.kind != sortfn.KindRandom || o.Seed != 0
}

// TimelineKeyOpts returns cache key options for scheduling.
func (o *Options) TimelineKeyOpts() cache.TimelineKeyOpts {
	fn := o.Func()
	return cache.TimelineKeyOpts{
		Sort:     fn.Kind.String(),
		Depth:    o.Depth,
		Delay:    int64(fn.Delay),
		Duration: int64(fn.Duration),
		Reversed: fn.Reversed,
		Anchor:   fn.String(),
		Weights:  fn.HorizontalWeight.String() + "/" + fn.VerticalWeight.String(),
		Seed:     fn.Seed,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	anims := make([]string, len(o.stocks))
	for i, s := range o.stocks {
		anims[i] = s.String()
	}
	if format == FormatPNG {
		format += "@" + strconv.FormatFloat(o.Scale, 'g', -1, 64)
	}
	return cache.ArtifactKeyOpts{
		Format:     format,
		Animations: anims,
		Easing:     o.Easing + "/" + o.Theme,
		Duration:   int64(o.AnimationDuration),
		Labels:     o.Labels,
		Detailed:   o.Detailed,
		Horizontal: o.LeftToRight,
	}
}

func (o *Options) svgOptions() []sink.SVGOption {
	opts := []sink.SVGOption{
		sink.WithAnimations(o.stocks...),
		sink.WithDuration(o.AnimationDuration),
		sink.WithEasing(o.Easing),
		sink.WithTheme(o.Theme),
	}
	if o.Labels {
		opts = append(opts, sink.WithLabels())
	}
	return opts
}
