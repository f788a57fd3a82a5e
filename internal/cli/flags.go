package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cascade/pkg/animate"
	cerrors "github.com/matzehuels/cascade/pkg/errors"
	"github.com/matzehuels/cascade/pkg/pipeline"
	"github.com/matzehuels/cascade/pkg/render/sink"
	"github.com/matzehuels/cascade/pkg/scene"
	"github.com/matzehuels/cascade/pkg/sortfn"
)

// =============================================================================
// Sort Flags
// =============================================================================

// sortFlags are shared by every command that computes a schedule. Only
// flags the user sets override the configuration file.
type sortFlags struct {
	grid      string
	sort      string
	depth     int
	delay     time.Duration
	duration  time.Duration
	reversed  bool
	direction string
	corner    string
	position  string
	hweight   string
	vweight   string
	seed      uint64
	noCache   bool
}

func (f *sortFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.grid, "grid", "", "generate a COLSxROWS grid scene instead of reading a file")
	fl.StringVarP(&f.sort, "sort", "s", "", "sort function: "+strings.Join(sortfn.KindNames(), ", "))
	fl.IntVarP(&f.depth, "depth", "d", 0, "how many levels below the root to animate (0 = direct children)")
	fl.DurationVar(&f.delay, "delay", 0, "delay between consecutive ranks (rank-based functions)")
	fl.DurationVar(&f.duration, "duration", 0, "total spread (continuous functions)")
	fl.BoolVarP(&f.reversed, "reverse", "r", false, "reverse the order")
	fl.StringVar(&f.direction, "direction", "", "linear sweep direction, e.g. left-to-right")
	fl.StringVar(&f.corner, "corner", "", "anchor corner for cornered/inline, e.g. bottom-right")
	fl.StringVar(&f.position, "position", "", "anchor position for radial/continuous/weighted, e.g. middle")
	fl.StringVar(&f.hweight, "horizontal-weight", "", "weighted: horizontal weight (light, medium, heavy)")
	fl.StringVar(&f.vweight, "vertical-weight", "", "weighted: vertical weight (light, medium, heavy)")
	fl.Uint64Var(&f.seed, "seed", 0, "random: shuffle seed (0 = fresh each run)")
	fl.BoolVar(&f.noCache, "no-cache", false, "bypass the cache")

	_ = cmd.RegisterFlagCompletionFunc("sort", fixedCompletion(sortfn.KindNames()))
}

func (f *sortFlags) apply(cmd *cobra.Command, o *pipeline.Options) {
	fl := cmd.Flags()
	if fl.Changed("sort") {
		o.Sort = f.sort
	}
	if fl.Changed("depth") {
		o.Depth = f.depth
	}
	if fl.Changed("delay") {
		o.Delay = pipeline.DurationPtr(f.delay)
	}
	if fl.Changed("duration") {
		o.Duration = pipeline.DurationPtr(f.duration)
	}
	if fl.Changed("reverse") {
		o.Reversed = f.reversed
	}
	if fl.Changed("direction") {
		o.Direction = f.direction
	}
	if fl.Changed("corner") {
		o.Corner = f.corner
	}
	if fl.Changed("position") {
		o.Position = f.position
	}
	if fl.Changed("horizontal-weight") {
		o.HorizontalWeight = f.hweight
	}
	if fl.Changed("vertical-weight") {
		o.VerticalWeight = f.vweight
	}
	if fl.Changed("seed") {
		o.Seed = f.seed
	}
}

// loadScene loads the scene named by args, or the generated grid.
func (f *sortFlags) loadScene(args []string) (*scene.Box, error) {
	switch {
	case f.grid != "" && len(args) > 0:
		return nil, cerrors.New(cerrors.ErrCodeInvalidInput, "--grid and a scene file are mutually exclusive")
	case f.grid != "":
		return pipeline.GridScene(f.grid)
	case len(args) == 0:
		return nil, cerrors.New(cerrors.ErrCodeInvalidInput, "a scene file or --grid is required")
	}
	return pipeline.LoadScene(args[0])
}

// =============================================================================
// Render Flags
// =============================================================================

type renderFlags struct {
	formats    []string
	animations []string
	easing     string
	animDur    time.Duration
	theme      string
	labels     bool
	detailed   bool
	horizontal bool
	scale      float64
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringSliceVarP(&f.formats, "format", "f", nil, "output format(s): "+strings.Join(pipeline.Formats, ", "))
	fl.StringSliceVarP(&f.animations, "animation", "a", nil, "stock animation(s), e.g. fade,slide:up:small,spin:large")
	fl.StringVar(&f.easing, "easing", "", "easing curve: "+strings.Join(animate.EasingNames(), ", "))
	fl.DurationVar(&f.animDur, "animation-duration", 0, "length of each element's animation")
	fl.StringVar(&f.theme, "theme", "", "colour theme: "+strings.Join(sink.ThemeNames(), ", "))
	fl.BoolVar(&f.labels, "labels", false, "label elements with their id and offset")
	fl.BoolVar(&f.detailed, "detailed", false, "include element frames in dot/tree output")
	fl.BoolVar(&f.horizontal, "left-to-right", false, "lay dot/tree output out left to right")
	fl.Float64Var(&f.scale, "scale", 0, fmt.Sprintf("png scale factor (default %g)", pipeline.DefaultScale))

	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(pipeline.Formats))
	_ = cmd.RegisterFlagCompletionFunc("easing", fixedCompletion(animate.EasingNames()))
	_ = cmd.RegisterFlagCompletionFunc("theme", fixedCompletion(sink.ThemeNames()))
}

func (f *renderFlags) apply(cmd *cobra.Command, o *pipeline.Options) {
	fl := cmd.Flags()
	if fl.Changed("format") {
		o.Formats = f.formats
	}
	if fl.Changed("animation") {
		o.Animations = f.animations
	}
	if fl.Changed("easing") {
		o.Easing = f.easing
	}
	if fl.Changed("animation-duration") {
		o.AnimationDuration = f.animDur
	}
	if fl.Changed("theme") {
		o.Theme = f.theme
	}
	if fl.Changed("labels") {
		o.Labels = f.labels
	}
	if fl.Changed("scale") {
		o.Scale = f.scale
	}
	o.Detailed = f.detailed
	o.LeftToRight = f.horizontal
}

func fixedCompletion(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// options merges the configuration file with the flags the user set.
func (c *CLI) options(cmd *cobra.Command, sf *sortFlags, rf *renderFlags) (pipeline.Options, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := cfg.PipelineOptions()
	if sf != nil {
		sf.apply(cmd, &opts)
		opts.Refresh = sf.noCache
	}
	if rf != nil {
		rf.apply(cmd, &opts)
	}
	opts.Logger = c.Logger
	return opts, nil
}
