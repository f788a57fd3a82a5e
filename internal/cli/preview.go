package cli

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	progressbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cascade/pkg/animate"
	"github.com/matzehuels/cascade/pkg/scene"
	"github.com/matzehuels/cascade/pkg/sortfn"
)

const (
	previewCols = 64
	previewRows = 20
)

// shades goes from not started to settled.
var shades = []rune{'·', '░', '▒', '▓', '█'}

var levelColors = []lipgloss.Color{colorBlue, colorYellow, colorGreen, colorRed}

// previewCommand plays a schedule in the terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		sf      sortFlags
		rf      renderFlags
		speed   float64
		noInput bool
	)
	cmd := &cobra.Command{
		Use:   "preview [scene]",
		Short: "Play a schedule in the terminal",
		Long: `Play the animation of a scene in the terminal. Each element is drawn as a
block that fills in as its animation progresses. Press q to stop early;
stopping interrupts every running animation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := sf.loadScene(args)
			if err != nil {
				return err
			}
			opts, err := c.options(cmd, &sf, &rf)
			if err != nil {
				return err
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			easing, _ := animate.ParseEasing(opts.Easing)
			duration := time.Duration(float64(opts.AnimationDuration) / max(speed, 0.01))

			pv := newPreview(root, opts.Func(), opts.Depth, animate.NewPlayer(duration, easing), opts.Stocks())
			finished, err := pv.play(cmd.Context(), noInput)
			if err != nil {
				return err
			}
			if finished {
				printSuccess("Animation finished: %d elements", pv.timedCount())
			} else {
				printWarning("Animation interrupted")
			}
			return nil
		},
	}
	sf.register(cmd)
	rf.register(cmd)
	cmd.Flags().Float64Var(&speed, "speed", 1, "playback speed multiplier for each element's animation")
	cmd.Flags().BoolVar(&noInput, "no-input", false, "do not read keys (for non-interactive terminals)")
	return cmd
}

// =============================================================================
// Preview state
// =============================================================================

type previewCell struct {
	node  scene.Node
	rect  [4]int // col, row, width, height in terminal cells
	level int
}

type preview struct {
	title  string
	player *animate.Player
	cells  []previewCell
	timed  []sortfn.TimedElement
	root   scene.Node
	depth  int
	stocks []animate.Stock
}

func newPreview(root *scene.Box, fn sortfn.SortFunction, depth int, player *animate.Player, stocks []animate.Stock) *preview {
	pv := &preview{
		title:  fmt.Sprintf("%s  %s", scene.Label(root, "scene"), fn),
		player: player,
		root:   root,
		depth:  depth,
		stocks: stocks,
	}
	pv.timed = fn.TimeOffsets(root, depth)
	pv.cells = layoutCells(root, pv.timed, previewCols, previewRows)
	return pv
}

func (pv *preview) timedCount() int { return len(pv.timed) }

// layoutCells maps element frames onto a cols×rows character grid.
func layoutCells(root scene.Node, timed []sortfn.TimedElement, cols, rows int) []previewCell {
	size := scene.Bounds(root)
	if size.W <= 0 || size.H <= 0 {
		return nil
	}
	sx, sy := float64(cols)/size.W, float64(rows)/size.H
	levels := levelsOf(root)

	cells := make([]previewCell, 0, len(timed))
	for _, te := range timed {
		f := te.Element.Frame()
		x0 := te.Point.X - f.W/2
		y0 := te.Point.Y - f.H/2
		col, row := int(math.Floor(x0*sx)), int(math.Floor(y0*sy))
		w := max(int(math.Round(f.W*sx)), 1)
		h := max(int(math.Round(f.H*sy)), 1)
		cells = append(cells, previewCell{node: te.Element, rect: [4]int{col, row, w, h}, level: levels[te.Element]})
	}
	return cells
}

func levelsOf(root scene.Node) map[scene.Node]int {
	out := make(map[scene.Node]int)
	var walk func(n scene.Node, level int)
	walk = func(n scene.Node, level int) {
		for _, c := range n.Children() {
			out[c] = level
			walk(c, level+1)
		}
	}
	walk(root, 0)
	return out
}

// shade picks the glyph for an animation progress in [0, 1].
func shade(p float64) rune {
	i := int(math.Round(p * float64(len(shades)-1)))
	return shades[min(max(i, 0), len(shades)-1)]
}

// frame draws every cell at its current progress. Deeper levels are drawn
// over their containers and hidden cells are skipped.
func (pv *preview) frame(cols, rows int) string {
	grid := make([][]rune, rows)
	color := make([][]int, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
		color[r] = make([]int, cols)
	}
	for _, cell := range pv.cells {
		if st, ok := pv.player.State(cell.node); ok && st.Hidden {
			continue
		}
		p, ok := pv.player.Progress(cell.node)
		if !ok {
			p = 0
		}
		g := shade(p)
		col, row, w, h := cell.rect[0], cell.rect[1], cell.rect[2], cell.rect[3]
		for y := max(row, 0); y < min(row+h, rows); y++ {
			for x := max(col, 0); x < min(col+w, cols); x++ {
				grid[y][x] = g
				color[y][x] = cell.level
			}
		}
	}

	var sb strings.Builder
	for r := range grid {
		for c, ch := range grid[r] {
			if ch == ' ' {
				sb.WriteRune(ch)
				continue
			}
			style := lipgloss.NewStyle().Foreground(levelColors[color[r][c]%len(levelColors)])
			sb.WriteString(style.Render(string(ch)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// stage hides every element and moves it into the starting state of the
// stocks. The returned change restores the element and reveals it, so
// elements stay blank until their track starts.
func (pv *preview) stage() animate.ChangeFunc {
	animate.HideAll(pv.root, pv.depth)
	animate.Prepare(pv.root, pv.depth, pv.stocks...)
	restore := animate.Compose(pv.stocks...)
	return func(n scene.Node) {
		restore(n)
		if a, ok := n.(animate.Animatable); ok {
			a.Props().Hidden = false
		}
	}
}

// play stages the scene, schedules it on the player and drives the
// player in real time while a bubbletea program draws it. It reports the
// aggregate completion.
func (pv *preview) play(ctx context.Context, noInput bool) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	result := make(chan bool, 1)
	animate.Schedule(pv.player, pv.timed, pv.stage(), func(finished bool) {
		result <- finished
	})

	m := newPreviewModel(pv, cancel)
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if noInput {
		opts = append(opts, tea.WithInput(nil))
	}
	prog := tea.NewProgram(m, opts...)

	go func() {
		err := animate.Run(ctx, pv.player, animate.DefaultTick, func() { prog.Send(frameMsg{}) })
		prog.Send(doneMsg{err: err})
	}()

	if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		return false, err
	}
	cancel()
	// Run interrupts the player on cancellation, which settles the aggregate.
	select {
	case finished := <-result:
		return finished, nil
	case <-time.After(time.Second):
		pv.player.Interrupt()
		return <-result, nil
	}
}

// =============================================================================
// Bubbletea model
// =============================================================================

type frameMsg struct{}

type doneMsg struct{ err error }

type previewKeys struct {
	Quit key.Binding
}

type previewModel struct {
	pv       *preview
	cancel   context.CancelFunc
	bar      progressbar.Model
	keys     previewKeys
	finished bool
}

func newPreviewModel(pv *preview, cancel context.CancelFunc) previewModel {
	bar := progressbar.New(progressbar.WithDefaultGradient())
	bar.Width = previewCols
	return previewModel{
		pv:     pv,
		cancel: cancel,
		bar:    bar,
		keys: previewKeys{
			Quit: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "stop")),
		},
	}
}

func (m previewModel) Init() tea.Cmd { return nil }

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.cancel()
			return m, tea.Quit
		}
	case frameMsg:
		return m, nil
	case doneMsg:
		m.finished = msg.err == nil
		return m, tea.Quit
	}
	return m, nil
}

func (m previewModel) View() string {
	end := m.pv.player.End()
	pct := 1.0
	if end > 0 {
		pct = min(float64(m.pv.player.Elapsed())/float64(end), 1)
	}
	var sb strings.Builder
	sb.WriteString(StyleTitle.Render(m.pv.title) + "\n\n")
	sb.WriteString(m.pv.frame(previewCols, previewRows))
	sb.WriteString("\n" + m.bar.ViewAs(pct) + "\n")
	sb.WriteString(StyleDim.Render(fmt.Sprintf("%s / %s  ·  %s",
		m.pv.player.Elapsed().Round(time.Millisecond), end.Round(time.Millisecond), m.keys.Quit.Help().Desc+": "+m.keys.Quit.Help().Key)) + "\n")
	return sb.String()
}
