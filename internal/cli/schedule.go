package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cascade/pkg/render/nodelink"
	"github.com/matzehuels/cascade/pkg/timeline"
)

// scheduleCommand prints the timeline of one scene.
func (c *CLI) scheduleCommand() *cobra.Command {
	var (
		sf      sortFlags
		asJSON  bool
		summary bool
	)
	cmd := &cobra.Command{
		Use:   "schedule [scene]",
		Short: "Print the start offset of every element",
		Long: `Run a sort function over a scene and print when each element starts.

Scenes are JSON, YAML or TOML files, or a generated grid:

  cascade schedule login.yaml --sort radial --position middle --delay 40ms
  cascade schedule --grid 6x4 --sort weighted --horizontal-weight heavy`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := sf.loadScene(args)
			if err != nil {
				return err
			}
			opts, err := c.options(cmd, &sf, nil)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), sf.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			tl, hit, err := runner.ScheduleWithCacheInfo(cmd.Context(), root, opts)
			if err != nil {
				return err
			}
			switch {
			case asJSON:
				return tl.Write(cmd.OutOrStdout())
			case summary:
				_, err := fmt.Fprint(cmd.OutOrStdout(), nodelink.Summary(tl))
				return err
			}
			printTimeline(tl, hit)
			return nil
		},
	}
	sf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the timeline as JSON")
	cmd.Flags().BoolVar(&summary, "summary", false, "print plain \"offset id\" lines in start order")
	cmd.MarkFlagsMutuallyExclusive("json", "summary")
	return cmd
}

func printTimeline(tl *timeline.Timeline, cached bool) {
	fmt.Println(StyleTitle.Render(tl.Scene) + " " + StyleDim.Render(tl.Sort))
	if tl.Len() == 0 {
		printWarning("nothing to animate: every element sits on the anchor's axis")
		return
	}

	rows := make([][]string, 0, tl.Len())
	for i, e := range tl.Entries {
		rows = append(rows, []string{
			strconv.Itoa(i),
			e.ID,
			strconv.Itoa(e.Level),
			fmt.Sprintf("%.0f,%.0f", e.Center().X, e.Center().Y),
			e.Delay().String(),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		Headers("#", "ELEMENT", "LEVEL", "CENTER", "OFFSET").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return StyleTitle.Padding(0, 1)
			case col == 4:
				return StyleNumber.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})
	fmt.Println(t)
	printStats(tl.Len(), tl.Span(), cached)
}
