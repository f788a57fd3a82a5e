package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	cerrors "github.com/matzehuels/cascade/pkg/errors"
	"github.com/matzehuels/cascade/pkg/pipeline"
	"github.com/matzehuels/cascade/pkg/scene"
)

// sceneExts are the file extensions picked up when rendering a directory.
var sceneExts = []string{".json", ".yaml", ".yml", ".toml"}

// renderCommand writes artifacts for one scene or a directory of scenes.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		sf     sortFlags
		rf     renderFlags
		output string
		jobs   int
	)
	cmd := &cobra.Command{
		Use:   "render [scene|dir]",
		Short: "Render animated SVG, JSON, DOT, tree, PNG or PDF artifacts",
		Long: `Render the schedule of a scene into one or more artifacts.

When the argument is a directory every scene file below it is rendered.
Artifacts are written to the output directory as <scene>.<format>; the
tree format is written as <scene>.tree.svg.

  cascade render login.yaml -f svg,json --sort radial
  cascade render scenes/ -o out -f svg,png --animation fade,slide:up
  cascade render --grid 8x5 --sort continuous --labels`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &sf, &rf)
			if err != nil {
				return err
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			if err := os.MkdirAll(output, 0o755); err != nil {
				return cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "create output directory")
			}

			jobsList, err := c.renderJobs(&sf, args)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), sf.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			return c.renderAll(cmd.Context(), runner, jobsList, opts, output, jobs)
		},
	}
	sf.register(cmd)
	rf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", ".", "output directory")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "scenes rendered in parallel")
	return cmd
}

// renderJob is one scene to render and the base name of its artifacts.
type renderJob struct {
	name string
	path string // empty for generated scenes
	root *scene.Box
}

func (c *CLI) renderJobs(sf *sortFlags, args []string) ([]renderJob, error) {
	if sf.grid != "" || len(args) == 0 {
		root, err := sf.loadScene(args)
		if err != nil {
			return nil, err
		}
		return []renderJob{{name: "grid-" + sf.grid, root: root}}, nil
	}

	info, err := os.Stat(args[0])
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeNotFound, err, "scene %s", args[0])
	}
	if !info.IsDir() {
		return []renderJob{{name: baseName(args[0]), path: args[0]}}, nil
	}

	paths, err := findScenes(args[0])
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, cerrors.New(cerrors.ErrCodeNotFound, "no scene files in %s", args[0])
	}
	jobs := make([]renderJob, len(paths))
	for i, p := range paths {
		rel, _ := filepath.Rel(args[0], p)
		jobs[i] = renderJob{name: baseName(strings.ReplaceAll(rel, string(filepath.Separator), "_")), path: p}
	}
	return jobs, nil
}

// findScenes walks dir for scene files and returns them sorted.
func findScenes(dir string) ([]string, error) {
	var (
		mu    sync.Mutex
		paths []string
	)
	conf := fastwalk.DefaultConfig
	err := fastwalk.Walk(&conf, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !slices.Contains(sceneExts, strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		mu.Lock()
		paths = append(paths, path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInternal, err, "walk %s", dir)
	}
	slices.Sort(paths)
	return paths, nil
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// artifactName maps a format to its file name.
func artifactName(name, format string) string {
	if format == pipeline.FormatTree {
		return name + ".tree.svg"
	}
	return name + "." + format
}

func (c *CLI) renderAll(ctx context.Context, runner *pipeline.Runner, jobs []renderJob, opts pipeline.Options, output string, limit int) error {
	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %d scene(s)...", len(jobs)))
	spinner.Start()

	var (
		mu      sync.Mutex
		written []string
		failed  []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))
	for _, job := range jobs {
		g.Go(func() error {
			files, err := renderOne(gctx, runner, job, opts, output)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failed = append(failed, fmt.Sprintf("%s: %s", job.name, cerrors.UserMessage(err)))
				return nil
			}
			written = append(written, files...)
			spinner.Update(fmt.Sprintf("Rendered %s", job.name))
			return nil
		})
	}
	err := g.Wait()
	spinner.Stop()
	if err != nil {
		return err
	}

	slices.Sort(written)
	for _, f := range written {
		printFile(f)
	}
	for _, f := range failed {
		printError("%s", f)
	}
	prog.done(fmt.Sprintf("rendered %d scene(s), %d file(s)", len(jobs)-len(failed), len(written)))

	if len(failed) > 0 {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "%d of %d scene(s) failed", len(failed), len(jobs))
	}
	if len(jobs) == 1 && !slices.Contains(opts.Formats, pipeline.FormatPNG) {
		printNextStep("Preview in the terminal", previewHint(jobs[0]))
	}
	return nil
}

func renderOne(ctx context.Context, runner *pipeline.Runner, job renderJob, opts pipeline.Options, output string) ([]string, error) {
	root := job.root
	if root == nil {
		var err error
		if root, err = pipeline.LoadScene(job.path); err != nil {
			return nil, err
		}
	}
	result, err := runner.Execute(ctx, root, opts)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(result.Artifacts))
	for format, data := range result.Artifacts {
		path := filepath.Join(output, artifactName(job.name, format))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeInternal, err, "write %s", path)
		}
		files = append(files, path)
	}
	loggerFromContext(ctx).Debug("rendered scene", "scene", job.name, "files", len(files),
		"timeline_cached", result.CacheInfo.TimelineHit, "render_cached", result.CacheInfo.RenderHit)
	return files, nil
}

func previewHint(job renderJob) string {
	if job.path == "" {
		return appName + " preview --grid " + strings.TrimPrefix(job.name, "grid-")
	}
	return appName + " preview " + job.path
}
