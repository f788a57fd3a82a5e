package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cascade/pkg/cache"
	cerrors "github.com/matzehuels/cascade/pkg/errors"
	"github.com/matzehuels/cascade/pkg/pipeline"
)

const sceneJSON = `{"name":"login","width":200,"height":100,"elements":[
	{"id":"title","x":0,"y":0,"width":200,"height":40},
	{"id":"button","x":50,"y":60,"width":100,"height":30}]}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindScenes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.json"), sceneJSON)
	writeFile(t, filepath.Join(dir, "sub", "a.YAML"), "name: a\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "skip")

	paths, err := findScenes(dir)
	if err != nil {
		t.Fatalf("findScenes() error: %v", err)
	}
	want := []string{filepath.Join(dir, "b.json"), filepath.Join(dir, "sub", "a.YAML")}
	if len(paths) != len(want) {
		t.Fatalf("findScenes() = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestRenderJobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "login.json"), sceneJSON)
	writeFile(t, filepath.Join(dir, "nested", "menu.json"), sceneJSON)
	c := New(os.Stderr, log.InfoLevel)

	jobs, err := c.renderJobs(&sortFlags{}, []string{dir})
	if err != nil {
		t.Fatalf("renderJobs(dir) error: %v", err)
	}
	if len(jobs) != 2 || jobs[0].name != "login" || jobs[1].name != "nested_menu" {
		t.Errorf("jobs = %+v", jobs)
	}

	jobs, err = c.renderJobs(&sortFlags{grid: "3x2"}, nil)
	if err != nil {
		t.Fatalf("renderJobs(grid) error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].name != "grid-3x2" || jobs[0].root == nil {
		t.Errorf("grid jobs = %+v", jobs)
	}

	if _, err := c.renderJobs(&sortFlags{}, []string{t.TempDir()}); !cerrors.Is(err, cerrors.ErrCodeNotFound) {
		t.Errorf("empty dir: err = %v, want NOT_FOUND", err)
	}
	if _, err := c.renderJobs(&sortFlags{}, []string{filepath.Join(dir, "absent.json")}); !cerrors.Is(err, cerrors.ErrCodeNotFound) {
		t.Errorf("missing file: err = %v, want NOT_FOUND", err)
	}
}

func TestArtifactName(t *testing.T) {
	tests := map[string]string{
		pipeline.FormatSVG:  "login.svg",
		pipeline.FormatJSON: "login.json",
		pipeline.FormatTree: "login.tree.svg",
	}
	for format, want := range tests {
		if got := artifactName("login", format); got != want {
			t.Errorf("artifactName(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestRenderAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "scenes", "login.json"), sceneJSON)
	writeFile(t, filepath.Join(dir, "scenes", "broken.json"), "{")
	out := filepath.Join(dir, "out")
	if err := os.MkdirAll(out, 0o755); err != nil {
		t.Fatal(err)
	}

	c := New(os.Stderr, log.WarnLevel)
	jobs, err := c.renderJobs(&sortFlags{}, []string{filepath.Join(dir, "scenes")})
	if err != nil {
		t.Fatal(err)
	}
	opts := pipeline.Options{Formats: []string{"svg", "json"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger)

	err = c.renderAll(context.Background(), runner, jobs, opts, out, 2)
	if err == nil {
		t.Fatal("renderAll() should report the broken scene")
	}
	for _, name := range []string{"login.svg", "login.json"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}
