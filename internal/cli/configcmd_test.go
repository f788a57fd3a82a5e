package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cascade/pkg/config"
	cerrors "github.com/matzehuels/cascade/pkg/errors"
)

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cascade", "config.toml")
	if err := writeDefaultConfig(path, false); err != nil {
		t.Fatalf("writeDefaultConfig() error: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Sort.Function != config.Default().Sort.Function {
		t.Errorf("sort.function = %q", cfg.Sort.Function)
	}

	if err := writeDefaultConfig(path, false); !cerrors.Is(err, cerrors.ErrCodeInvalidInput) {
		t.Errorf("second write: err = %v, want INVALID_INPUT", err)
	}
	if err := writeDefaultConfig(path, true); err != nil {
		t.Errorf("forced write: %v", err)
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := New(os.Stderr, log.InfoLevel)

	path, err := c.resolveConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	want, _ := config.Path()
	if path != want {
		t.Errorf("resolveConfigPath() = %q, want %q", path, want)
	}

	c.configPath = "custom.toml"
	if path, _ := c.resolveConfigPath(); path != "custom.toml" {
		t.Errorf("--config not honoured: %q", path)
	}
}

func TestFileCacheRequiresFileBackend(t *testing.T) {
	c := New(os.Stderr, log.InfoLevel)
	cfg := config.Default()
	cfg.Cache.Backend = "redis"
	c.cfg = &cfg

	if _, err := c.fileCache(); !cerrors.Is(err, cerrors.ErrCodeUnsupported) {
		t.Errorf("fileCache() err = %v, want UNSUPPORTED", err)
	}

	cfg.Cache.Backend = "file"
	cfg.Cache.Dir = t.TempDir()
	fc, err := c.fileCache()
	if err != nil {
		t.Fatalf("fileCache() error: %v", err)
	}
	if fc.Dir() != cfg.Cache.Dir {
		t.Errorf("Dir() = %q, want %q", fc.Dir(), cfg.Cache.Dir)
	}
}
