package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cascade/pkg/cache"
	"github.com/matzehuels/cascade/pkg/errors"
	"github.com/matzehuels/cascade/pkg/pipeline"
)

func TestDecode(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	cfg, err := Decode(strings.NewReader(`
[sort]
function = "radial"
position = "middle"
delay_ms = 40
reversed = true

[animation]
stocks = ["fade", "slide:up:small"]
easing = "spring"
duration_ms = 500

[server]
addr = "127.0.0.1:9000"
`))
	require.NoError(t, err)

	assert.Equal(t, "radial", cfg.Sort.Function)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes, "unset keys keep defaults")
	assert.Equal(t, filepath.Join("/tmp/xdg-cache", "cascade"), cfg.Cache.Dir)

	opts := cfg.PipelineOptions()
	require.NotNil(t, opts.Delay)
	assert.Equal(t, 40*time.Millisecond, *opts.Delay)
	assert.Nil(t, opts.Duration, "absent duration_ms stays unset")
	assert.Equal(t, 500*time.Millisecond, opts.AnimationDuration)
	assert.Equal(t, []string{"fade", "slide:up:small"}, opts.Animations)
	require.NoError(t, opts.ValidateForSchedule())
	assert.Equal(t, "radial(middle, delay=40ms, reversed)", opts.Func().String())
}

func TestDecodeZeroDelay(t *testing.T) {
	cfg, err := Decode(strings.NewReader("[sort]\nfunction = \"linear\"\ndelay_ms = 0"))
	require.NoError(t, err)
	require.NotNil(t, cfg.Sort.DelayMS)

	opts := cfg.PipelineOptions()
	require.NoError(t, opts.ValidateForSchedule())
	assert.Equal(t, time.Duration(0), *opts.Delay)
	assert.Equal(t, time.Duration(0), opts.Func().Delay)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"syntax", "[sort"},
		{"unknown key", "[sort]\nfunktion = \"radial\""},
		{"unknown function", "[sort]\nfunction = \"spiral\""},
		{"negative delay", "[sort]\ndelay_ms = -1"},
		{"bad position", "[sort]\nposition = \"nowhere\""},
		{"bad stock", "[animation]\nstocks = [\"wobble\"]"},
		{"bad backend", "[cache]\nbackend = \"memcached\""},
		{"redis without url", "[cache]\nbackend = \"redis\""},
		{"bad timeout", "[server]\nread_timeout = \"soon\""},
		{"empty addr", "[server]\naddr = \"\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.toml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, pipeline.DefaultSort, cfg.Sort.Function)
	assert.Equal(t, cache.BackendFile, cfg.Cache.Backend)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[cache]\nbackend = \"none\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cache.BackendNone, cfg.Cache.Backend)
	assert.Empty(t, cfg.Cache.Dir)
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Sort.Function = "weighted"
	cfg.Sort.HorizontalWeight = "heavy"

	var buf bytes.Buffer
	require.NoError(t, cfg.Write(&buf))

	back, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "weighted", back.Sort.Function)
	assert.Equal(t, "heavy", back.Sort.HorizontalWeight)
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	path, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg-config/cascade/config.toml", path)

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "cascade"), dir)
}

func TestServerTimeouts(t *testing.T) {
	s := Default().Server
	assert.Equal(t, 10*time.Second, s.ReadTimeoutDuration())
	assert.Equal(t, 30*time.Second, s.WriteTimeoutDuration())
	assert.Zero(t, Server{}.ReadTimeoutDuration())
}
