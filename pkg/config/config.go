// Package config loads the cascade configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/cascade/config.toml
// (~/.config/cascade/config.toml when XDG_CONFIG_HOME is unset). Every
// section is optional; missing values keep their defaults and command-line
// flags override whatever the file sets.
//
//	[sort]
//	function = "radial"
//	position = "middle"
//	delay_ms = 40
//
//	[animation]
//	stocks = ["fade", "slide:up:small"]
//	easing = "spring"
//
//	[cache]
//	backend = "redis"
//	url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cascade/pkg/cache"
	cerrors "github.com/matzehuels/cascade/pkg/errors"
	"github.com/matzehuels/cascade/pkg/pipeline"
	"github.com/matzehuels/cascade/pkg/validate"
)

const appName = "cascade"

// Config is the whole configuration file.
type Config struct {
	Sort      Sort          `toml:"sort" json:"sort"`
	Animation Animation     `toml:"animation" json:"animation"`
	Cache     cache.Options `toml:"cache" json:"cache"`
	Server    Server        `toml:"server" json:"server"`
}

// Sort holds the default sort function. DelayMS and DurationMS stay nil
// when absent so an explicit 0 survives into the pipeline.
type Sort struct {
	Function         string `toml:"function" json:"function,omitempty"`
	Depth            int    `toml:"depth" json:"depth" validate:"gte=0"`
	DelayMS          *int64 `toml:"delay_ms" json:"delay_ms,omitempty" validate:"omitempty,gte=0"`
	DurationMS       *int64 `toml:"duration_ms" json:"duration_ms,omitempty" validate:"omitempty,gte=0"`
	Reversed         bool   `toml:"reversed" json:"reversed,omitempty"`
	Direction        string `toml:"direction" json:"direction,omitempty" validate:"omitempty,direction"`
	Corner           string `toml:"corner" json:"corner,omitempty" validate:"omitempty,corner"`
	Position         string `toml:"position" json:"position,omitempty" validate:"omitempty,position"`
	HorizontalWeight string `toml:"horizontal_weight" json:"horizontal_weight,omitempty" validate:"omitempty,weight"`
	VerticalWeight   string `toml:"vertical_weight" json:"vertical_weight,omitempty" validate:"omitempty,weight"`
	Seed             uint64 `toml:"seed" json:"seed,omitempty"`
}

// Animation holds the default render settings.
type Animation struct {
	Stocks     []string `toml:"stocks" json:"stocks,omitempty"`
	Easing     string   `toml:"easing" json:"easing,omitempty"`
	DurationMS int64    `toml:"duration_ms" json:"duration_ms,omitempty" validate:"gte=0"`
	Theme      string   `toml:"theme" json:"theme,omitempty"`
	Labels     bool     `toml:"labels" json:"labels,omitempty"`
}

// Server holds HTTP server settings.
type Server struct {
	Addr         string `toml:"addr" json:"addr" validate:"required"`
	ReadTimeout  string `toml:"read_timeout" json:"read_timeout,omitempty"`
	WriteTimeout string `toml:"write_timeout" json:"write_timeout,omitempty"`
	MaxBodyBytes int64  `toml:"max_body_bytes" json:"max_body_bytes" validate:"gte=0"`
	KeyPrefix    string `toml:"key_prefix" json:"key_prefix,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Sort: Sort{Function: pipeline.DefaultSort},
		Animation: Animation{
			Stocks: []string{"fade"},
			Easing: pipeline.DefaultEasing,
		},
		Cache: cache.Options{Backend: cache.BackendFile},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  "10s",
			WriteTimeout: "30s",
			MaxBodyBytes: 1 << 20,
			KeyPrefix:    "api:",
		},
	}
}

// =============================================================================
// Paths
// =============================================================================

// Dir returns the configuration directory.
func Dir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir returns the default file cache directory.
func CacheDir() (string, error) {
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Loading
// =============================================================================

// Load reads the file at path on top of the defaults. A missing file is
// not an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		return cfg, cfg.finish()
	}
	if err != nil {
		return Config{}, cerrors.Wrap(cerrors.ErrCodeInvalidConfig, err, "open %s", path)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the file at Path.
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		return cfg, cfg.finish()
	}
	return Load(path)
}

// Decode reads TOML from r on top of the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, cerrors.Wrap(cerrors.ErrCodeInvalidConfig, err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, cerrors.New(cerrors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.finish()
}

// Validate checks field constraints and that the sort and animation
// sections form valid pipeline options.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInvalidConfig, err, "%s", validate.Message(err))
	}
	for name, v := range map[string]string{"read_timeout": c.Server.ReadTimeout, "write_timeout": c.Server.WriteTimeout} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return cerrors.Wrap(cerrors.ErrCodeInvalidConfig, err, "server.%s", name)
		}
	}
	opts := c.PipelineOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInvalidConfig, err, "invalid defaults")
	}
	return nil
}

// finish fills values that depend on the environment.
func (c *Config) finish() error {
	if c.Cache.Backend == cache.BackendFile && c.Cache.Dir == "" {
		dir, err := CacheDir()
		if err != nil {
			c.Cache.Backend = cache.BackendNone
			return nil
		}
		c.Cache.Dir = dir
	}
	return nil
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// =============================================================================
// Conversions
// =============================================================================

// PipelineOptions returns pipeline options seeded from the file.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Sort:              c.Sort.Function,
		Depth:             c.Sort.Depth,
		Delay:             Millis(c.Sort.DelayMS),
		Duration:          Millis(c.Sort.DurationMS),
		Reversed:          c.Sort.Reversed,
		Direction:         c.Sort.Direction,
		Corner:            c.Sort.Corner,
		Position:          c.Sort.Position,
		HorizontalWeight:  c.Sort.HorizontalWeight,
		VerticalWeight:    c.Sort.VerticalWeight,
		Seed:              c.Sort.Seed,
		Animations:        append([]string(nil), c.Animation.Stocks...),
		Easing:            c.Animation.Easing,
		AnimationDuration: time.Duration(c.Animation.DurationMS) * time.Millisecond,
		Theme:             c.Animation.Theme,
		Labels:            c.Animation.Labels,
	}
}

// Millis converts an optional millisecond count to an optional duration.
func Millis(ms *int64) *time.Duration {
	if ms == nil {
		return nil
	}
	return pipeline.DurationPtr(time.Duration(*ms) * time.Millisecond)
}

// ReadTimeoutDuration returns the parsed server read timeout, or 0.
func (s Server) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(s.ReadTimeout)
	return d
}

// WriteTimeoutDuration returns the parsed server write timeout, or 0.
func (s Server) WriteTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(s.WriteTimeout)
	return d
}
