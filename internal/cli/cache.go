package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cascade/pkg/cache"
	cerrors "github.com/matzehuels/cascade/pkg/errors"
)

// cacheCommand groups the cache maintenance subcommands.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the local cache",
		Long: `Inspect or clear the file cache that holds computed timelines and
rendered artifacts. Remote backends (redis, mongo) expire entries on their
own and are not managed here.`,
	}
	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache location and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			printKeyValue("backend", cfg.Cache.Backend)
			if cfg.Cache.Backend != cache.BackendFile {
				if cfg.Cache.URL != "" {
					printKeyValue("url", cfg.Cache.URL)
				}
				return nil
			}
			fc, err := c.fileCache()
			if err != nil {
				return err
			}
			stats, err := fc.Stats(cmd.Context())
			if err != nil {
				return cerrors.Wrap(cerrors.ErrCodeInternal, err, "read cache")
			}
			printKeyValue("path", fc.Dir())
			printKeyValue("entries", strconv.Itoa(stats.Entries))
			printKeyValue("size", formatBytes(stats.Bytes))
			return nil
		},
	}
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fc, err := c.fileCache()
			if err != nil {
				return err
			}
			n, err := clearCache(cmd.Context(), fc)
			if err != nil {
				return err
			}
			printSuccess("Removed %d cache entries", n)
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			fc, err := c.fileCache()
			if err != nil {
				return err
			}
			printInfo("%s", fc.Dir())
			return nil
		},
	}
}

// fileCache opens the configured file cache. Other backends are rejected.
func (c *CLI) fileCache() (*cache.FileCache, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Cache.Backend != cache.BackendFile {
		return nil, cerrors.New(cerrors.ErrCodeUnsupported, "cache backend %q is not a local cache", cfg.Cache.Backend)
	}
	fc, err := cache.NewFileCache(cfg.Cache.Dir)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInternal, err, "open cache %s", cfg.Cache.Dir)
	}
	return fc, nil
}

func clearCache(ctx context.Context, fc *cache.FileCache) (int, error) {
	n, err := fc.Clear(ctx)
	if err != nil {
		return n, cerrors.Wrap(cerrors.ErrCodeInternal, err, "clear cache")
	}
	return n, nil
}
