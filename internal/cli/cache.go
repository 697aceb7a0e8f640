package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local scene and artifact cache",
		Long: `Manage the local cache under $XDG_CACHE_HOME/backdrop.

The serve command uses Redis instead when --redis (or server.redis_addr) is set;
these subcommands only touch the file cache.`,
	}
	cmd.AddCommand(c.cacheStatsCommand(), c.cacheClearCommand(), c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number and total size of cached entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			st, err := scanCache(dir)
			if err != nil {
				return err
			}
			if st.entries == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printInfo("%d entries, %s", st.entries, formatSize(int(st.bytes)))
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached scenes and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			count, err := clearCache(dir)
			if err != nil {
				return err
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

type cacheStats struct {
	entries int
	bytes   int64
}

// scanCache totals the regular files below dir. A missing dir is empty.
func scanCache(dir string) (cacheStats, error) {
	var st cacheStats
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == dir {
				return fs.SkipAll
			}
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		st.entries++
		st.bytes += info.Size()
		return nil
	})
	return st, err
}

// clearCache removes every file below dir, then the emptied shard
// directories, and returns the number of files removed. dir itself is kept.
// Files that cannot be removed are skipped.
func clearCache(dir string) (int, error) {
	count := 0
	var shards []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil || path == dir:
			return nil
		case d.IsDir():
			shards = append(shards, path)
		case os.Remove(path) == nil:
			count++
		}
		return nil
	})
	if err != nil {
		return count, err
	}

	// WalkDir visits parents first; remove in reverse so they are empty.
	for i := len(shards) - 1; i >= 0; i-- {
		_ = os.Remove(shards[i])
	}
	return count, nil
}
