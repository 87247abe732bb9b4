package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"artbind/internal/adapters/sqlite"
	"artbind/internal/config"
)

var pruneBytes int64

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and trim the asset download cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show asset cache usage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := sqlite.Open(config.AssetCachePath())
		if err != nil {
			return err
		}
		defer cache.Close()

		stats, err := cache.Stats()
		if err != nil {
			return err
		}
		fmt.Printf("%s\n%d entries, %d bytes, %d hits\n", stats.Path, stats.Entries, stats.Bytes, stats.Hits)
		return nil
	},
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Evict least recently used assets above a size budget",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := sqlite.Open(config.AssetCachePath())
		if err != nil {
			return err
		}
		defer cache.Close()

		removed, err := cache.Prune(pruneBytes)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d entries\n", removed)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached asset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := sqlite.Open(config.AssetCachePath())
		if err != nil {
			return err
		}
		defer cache.Close()

		if err := cache.Clear(); err != nil {
			return err
		}
		fmt.Println("Cleared asset cache")
		return nil
	},
}

func init() {
	cachePruneCmd.Flags().Int64Var(&pruneBytes, "max-bytes", 64<<20, "size budget to prune down to")
	cacheCmd.AddCommand(cacheStatsCmd, cachePruneCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
