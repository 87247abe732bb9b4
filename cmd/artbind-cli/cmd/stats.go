package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"artbind/internal/application/commands"
)

var statsCmd = &cobra.Command{
	Use:   "stats <fixture>...",
	Short: "Load fixtures, resolve every path and report cache statistics",
	Long: `Load each fixture as its own instance, resolve every discovered
property path once and print the registry's instance count and memoized
path totals.

Example:
  artbind-cli stats dashboard hero`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		for _, source := range args {
			id, err := loadFixture(ctx, source)
			if err != nil {
				return err
			}
			rows, err := commands.NewListPropertiesCommand(registry, id).Execute(ctx)
			if err != nil {
				return err
			}
			for _, r := range rows {
				registry.GetPropertyValue(id, r.Path)
			}
		}

		stats := registry.CacheStats()
		fmt.Printf("instances: %d\n", stats.InstanceCount)
		fmt.Printf("cached paths: %d\n", stats.TotalCachedPaths)

		ids := make([]string, 0, len(stats.PerInstance))
		for id := range stats.PerInstance {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Printf("  %s: %d\n", id, stats.PerInstance[id])
		}
		fmt.Printf("resolver walks: %d\n", registry.Resolver().Walks())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
