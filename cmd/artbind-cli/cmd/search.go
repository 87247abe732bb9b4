package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"artbind/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <fixture> <query>",
	Short: "Fuzzy-search property paths",
	Long: `Search the property paths of an animation.

Results are ranked by relevance using fuzzy matching.

Examples:
  artbind-cli search dashboard vol
  artbind-cli search dashboard todo`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id, err := loadFixture(ctx, args[0])
		if err != nil {
			return err
		}

		results, err := commands.NewSearchCommand(registry, id, args[1]).Execute(ctx)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}

		for _, r := range results {
			fmt.Printf("[%s] %s %s\n", formatKind(r.Kind), r.Path, formatValue(r.Value))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
