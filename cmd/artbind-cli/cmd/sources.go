package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"artbind/internal/adapters/filesystem"
	"artbind/internal/application/commands"
)

var sourcesCmd = &cobra.Command{
	Use:     "sources",
	Aliases: []string{"ls"},
	Short:   "List fixtures in the fixtures directory",
	Long: `List the animation fixtures found in the --fixtures directory.

Names are what the other commands accept as <fixture>.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := commands.NewListSourcesCommand(filesystem.NewCatalog(fixturesDir), registry).Execute(context.Background())
		if err != nil {
			return err
		}

		if len(rows) == 0 {
			fmt.Printf("No fixtures in %s\n", fixturesDir)
			return nil
		}

		for _, r := range rows {
			fmt.Printf("%-24s %s\n", r.Name, dimColor("%d bytes, %s", r.Size, r.Modified.Format("2006-01-02 15:04")))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
