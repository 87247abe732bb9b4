package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"artbind/internal/application/commands"
)

var setCmd = &cobra.Command{
	Use:   "set <fixture> <path=value>...",
	Short: "Write one or more properties",
	Long: `Load an animation and apply each path=value assignment in order.
A bare path fires a trigger. Change notifications are printed as they are
delivered.

Examples:
  artbind-cli set dashboard score=12 settings/theme=light
  artbind-cli set dashboard 'accent=rgba(255, 0, 0, 0.5)' celebrate`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id, err := loadFixture(ctx, args[0])
		if err != nil {
			return err
		}

		for _, assignment := range args[1:] {
			path, raw, hasValue := strings.Cut(assignment, "=")
			var value any = true
			if hasValue {
				value = commands.ParseValue(raw)
			}

			result, err := commands.NewUpdatePropertyCommand(registry, id, path, value).Execute(ctx)
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
}
