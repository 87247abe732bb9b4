package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"artbind/internal/application/commands"
)

var inputCmd = &cobra.Command{
	Use:   "input <fixture> <name[=value]>...",
	Short: "Drive state machine inputs",
	Long: `Load an animation and drive its state machine. A bare name fires a
trigger; name=value sets a boolean or number input. State events are
printed as they fire.

Examples:
  artbind-cli input dashboard jump
  artbind-cli input dashboard running=true speed=2.5`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id, err := loadFixture(ctx, args[0])
		if err != nil {
			return err
		}

		for _, assignment := range args[1:] {
			name, raw, hasValue := strings.Cut(assignment, "=")
			var value any
			if hasValue {
				value = commands.ParseValue(raw)
			}

			result, err := commands.NewSetInputCommand(registry, id, name, value).Execute(ctx)
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inputCmd)
}
