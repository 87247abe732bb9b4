package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"artbind/internal/application/commands"
	"artbind/internal/domain"
)

var colorCmd = &cobra.Command{
	Use:   "color <value>...",
	Short: "Show how color values normalize",
	Long: `Normalize each argument the way a color property write would and
print the canonical #AARRGGBB form, the packed ARGB integer and the
channels. Values that cannot be read fall back to opaque white with a
warning.

Examples:
  artbind-cli color '#3EC293' 0x80FF0000 'rgba(0, 0, 255, 0.5)'
  artbind-cli color '[0.2, 0.4, 0.6]' '{r: 255, g: 128, b: 0}'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			v, err := domain.Normalize(domain.KindColor, commands.ParseValue(arg))
			var fallback *domain.NormalizationError
			switch {
			case errors.As(err, &fallback):
				fmt.Printf("%s  %s\n", arg, warnColor("warning: %s", fallback.Reason))
			case err != nil:
				return err
			}

			c := v.(domain.Color)
			fmt.Printf("%s  %s %s  0x%08X  rgba(%d, %d, %d, %d)\n", arg, swatch(c), c.Hex(), c.ARGB(), c.R, c.G, c.B, c.A)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(colorCmd)
}
