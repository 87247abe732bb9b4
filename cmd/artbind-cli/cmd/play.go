package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"artbind/internal/application/commands"
)

var (
	playSeconds  float64
	playFPS      int
	playRealtime bool
)

var playCmd = &cobra.Command{
	Use:   "play <fixture>",
	Short: "Advance the artboard timelines and print property changes",
	Long: `Load an animation and advance its artboard frame by frame,
printing every property change the timelines produce.

Examples:
  artbind-cli play dashboard --seconds 2 --fps 10
  artbind-cli play dashboard --realtime`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id, err := loadFixture(ctx, args[0])
		if err != nil {
			return err
		}

		fps := max(playFPS, 1)
		frames := int(playSeconds * float64(fps))
		dt := 1 / float64(fps)

		for frame := 1; frame <= frames; frame++ {
			fmt.Println(dimColor("frame %d (%.3fs)", frame, float64(frame)*dt))
			result, err := commands.NewAdvanceCommand(registry, id, dt, 1).Execute(ctx)
			if err != nil {
				return err
			}
			if !result.Active {
				fmt.Println("timelines finished")
				return nil
			}
			if playRealtime {
				time.Sleep(time.Duration(dt * float64(time.Second)))
			}
		}
		return nil
	},
}

func init() {
	playCmd.Flags().Float64Var(&playSeconds, "seconds", 1, "time to play")
	playCmd.Flags().IntVar(&playFPS, "fps", 30, "frames per second")
	playCmd.Flags().BoolVar(&playRealtime, "realtime", false, "sleep between frames")
	rootCmd.AddCommand(playCmd)
}
