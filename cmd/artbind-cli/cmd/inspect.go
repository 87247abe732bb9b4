package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"artbind/internal/application/commands"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <fixture>",
	Short: "Show the discovered property graph of an animation",
	Long: `Load an animation and print its ViewModel properties as a tree with
their kinds and current values, followed by its state machine inputs and
referenced asset slots.

Examples:
  artbind-cli inspect dashboard
  artbind-cli inspect ./hero.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id, err := loadFixture(ctx, args[0])
		if err != nil {
			return err
		}

		rows, err := commands.NewListPropertiesCommand(registry, id).Execute(ctx)
		if err != nil {
			return err
		}

		inst, _ := registry.Get(id)
		anim := inst.Animation()
		fmt.Printf("%s (artboard %s)\n", anim.Name(), anim.Artboard().Name())
		if vm, ok := anim.ViewModel(); ok {
			fmt.Printf("viewModel %s\n", vm.Name())
		}
		for _, r := range rows {
			indent := strings.Repeat("  ", r.Depth+1)
			fmt.Printf("%s%s  %s  %s\n", indent, r.Name, formatKind(r.Kind), formatValue(r.Value))
		}

		if sm, ok := inst.StateMachine(); ok {
			fmt.Printf("stateMachine %s (state %s)\n", sm.Name(), sm.CurrentState())
			for _, in := range sm.Inputs() {
				fmt.Printf("  %s  %s\n", in.Name, formatKind(in.Kind))
			}
		}
		if slots := anim.Assets(); len(slots) > 0 {
			fmt.Println("assets")
			for _, s := range slots {
				fmt.Printf("  %s  %s\n", s.Name(), formatKind(s.Kind()))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
