package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"artbind/internal/adapters/memengine"
	"artbind/internal/application"
	"artbind/internal/application/commands"
	"artbind/internal/config"
	"artbind/internal/domain"
	"artbind/internal/logging"
	"artbind/internal/ports"
)

var (
	fixturesDir string
	logLevel    string
	noColor     bool
	quiet       bool

	logger   *slog.Logger
	loader   ports.Loader
	registry *application.Registry
)

var rootCmd = &cobra.Command{
	Use:   "artbind-cli",
	Short: "Inspect and drive animation data bindings",
	Long: `artbind-cli loads animation fixtures, discovers their ViewModel
property graph and lets you read, write and animate properties from the
command line.

Values are written the way you would type them in YAML: 3, 0.5, true,
[1, 0, 0], {r: 255, g: 0, b: 0}. Colors also accept "#RRGGBB",
"#AARRGGBB", "0x..." and "rgb(...)"/"rgba(...)".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if noColor {
			color.NoColor = true
		}
		logger = logging.New(os.Stderr, logging.ParseLevel(logLevel))
		loader = memengine.NewLoader(fixturesDir)
		registry = application.NewRegistry(
			application.WithLogger(logger),
			application.WithChangeHandler(printChange),
			application.WithStateEventHandler(printStateEvent),
		)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&fixturesDir, "fixtures", "f", filepath.Dir(config.Fixture()), "directory fixture names are resolved against")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.LogLevel(), "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "do not print property change notifications")
}

// loadFixture registers source under its base name and returns the id
func loadFixture(ctx context.Context, source string) (string, error) {
	id := instanceID(source)
	result, err := commands.NewLoadInstanceCommand(loader, registry, id, source).Execute(ctx)
	if err != nil {
		return "", err
	}
	logger.Debug(result.Message)
	return id, nil
}

func instanceID(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func printChange(ev domain.ChangeEvent) {
	if quiet {
		return
	}
	fmt.Printf("  %s %s.%s = %s\n", arrow(), ev.InstanceID, ev.Path, formatValue(ev.Value))
}

func printStateEvent(ev domain.StateEvent) {
	fmt.Printf("  %s %s %s (state %s)", eventColor("event"), ev.InstanceID, eventColor(ev.Name), ev.CurrentState)
	if len(ev.Properties) > 0 {
		fmt.Printf(" %v", ev.Properties)
	}
	fmt.Println()
}
