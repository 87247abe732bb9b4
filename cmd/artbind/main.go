package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"artbind/internal/adapters/assets"
	"artbind/internal/adapters/editor"
	"artbind/internal/adapters/memengine"
	"artbind/internal/adapters/sqlite"
	"artbind/internal/adapters/tui"
	"artbind/internal/adapters/tui/views"
	"artbind/internal/application"
	"artbind/internal/application/commands"
	"artbind/internal/config"
	"artbind/internal/logging"
	"artbind/internal/ports"
)

const changeLogSize = 8

func main() {
	logFile := flag.String("log", "", "write logs to this file")
	flag.Parse()

	source := config.Fixture()
	if flag.NArg() > 0 {
		source = flag.Arg(0)
	}

	if err := run(source, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(source, logFile string) error {
	// the terminal belongs to the TUI
	var sink io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		sink = f
	}
	logger := logging.New(sink, logging.ParseLevel(config.LogLevel()))

	changes := views.NewChangeLog(changeLogSize)
	registry := application.NewRegistry(
		application.WithLogger(logger),
		application.WithChangeHandler(changes.Record),
		application.WithStateEventHandler(changes.RecordEvent),
	)

	loader := memengine.NewLoader(filepath.Dir(source))
	base := filepath.Base(source)
	id := strings.TrimSuffix(base, filepath.Ext(base))

	if _, err := commands.NewLoadInstanceCommand(loader, registry, id, source).Execute(context.Background()); err != nil {
		return err
	}

	var fetcher ports.Fetcher = assets.NewHTTPFetcher(config.FetchTimeout())
	if !config.AssetCacheDisabled() {
		cache, err := sqlite.Open(config.AssetCachePath())
		if err != nil {
			logger.Warn("asset cache unavailable", "error", err)
		} else {
			defer cache.Close()
			fetcher = assets.NewCachingFetcher(fetcher, cache, logger)
		}
	}

	app := tui.NewApp(tui.Options{
		Registry: registry,
		Loader:   loader,
		Editor:   editor.NewOpener(config.Editor()),
		Assets: &views.AssetLoader{
			Fetcher: fetcher,
			Reader:  assets.NewLocalReader(filepath.Dir(source)),
			Decoder: assets.Decoder{},
		},
		Changes:    changes,
		InstanceID: id,
		Source:     source,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
