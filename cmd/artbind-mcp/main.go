package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"artbind/internal/adapters/assets"
	"artbind/internal/adapters/filesystem"
	mcpadapter "artbind/internal/adapters/mcp"
	"artbind/internal/adapters/memengine"
	"artbind/internal/adapters/sqlite"
	"artbind/internal/application"
	"artbind/internal/config"
	"artbind/internal/domain"
	"artbind/internal/logging"
	"artbind/internal/ports"
)

func main() {
	fixturesFlag := flag.String("fixtures", filepath.Dir(config.Fixture()), "directory animation sources are resolved against")
	assetsFlag := flag.String("assets", ".", "directory local asset paths are resolved against")
	flag.Parse()

	// stdout carries the protocol
	logger := logging.New(os.Stderr, logging.ParseLevel(config.LogLevel()))

	registry := application.NewRegistry(
		application.WithLogger(logger),
		application.WithChangeHandler(func(ev domain.ChangeEvent) {
			logger.Debug("property changed", "instance", ev.InstanceID, "path", ev.Path, "value", domain.FormatValue(ev.Value))
		}),
		application.WithStateEventHandler(func(ev domain.StateEvent) {
			logger.Info("state event", "instance", ev.InstanceID, "event", ev.Name)
		}),
	)

	host := &mcpadapter.Host{
		Registry: registry,
		Loader:   memengine.NewLoader(*fixturesFlag),
		Reader:   assets.NewLocalReader(*assetsFlag),
		Decoder:  assets.Decoder{},
		Catalog:  filesystem.NewCatalog(*fixturesFlag),
	}

	var fetcher ports.Fetcher = assets.NewHTTPFetcher(config.FetchTimeout())
	if !config.AssetCacheDisabled() {
		cache, err := sqlite.Open(config.AssetCachePath())
		if err != nil {
			logger.Warn("asset cache unavailable", "error", err)
		} else {
			defer cache.Close()
			host.Cache = cache
			fetcher = assets.NewCachingFetcher(fetcher, cache, logger)
		}
	}
	host.Fetcher = fetcher

	mcpServer := server.NewMCPServer(
		"artbind-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, host)
	mcpadapter.RegisterWriteTools(mcpServer, host)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("artbind-mcp: %v", err)
	}
}
