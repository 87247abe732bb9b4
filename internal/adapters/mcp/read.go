package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"artbind/internal/application"
	"artbind/internal/application/commands"
	"artbind/internal/domain"
	"artbind/internal/ports"
)

// Host bundles what the tools need to drive animation instances
type Host struct {
	Registry *application.Registry
	Loader   ports.Loader
	Fetcher  ports.Fetcher
	Reader   ports.FileReader
	Decoder  ports.AssetDecoder
	// Catalog lists loadable sources; list_sources fails without it.
	Catalog ports.SourceCatalog
	// Cache is optional; cache_stats reports only the registry without it.
	Cache ports.ManagedCache
}

// RegisterReadTools adds all read-only instance tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, h *Host) {
	s.AddTool(listSourcesTool(), listSourcesHandler(h))
	s.AddTool(listInstancesTool(), listInstancesHandler(h))
	s.AddTool(listPropertiesTool(), listPropertiesHandler(h))
	s.AddTool(getPropertyTool(), getPropertyHandler(h))
	s.AddTool(searchTool(), searchHandler(h))
	s.AddTool(cacheStatsTool(), cacheStatsHandler(h))
}

// --- list_sources ---

func listSourcesTool() mcp.Tool {
	return mcp.NewTool("list_sources",
		mcp.WithDescription("List the animation sources available to load_instance. Loaded sources are marked with *."),
	)
}

func listSourcesHandler(h *Host) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if h.Catalog == nil {
			return mcp.NewToolResultError("no source directory configured"), nil
		}
		rows, err := commands.NewListSourcesCommand(h.Catalog, h.Registry).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(rows, func(r commands.SourceRow) string {
			mark := " "
			if r.Loaded {
				mark = "*"
			}
			return fmt.Sprintf("%s %s  %d bytes", mark, r.Name, r.Size)
		})
	}
}

// --- list_instances ---

func listInstancesTool() mcp.Tool {
	return mcp.NewTool("list_instances",
		mcp.WithDescription("List the ids of all loaded animation instances."),
	)
}

func listInstancesHandler(h *Host) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := commands.NewListInstancesCommand(h.Registry).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(ids, func(id string) string { return id })
	}
}

// --- list_properties ---

func listPropertiesTool() mcp.Tool {
	return mcp.NewTool("list_properties",
		mcp.WithDescription("List every discovered property of an instance with its kind and current value, depth-first."),
		mcp.WithString("instance_id",
			mcp.Description("Instance id given to load_instance"),
			mcp.Required(),
		),
	)
}

func listPropertiesHandler(h *Host) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rows, err := commands.NewListPropertiesCommand(h.Registry, req.GetString("instance_id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(rows, formatRow)
	}
}

// --- get_property ---

func getPropertyTool() mcp.Tool {
	return mcp.NewTool("get_property",
		mcp.WithDescription("Read the last known value of a property. Paths use / or . between segments; list items are addressed by index or name."),
		mcp.WithString("instance_id",
			mcp.Description("Instance id"),
			mcp.Required(),
		),
		mcp.WithString("path",
			mcp.Description("Property path (e.g. score, settings/volume, todos/0/done)"),
			mcp.Required(),
		),
	)
}

func getPropertyHandler(h *Host) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewGetPropertyCommand(h.Registry, req.GetString("instance_id", ""), req.GetString("path", ""))
		row, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatRow(*row)), nil
	}
}

// --- search_properties ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search_properties",
		mcp.WithDescription("Fuzzy-search the property paths of an instance."),
		mcp.WithString("instance_id",
			mcp.Description("Instance id"),
			mcp.Required(),
		),
		mcp.WithString("query",
			mcp.Description("Search query, at least two characters"),
			mcp.Required(),
		),
	)
}

func searchHandler(h *Host) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		results, err := commands.NewSearchCommand(h.Registry, req.GetString("instance_id", ""), query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %s\n", formatRow(r.PropertyRow), scoreTag(r.Score))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func scoreTag(score int) string {
	return fmt.Sprintf("(score %d)", score)
}

// --- cache_stats ---

func cacheStatsTool() mcp.Tool {
	return mcp.NewTool("cache_stats",
		mcp.WithDescription("Report loaded instances, memoized path lookups per instance, and the asset download cache."),
	)
}

func cacheStatsHandler(h *Host) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats := h.Registry.CacheStats()

		var sb strings.Builder
		fmt.Fprintf(&sb, "instances: %d\ncached paths: %d\n", stats.InstanceCount, stats.TotalCachedPaths)
		ids := make([]string, 0, len(stats.PerInstance))
		for id := range stats.PerInstance {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(&sb, "  %s: %d\n", id, stats.PerInstance[id])
		}

		if h.Cache != nil {
			cs, err := h.Cache.Stats()
			if err != nil {
				return toolError(fmt.Errorf("reading asset cache: %w", err))
			}
			fmt.Fprintf(&sb, "asset cache: %d entries, %d bytes, %d hits (%s)\n", cs.Entries, cs.Bytes, cs.Hits, cs.Path)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatRow(r commands.PropertyRow) string {
	return fmt.Sprintf("%s  %s  %s", r.Path, r.Kind, domain.FormatValue(r.Value))
}
