package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"artbind/internal/application/commands"
	"artbind/internal/domain"
)

// RegisterWriteTools adds all instance-mutating tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, h *Host) {
	s.AddTool(loadInstanceTool(), loadInstanceHandler(h))
	s.AddTool(unloadInstanceTool(), unloadInstanceHandler(h))
	s.AddTool(updatePropertyTool(), updatePropertyHandler(h))
	s.AddTool(setInputTool(), setInputHandler(h))
	s.AddTool(advanceTool(), advanceHandler(h))
	s.AddTool(loadAssetTool(), loadAssetHandler(h))
	s.AddTool(clearCacheTool(), clearCacheHandler(h))
}

// --- load_instance ---

func loadInstanceTool() mcp.Tool {
	return mcp.NewTool("load_instance",
		mcp.WithDescription("Load an animation and register it under an id. Loading onto an existing id replaces and tears down the old instance."),
		mcp.WithString("instance_id",
			mcp.Description("Id to register the instance under"),
			mcp.Required(),
		),
		mcp.WithString("source",
			mcp.Description("Animation source (fixture name or path)"),
			mcp.Required(),
		),
	)
}

func loadInstanceHandler(h *Host) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewLoadInstanceCommand(h.Loader, h.Registry, req.GetString("instance_id", ""), req.GetString("source", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- unload_instance ---

func unloadInstanceTool() mcp.Tool {
	return mcp.NewTool("unload_instance",
		mcp.WithDescription("Tear down an instance, detaching all of its listeners."),
		mcp.WithString("instance_id",
			mcp.Description("Instance id"),
			mcp.Required(),
		),
	)
}

func unloadInstanceHandler(h *Host) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewUnloadInstanceCommand(h.Registry, req.GetString("instance_id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- update_property ---

func updatePropertyTool() mcp.Tool {
	return mcp.NewTool("update_property",
		mcp.WithDescription("Set a property. Colors accept hex, rgb()/rgba(), [r,g,b(,a)] and {r,g,b,a} forms. Omit value or pass true to fire a trigger."),
		mcp.WithString("instance_id",
			mcp.Description("Instance id"),
			mcp.Required(),
		),
		mcp.WithString("path",
			mcp.Description("Property path (e.g. score, settings/theme, todos/first/done)"),
			mcp.Required(),
		),
		mcp.WithString("value",
			mcp.Description("New value. Text is read as YAML, so 3, 0.5, true, [1, 0, 0] and {r: 255} arrive typed."),
		),
	)
}

func updatePropertyHandler(h *Host) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewUpdatePropertyCommand(h.Registry, req.GetString("instance_id", ""), req.GetString("path", ""), valueArg(req))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- set_input ---

func setInputTool() mcp.Tool {
	return mcp.NewTool("set_input",
		mcp.WithDescription("Drive a state machine input: fire a trigger, or set a boolean or number."),
		mcp.WithString("instance_id",
			mcp.Description("Instance id"),
			mcp.Required(),
		),
		mcp.WithString("input",
			mcp.Description("Input name"),
			mcp.Required(),
		),
		mcp.WithString("value",
			mcp.Description("Boolean or number value. Omit for triggers."),
		),
	)
}

func setInputHandler(h *Host) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSetInputCommand(h.Registry, req.GetString("instance_id", ""), req.GetString("input", ""), valueArg(req))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- advance ---

func advanceTool() mcp.Tool {
	return mcp.NewTool("advance",
		mcp.WithDescription("Advance the artboard timelines of an instance and deliver the resulting property changes."),
		mcp.WithString("instance_id",
			mcp.Description("Instance id"),
			mcp.Required(),
		),
		mcp.WithNumber("seconds",
			mcp.Description("Time to advance in seconds"),
			mcp.Required(),
		),
		mcp.WithNumber("steps",
			mcp.Description("Number of equal ticks to split the time into (default 1)"),
		),
	)
}

func advanceHandler(h *Host) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewAdvanceCommand(h.Registry, req.GetString("instance_id", ""), req.GetFloat("seconds", 0), req.GetInt("steps", 1))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- load_asset ---

func loadAssetTool() mcp.Tool {
	return mcp.NewTool("load_asset",
		mcp.WithDescription("Load an image or font from an http(s) URL or a local path and hand it to an instance. When two loads for the same target overlap, the one started last wins."),
		mcp.WithString("instance_id",
			mcp.Description("Instance id"),
			mcp.Required(),
		),
		mcp.WithString("kind",
			mcp.Description("Asset kind"),
			mcp.Enum("image", "font"),
			mcp.Required(),
		),
		mcp.WithString("source",
			mcp.Description("URL or file path"),
			mcp.Required(),
		),
		mcp.WithString("path",
			mcp.Description("Image or font property path. Omit to fill the animation's referenced asset slot."),
		),
	)
}

func loadAssetHandler(h *Host) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewLoadAssetCommand(
			h.Registry, h.Fetcher, h.Reader, h.Decoder,
			req.GetString("instance_id", ""),
			req.GetString("path", ""),
			domain.ParseKind(req.GetString("kind", "")),
			req.GetString("source", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- clear_cache ---

func clearCacheTool() mcp.Tool {
	return mcp.NewTool("clear_cache",
		mcp.WithDescription("Drop the memoized path lookups of an instance."),
		mcp.WithString("instance_id",
			mcp.Description("Instance id"),
			mcp.Required(),
		),
	)
}

func clearCacheHandler(h *Host) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("instance_id", "")
		if !h.Registry.ClearCache(id) {
			return toolError(fmt.Errorf("instance not found: %s", id))
		}
		return mcp.NewToolResultText(fmt.Sprintf("Cleared path cache of %s", id)), nil
	}
}

// valueArg returns the value argument, reading text through
// commands.ParseValue. A missing value is true so bare trigger writes fire.
func valueArg(req mcp.CallToolRequest) any {
	v, ok := req.GetArguments()["value"]
	if !ok {
		return true
	}
	if s, isString := v.(string); isString {
		return commands.ParseValue(s)
	}
	return v
}
