package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"bubblesea/internal/application/commands"
	"bubblesea/internal/domain"
	"bubblesea/internal/ports"
	"bubblesea/internal/tagger"
)

// RegisterReadTools adds all read-only sea tools to the MCP server.
// defaultRoot is used by tree when no root is given.
func RegisterReadTools(s *server.MCPServer, sea ports.Outline, defaultRoot string) {
	s.AddTool(lookupTool(), lookupHandler(sea))
	s.AddTool(treeTool(), treeHandler(sea, defaultRoot))
	s.AddTool(renderTool(), renderHandler(sea))
	s.AddTool(idInfoTool(), idInfoHandler())
}

// --- lookup ---

func lookupTool() mcp.Tool {
	return mcp.NewTool("lookup",
		mcp.WithDescription("Show a bubble in its textual form: (bubble \"text\" child-ids...)."),
		mcp.WithString("id",
			mcp.Description("Bubble ID in hex (e.g. 0x18C3F2A7B41)"),
			mcp.Required(),
		),
	)
}

func lookupHandler(sea ports.Outline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewShowCommand(sea, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Encoded), nil
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the outline below a bubble as an indented tree."),
		mcp.WithString("root_id",
			mcp.Description("Bubble ID to start from. Omit to use the configured root."),
		),
		mcp.WithNumber("max_depth",
			mcp.Description("Levels to expand, 0 for no limit"),
		),
	)
}

func treeHandler(sea ports.Outline, defaultRoot string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root := req.GetString("root_id", defaultRoot)
		depth := req.GetInt("max_depth", 0)

		result, err := commands.NewBuildTreeCommand(sea, root, depth).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(commands.FormatTree(result.Root)), nil
	}
}

// --- render ---

func renderTool() mcp.Tool {
	return mcp.NewTool("render",
		mcp.WithDescription("Split a bubble's text into styled spans (plain, bold, italic, math, linebreak)."),
		mcp.WithString("id",
			mcp.Description("Bubble ID to render"),
		),
		mcp.WithString("text",
			mcp.Description("Raw text to render instead of a stored bubble"),
		),
	)
}

func renderHandler(sea ports.Outline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var spans []tagger.Span
		if id := req.GetString("id", ""); id != "" {
			result, err := commands.NewRenderCommand(sea, id).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			spans = result.Spans
		} else {
			spans = tagger.Parse(req.GetString("text", ""))
		}

		if len(spans) == 0 {
			return mcp.NewToolResultText("No spans."), nil
		}
		var sb strings.Builder
		for _, sp := range spans {
			fmt.Fprintf(&sb, "%-9s %q\n", sp.Kind, sp.Text)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- id_info ---

func idInfoTool() mcp.Tool {
	return mcp.NewTool("id_info",
		mcp.WithDescription("Decode a bubble ID into its creation time and disambiguator. Omit the ID to mint a new one."),
		mcp.WithString("id",
			mcp.Description("Bubble ID in hex"),
		),
	)
}

func idInfoHandler() server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw := strings.TrimSpace(req.GetString("id", ""))
		var id domain.ID
		if raw == "" {
			id = domain.NewID()
		} else {
			parsed, err := domain.ParseID(raw)
			if err != nil {
				return toolError(err)
			}
			id = parsed
		}
		return mcp.NewToolResultText(FormatIDInfo(id)), nil
	}
}

// FormatIDInfo describes what an ID encodes
func FormatIDInfo(id domain.ID) string {
	return fmt.Sprintf("id:            %s\ncreated:       %s\ndisambiguator: %d\n",
		id, id.CreatedAt().UTC().Format(time.RFC3339), id.Disambiguator())
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
