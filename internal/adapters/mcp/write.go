package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"bubblesea/internal/application/commands"
	"bubblesea/internal/ports"
)

// RegisterWriteTools adds all write sea tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, sea ports.Outline) {
	s.AddTool(createTool(), createHandler(sea))
	s.AddTool(editTool(), editHandler(sea))
	s.AddTool(linkTool(), linkHandler(sea))
	s.AddTool(unlinkTool(), unlinkHandler(sea))
	s.AddTool(indentTool(), indentHandler(sea))
	s.AddTool(unindentTool(), unindentHandler(sea))
}

// --- create ---

func createTool() mcp.Tool {
	return mcp.NewTool("create",
		mcp.WithDescription("Create a new bubble. With a parent it becomes the parent's last child; without one it is a new root."),
		mcp.WithString("parent_id",
			mcp.Description("Parent bubble ID. Omit to create an unattached bubble."),
		),
		mcp.WithString("text",
			mcp.Description("Initial text; *italic*, **bold** and $math$ are understood"),
		),
	)
}

func createHandler(sea ports.Outline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewCreateCommand(sea, req.GetString("parent_id", ""), req.GetString("text", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- edit ---

func editTool() mcp.Tool {
	return mcp.NewTool("edit",
		mcp.WithDescription("Replace the text of a bubble, keeping its children."),
		mcp.WithString("id",
			mcp.Description("Bubble ID to edit"),
			mcp.Required(),
		),
		mcp.WithString("text",
			mcp.Description("New text"),
			mcp.Required(),
		),
	)
}

func editHandler(sea ports.Outline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewEditCommand(sea, req.GetString("id", ""), req.GetString("text", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- link / unlink ---

func linkTool() mcp.Tool {
	return mcp.NewTool("link",
		mcp.WithDescription("Make a bubble the last child of a parent. A bubble may live under several parents."),
		mcp.WithString("id", mcp.Description("Bubble ID to link"), mcp.Required()),
		mcp.WithString("parent_id", mcp.Description("Parent bubble ID"), mcp.Required()),
	)
}

func linkHandler(sea ports.Outline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewLinkCommand(sea, req.GetString("id", ""), req.GetString("parent_id", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func unlinkTool() mcp.Tool {
	return mcp.NewTool("unlink",
		mcp.WithDescription("Remove a bubble from a parent's children. The bubble itself is kept."),
		mcp.WithString("id", mcp.Description("Bubble ID to unlink"), mcp.Required()),
		mcp.WithString("parent_id", mcp.Description("Parent bubble ID"), mcp.Required()),
	)
}

func unlinkHandler(sea ports.Outline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewUnlinkCommand(sea, req.GetString("id", ""), req.GetString("parent_id", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- indent / unindent ---

func indentTool() mcp.Tool {
	return mcp.NewTool("indent",
		mcp.WithDescription("Move a bubble under the sibling directly above it (its senpai), as that sibling's last child."),
		mcp.WithString("id", mcp.Description("Bubble ID to indent"), mcp.Required()),
		mcp.WithString("parent_id", mcp.Description("Current parent bubble ID"), mcp.Required()),
		mcp.WithString("senpai_id", mcp.Description("New parent. Omit to use the preceding sibling.")),
	)
}

func indentHandler(sea ports.Outline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewIndentCommand(sea,
			req.GetString("id", ""),
			req.GetString("senpai_id", ""),
			req.GetString("parent_id", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func unindentTool() mcp.Tool {
	return mcp.NewTool("unindent",
		mcp.WithDescription("Move a bubble out of its parent so it directly follows the parent under the grandparent."),
		mcp.WithString("id", mcp.Description("Bubble ID to unindent"), mcp.Required()),
		mcp.WithString("parent_id", mcp.Description("Current parent bubble ID"), mcp.Required()),
		mcp.WithString("grandparent_id", mcp.Description("The parent's parent"), mcp.Required()),
	)
}

func unindentHandler(sea ports.Outline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewUnindentCommand(sea,
			req.GetString("id", ""),
			req.GetString("parent_id", ""),
			req.GetString("grandparent_id", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
