package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "bubblesea/internal/adapters/mcp"
	"bubblesea/internal/bootstrap"
	"bubblesea/internal/config"
	"bubblesea/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("bubblesea-mcp: %v", err)
	}

	store := flag.String("store", cfg.Store, "where bubbles live: sqlite, dir or remote")
	db := flag.String("db", cfg.DB, "sqlite database file")
	dir := flag.String("dir", cfg.Dir, "directory of .bubble files")
	remote := flag.String("remote", cfg.Remote, "bubblesea-server base URL")
	root := flag.String("root", cfg.Root, "default root for the tree tool")
	flag.Parse()

	cfg.Store, cfg.DB, cfg.Dir, cfg.Remote, cfg.Root = *store, *db, *dir, *remote, *root
	if err := cfg.Validate(); err != nil {
		log.Fatalf("bubblesea-mcp: %v", err)
	}

	// stdout carries the protocol; logs go to stderr or the configured file
	logger, err := logging.New(logging.Options{
		Level:       cfg.Log.Level,
		Environment: cfg.Log.Environment,
		OutputPath:  cfg.Log.File,
	})
	if err != nil {
		log.Fatalf("bubblesea-mcp: %v", err)
	}

	rt, err := bootstrap.New(cfg, logger)
	if err != nil {
		log.Fatalf("bubblesea-mcp: %v", err)
	}
	defer rt.Close()

	mcpServer := server.NewMCPServer(
		"bubblesea-mcp",
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

	mcpadapter.RegisterReadTools(mcpServer, rt.Sea, cfg.Root)
	mcpadapter.RegisterWriteTools(mcpServer, rt.Sea)

	if err := server.ServeStdio(mcpServer); err != nil {
		rt.Close()
		log.Fatalf("bubblesea-mcp: %v", err)
	}
}
