package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"bubblesea/internal/adapters/editor"
	"bubblesea/internal/adapters/tui"
	"bubblesea/internal/bootstrap"
	"bubblesea/internal/config"
	"bubblesea/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store := flag.String("store", cfg.Store, "where bubbles live: sqlite, dir or remote")
	root := flag.String("root", cfg.Root, "bubble shown at the top of the outline")
	flag.Parse()

	cfg.Store, cfg.Root = *store, *root
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file or nowhere
	logger := zap.NewNop()
	if cfg.Log.File != "" {
		logger, err = logging.New(logging.Options{
			Level:       cfg.Log.Level,
			Environment: cfg.Log.Environment,
			OutputPath:  cfg.Log.File,
		})
		if err != nil {
			return err
		}
	}

	rt, err := bootstrap.New(cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	app := tui.NewApp(context.Background(), rt.Sea, cfg.Root, editor.NewOpener(""))

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
