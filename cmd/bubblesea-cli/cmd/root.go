package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"bubblesea/internal/bootstrap"
	"bubblesea/internal/config"
	"bubblesea/internal/logging"
	"bubblesea/internal/ports"
)

// offline marks commands that never touch a store
const offline = "offline"

var (
	cfg *config.Config
	rt  *bootstrap.Runtime

	storeFlag    string
	dbFlag       string
	dirFlag      string
	remoteFlag   string
	rootFlag     string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "bubblesea-cli",
	Short: "CLI for editing a sea of bubbles",
	Long: `bubblesea-cli edits an outline of bubbles: pieces of text with ordered
children, where one bubble may live under several parents.

Bubbles are kept in a local sqlite database, a directory of .bubble files,
or on a bubblesea-server, selected with --store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		loaded, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = loaded

		if cmd.Annotations[offline] == "true" {
			return nil
		}

		logger, err := logging.New(logging.Options{
			Level:       cfg.Log.Level,
			Environment: cfg.Log.Environment,
			OutputPath:  cfg.Log.File,
		})
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}

		rt, err = bootstrap.New(cfg, logger)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if rt == nil {
			return nil
		}
		err := rt.Close()
		rt = nil
		return err
	},
}

// loadConfig applies explicitly set flags over file and environment settings
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	override := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}
	override("store", &c.Store, storeFlag)
	override("db", &c.DB, dbFlag)
	override("dir", &c.Dir, dirFlag)
	override("remote", &c.Remote, remoteFlag)
	override("root", &c.Root, rootFlag)
	override("log-level", &c.Log.Level, logLevelFlag)
	return c, c.Validate()
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&storeFlag, "store", "s", config.StoreSQLite, "where bubbles live: sqlite, dir or remote")
	pf.StringVar(&dbFlag, "db", config.DefaultDatabasePath(), "sqlite database file")
	pf.StringVar(&dirFlag, "dir", config.DefaultDir, "directory of .bubble files")
	pf.StringVar(&remoteFlag, "remote", config.DefaultRemote, "bubblesea-server base URL")
	pf.StringVar(&rootFlag, "root", config.DefaultRoot, "root bubble for tree")
	pf.StringVar(&logLevelFlag, "log-level", "info", "debug, info, warn or error")
}

// GetSea returns the initialized sea
func GetSea() ports.Outline {
	return rt.Sea
}
