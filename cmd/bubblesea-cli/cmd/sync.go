package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bubblesea/internal/application/commands"
	"bubblesea/internal/bootstrap"
	"bubblesea/internal/config"
	"bubblesea/internal/ports"
)

var syncCmd = &cobra.Command{
	Use:   "sync <from> <to>",
	Short: "Copy every bubble from one local store to another",
	Long: `Copy every bubble between the sqlite database and the .bubble directory,
as selected by --db and --dir. Bubbles that do not decode are skipped.

Examples:
  bubblesea-cli sync dir sqlite
  bubblesea-cli sync sqlite dir --dir ./export`,
	Args:        cobra.ExactArgs(2),
	ValidArgs:   []string{config.StoreSQLite, config.StoreDir},
	Annotations: map[string]string{offline: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == args[1] {
			return fmt.Errorf("nothing to do: both stores are %s", args[0])
		}

		from, err := openLocal(args[0])
		if err != nil {
			return err
		}
		defer from.Close()
		to, err := openLocal(args[1])
		if err != nil {
			return err
		}
		defer to.Close()

		result, err := commands.NewSyncCommand(from, to).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func openLocal(kind string) (ports.BubbleStore, error) {
	c := *cfg
	c.Store = kind
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return bootstrap.OpenStore(&c, nil)
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
