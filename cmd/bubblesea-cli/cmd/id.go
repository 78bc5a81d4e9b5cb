package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	mcpadapter "bubblesea/internal/adapters/mcp"
	"bubblesea/internal/domain"
)

var idCmd = &cobra.Command{
	Use:   "id",
	Short: "Work with bubble IDs",
}

var idNewCmd = &cobra.Command{
	Use:         "new",
	Short:       "Mint a fresh bubble ID",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{offline: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), domain.NewID())
		return nil
	},
}

var idInfoCmd = &cobra.Command{
	Use:   "info <id>",
	Short: "Show when a bubble ID was created",
	Long: `Decode a bubble ID into its creation time and disambiguator.

Example:
  bubblesea-cli id info 0x18C3F2A7B41`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{offline: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := domain.ParseID(strings.TrimSpace(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), mcpadapter.FormatIDInfo(id))
		return nil
	},
}

func init() {
	idCmd.AddCommand(idNewCmd)
	idCmd.AddCommand(idInfoCmd)
	rootCmd.AddCommand(idCmd)
}
