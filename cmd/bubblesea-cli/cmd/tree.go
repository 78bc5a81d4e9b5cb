package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bubblesea/internal/application/commands"
)

var treeDepth int

var treeCmd = &cobra.Command{
	Use:   "tree [root-id]",
	Short: "Display the outline below a bubble",
	Long: `Display the outline below a bubble, one bubble per line.

Bubbles already shown on the way down are marked (cycle), references
that cannot be resolved are marked (missing).

Examples:
  bubblesea-cli tree
  bubblesea-cli tree 0x18C3F2A7B41 --depth 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := cfg.Root
		if len(args) == 1 {
			root = args[0]
		}

		result, err := commands.NewBuildTreeCommand(GetSea(), root, treeDepth).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), commands.FormatTree(result.Root))
		return nil
	},
}

func init() {
	treeCmd.Flags().IntVarP(&treeDepth, "depth", "d", 0, "levels to expand, 0 for no limit")
	rootCmd.AddCommand(treeCmd)
}
