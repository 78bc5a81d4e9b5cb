package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bubblesea/internal/application/commands"
)

var createCmd = &cobra.Command{
	Use:   "create [parent-id] [text]",
	Short: "Create a new bubble",
	Long: `Create a new bubble as the last child of a parent.

Without a parent the bubble is created unattached, which is how a new
root is made.

Examples:
  bubblesea-cli create
  bubblesea-cli create 0x18C3F2A7B41 "Buy **milk**"`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var parentID, text string
		if len(args) > 0 {
			parentID = args[0]
		}
		if len(args) > 1 {
			text = args[1]
		}

		result, err := commands.NewCreateCommand(GetSea(), parentID, text).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id> <text>",
	Short: "Replace the text of a bubble",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewEditCommand(GetSea(), args[0], args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(editCmd)
}
