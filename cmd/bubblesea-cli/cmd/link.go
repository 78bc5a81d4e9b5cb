package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bubblesea/internal/application/commands"
)

var linkCmd = &cobra.Command{
	Use:   "link <id> <parent-id>",
	Short: "Make a bubble the last child of a parent",
	Long: `Make a bubble the last child of a parent. If it already is a child it
moves to the end. A bubble may be linked under several parents.

Example:
  bubblesea-cli link 0x18C3F2A7B41 0x18C3F2A0000`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewLinkCommand(GetSea(), args[0], args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink <id> <parent-id>",
	Short: "Remove a bubble from a parent's children",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewUnlinkCommand(GetSea(), args[0], args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var indentCmd = &cobra.Command{
	Use:   "indent <id> <parent-id> [senpai-id]",
	Short: "Move a bubble under the sibling above it",
	Long: `Move a bubble from its parent to the end of its senpai's children.
The senpai defaults to the sibling directly above the bubble.

Example:
  bubblesea-cli indent 0x18C3F2A7B41 0x18C3F2A0000`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var senpai string
		if len(args) == 3 {
			senpai = args[2]
		}
		result, err := commands.NewIndentCommand(GetSea(), args[0], senpai, args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var unindentCmd = &cobra.Command{
	Use:   "unindent <id> <parent-id> <grandparent-id>",
	Short: "Move a bubble out of its parent",
	Long: `Move a bubble out of its parent so that it directly follows the parent
under the grandparent.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewUnindentCommand(GetSea(), args[0], args[1], args[2]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
	rootCmd.AddCommand(indentCmd)
	rootCmd.AddCommand(unindentCmd)
}
