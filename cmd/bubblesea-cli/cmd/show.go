package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bubblesea/internal/adapters/tui/styles"
	"bubblesea/internal/application/commands"
	"bubblesea/internal/tagger"
)

var showRendered bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a bubble",
	Long: `Print a bubble in its textual form.

Examples:
  bubblesea-cli show 0x18C3F2A7B41
  bubblesea-cli show --rendered 0x18C3F2A7B41`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewShowCommand(GetSea(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if !showRendered {
			fmt.Fprintln(cmd.OutOrStdout(), result.Encoded)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), styles.RenderSpans(tagger.Parse(result.Bubble.Text)))
		for _, c := range result.Bubble.Children {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", c)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVarP(&showRendered, "rendered", "r", false, "style the text instead of printing the encoding")
	rootCmd.AddCommand(showCmd)
}
