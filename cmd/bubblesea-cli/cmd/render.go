package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bubblesea/internal/adapters/tui/styles"
	"bubblesea/internal/tagger"
)

var renderSpans bool

var renderCmd = &cobra.Command{
	Use:   "render <text>",
	Short: "Style text the way bubbles are displayed",
	Long: `Style text the way bubbles are displayed: *italic*, **bold** and $math$.
Styles do not nest and an unclosed marker is printed as is.

Examples:
  bubblesea-cli render "An *italic* and **bold** $x^2$"
  bubblesea-cli render --spans "a *b"`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{offline: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		spans := tagger.Parse(args[0])
		if !renderSpans {
			fmt.Fprintln(cmd.OutOrStdout(), styles.RenderSpans(spans))
			return nil
		}
		for _, s := range spans {
			fmt.Fprintf(cmd.OutOrStdout(), "%-9s %q\n", s.Kind, s.Text)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderSpans, "spans", false, "list the spans instead of styling them")
	rootCmd.AddCommand(renderCmd)
}
