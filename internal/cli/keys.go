package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stationpicker/internal/ui"
)

func newKeysCmd() *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Show the key reference",
		Long:  "Open the key reference in a pager, or print it with --print.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			content := ui.NewHelpRenderer(ui.DefaultKeyMap()).RenderHelpContent()
			if printOnly {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), content)
				return err
			}
			return ui.ShowPager(content)
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "print to stdout instead of opening the pager")
	return cmd
}
