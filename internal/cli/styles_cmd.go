package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/daybook/internal/cli/formatter"
	"github.com/alexanderramin/daybook/internal/intelligence"
	"github.com/spf13/cobra"
)

func newStylesCmd(a *App) *cobra.Command {
	var moments []string

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "Suggest writing styles that fit some moments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var res *intelligence.StyleSuggestions
			err := a.withProgress(cmd.Context(), cmd.OutOrStdout(), "Thinking about voices…", func(ctx context.Context) error {
				var sErr error
				res, sErr = a.Styles.Suggest(ctx, moments)
				return sErr
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStyleSuggestions(res))
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&moments, "moment", "m", nil, "moment description (repeatable)")
	return cmd
}
