package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/daybook/internal/cli/formatter"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/service"
	"github.com/spf13/cobra"
)

func newRecommendCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "recommend <entry-id>",
		Aliases: []string{"rec"},
		Short:   "Recommend songs for the mood of an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a.requireUser()
			if err != nil {
				return err
			}
			entry, err := a.resolveEntry(cmd.Context(), args[0], userID)
			if err != nil {
				return err
			}

			var recs *domain.Recommendations
			err = a.withProgress(cmd.Context(), cmd.OutOrStdout(), "Listening to your day…", func(ctx context.Context) error {
				var recErr error
				recs, recErr = a.Recommendations.GetRecommendations(ctx, entry.ID, userID)
				return recErr
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecommendations(recs))
			return nil
		},
	}
}

func newReactCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "react",
		Short: "React to songs recommended for an entry",
	}
	cmd.AddCommand(newReactAddCmd(a), newReactListCmd(a))
	return cmd
}

func newReactAddCmd(a *App) *cobra.Command {
	var in service.ReactionInput

	cmd := &cobra.Command{
		Use:     "add <entry-id>",
		Short:   "Attach an emoji to a recommended song",
		Example: `  daybook react add 3e4f5a6b --source curated --song 0190c2b7-... --emoji 🎧`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a.requireUser()
			if err != nil {
				return err
			}
			entry, err := a.resolveEntry(cmd.Context(), args[0], userID)
			if err != nil {
				return err
			}
			r, err := a.Reactions.React(cmd.Context(), entry.ID, userID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s\n", formatter.StyleGreen.Render("✔"), r.Emoji, r.RecommendationID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.RecommendationType, "source", string(domain.RecommendationCurated), "curated or external")
	cmd.Flags().StringVar(&in.RecommendationID, "song", "", "ID of the recommended song")
	cmd.Flags().StringVar(&in.Emoji, "emoji", "", "reaction emoji")
	_ = cmd.MarkFlagRequired("song")
	_ = cmd.MarkFlagRequired("emoji")
	return cmd
}

func newReactListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <entry-id>",
		Short: "List your reactions for an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a.requireUser()
			if err != nil {
				return err
			}
			entry, err := a.resolveEntry(cmd.Context(), args[0], userID)
			if err != nil {
				return err
			}
			reactions, err := a.Reactions.List(cmd.Context(), entry.ID, userID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReactions(reactions))
			return nil
		},
	}
}
