package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/daybook/internal/cli/formatter"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newQuoteCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Manage the quotes shown alongside entries",
	}
	cmd.AddCommand(
		newQuoteAddCmd(a),
		newQuoteListCmd(a),
		newQuoteUpdateCmd(a),
		newQuoteRemoveCmd(a),
		newQuoteRandomCmd(a),
	)
	return cmd
}

type quoteFlags struct {
	text, author, comment string
	active                bool
}

func (f *quoteFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.text, "text", "", "quote text")
	fs.StringVar(&f.author, "author", "", "who said it")
	fs.StringVar(&f.comment, "comment", "", "optional note")
	fs.BoolVar(&f.active, "active", true, "include in random picks")
}

func (f *quoteFlags) apply(fs *pflag.FlagSet, q *domain.Quote) {
	if fs.Changed("text") {
		q.Text = f.text
	}
	if fs.Changed("author") {
		q.Author = f.author
	}
	if fs.Changed("comment") {
		q.Comment = domain.StrPtr(f.comment)
	}
	if fs.Changed("active") {
		q.IsActive = f.active
	}
}

func newQuoteAddCmd(a *App) *cobra.Command {
	f := &quoteFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := &domain.Quote{IsActive: true}
			f.apply(cmd.Flags(), q)
			if err := a.Quotes.Create(cmd.Context(), q); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added quote by %s %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(q.Author), formatter.Dim(q.ID))
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newQuoteListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all quotes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			quotes, err := a.Quotes.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatQuoteList(quotes))
			return nil
		},
	}
}

func newQuoteUpdateCmd(a *App) *cobra.Command {
	f := &quoteFlags{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a quote or hide it from random picks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := a.Quotes.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			f.apply(cmd.Flags(), q)
			if err := a.Quotes.Update(cmd.Context(), q); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Updated %s\n", formatter.StyleGreen.Render("✔"), formatter.Dim(q.ID))
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newQuoteRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a quote",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Quotes.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s\n", formatter.StyleGreen.Render("✔"), formatter.Dim(args[0]))
			return nil
		},
	}
}

func newQuoteRandomCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Print a random active quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := a.Quotes.Random(cmd.Context())
			if errors.Is(err, domain.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No active quotes."))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatQuote(q))
			return nil
		},
	}
}
