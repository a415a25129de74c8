package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/daybook/internal/cli/formatter"
	"github.com/alexanderramin/daybook/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(a *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <seed.json>",
		Short: "Seed the catalog and quotes from a JSON file",
		Long: `Seed the curated catalog and quotes from a JSON file of the form

  {"songs": [{"title", "artist", "playback_url", "mood", "genre", "tags": []}],
   "quotes": [{"text", "author", "comment", "active"}]}

The whole file is validated first. Nothing is written if any record is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := importer.LoadSeed(args[0])
			if err != nil {
				return err
			}
			if errs := importer.ValidateSeed(schema); len(errs) > 0 {
				var b strings.Builder
				for _, e := range errs {
					b.WriteString("  ")
					b.WriteString(formatter.StyleRed.Render("✖ "))
					b.WriteString(e.Error())
					b.WriteString("\n")
				}
				fmt.Fprint(cmd.ErrOrStderr(), b.String())
				return fmt.Errorf("%s: %d problem(s), nothing imported", args[0], len(errs))
			}

			seed := importer.Convert(schema)
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%s would import %d song(s) and %d quote(s)\n",
					formatter.Dim("dry run:"), len(seed.Songs), len(seed.Quotes))
				return nil
			}

			var errs []error
			songs, quotes := 0, 0
			for _, s := range seed.Songs {
				if err := a.Catalog.Create(cmd.Context(), s); err != nil {
					errs = append(errs, fmt.Errorf("song %q: %w", s.Title, err))
					continue
				}
				songs++
			}
			for _, q := range seed.Quotes {
				if err := a.Quotes.Create(cmd.Context(), q); err != nil {
					errs = append(errs, fmt.Errorf("quote by %s: %w", q.Author, err))
					continue
				}
				quotes++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d song(s) and %d quote(s)\n",
				formatter.StyleGreen.Render("✔"), songs, quotes)
			return errors.Join(errs...)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate without writing")
	return cmd
}
