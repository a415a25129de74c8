package cli

import (
	"fmt"

	"github.com/alexanderramin/daybook/internal/cli/formatter"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newCatalogCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the curated song catalog",
	}
	cmd.AddCommand(
		newCatalogAddCmd(a),
		newCatalogListCmd(a),
		newCatalogUpdateCmd(a),
		newCatalogRemoveCmd(a),
	)
	return cmd
}

type songFlags struct {
	title, artist, url, mood, genre, tags string
}

func (f *songFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "song title")
	fs.StringVar(&f.artist, "artist", "", "artist")
	fs.StringVar(&f.url, "url", "", "playback URL")
	fs.StringVar(&f.mood, "mood", "", "mood label the song fits")
	fs.StringVar(&f.genre, "genre", "", "genre")
	fs.StringVar(&f.tags, "tags", "", "comma-separated tags")
}

// apply copies the flags the user set onto s.
func (f *songFlags) apply(fs *pflag.FlagSet, s *domain.CatalogSong) {
	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("title", &s.Title, f.title)
	set("artist", &s.Artist, f.artist)
	set("url", &s.PlaybackURL, f.url)
	set("mood", &s.Mood, f.mood)
	if fs.Changed("genre") {
		s.Genre = domain.StrPtr(f.genre)
	}
	if fs.Changed("tags") {
		s.Tags = domain.StrPtr(f.tags)
	}
}

func newCatalogAddCmd(a *App) *cobra.Command {
	f := &songFlags{}
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a song to the catalog",
		Example: `  daybook catalog add --title "Holocene" --artist "Bon Iver" --url https://... --mood melancholy --tags "winter,rainy day"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := &domain.CatalogSong{}
			f.apply(cmd.Flags(), s)
			if err := a.Catalog.Create(cmd.Context(), s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(s.Title), formatter.Dim(s.ID))
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newCatalogListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List catalog songs, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			songs, err := a.Catalog.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSongList(songs))
			return nil
		},
	}
}

func newCatalogUpdateCmd(a *App) *cobra.Command {
	f := &songFlags{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a catalog song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.Catalog.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			f.apply(cmd.Flags(), s)
			if err := a.Catalog.Update(cmd.Context(), s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Updated %s\n", formatter.StyleGreen.Render("✔"), formatter.Bold(s.Title))
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newCatalogRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a song from the catalog",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Catalog.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s\n", formatter.StyleGreen.Render("✔"), formatter.Dim(args[0]))
			return nil
		},
	}
}
