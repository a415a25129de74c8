package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/daybook/internal/cli/formatter"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/intelligence"
	"github.com/alexanderramin/daybook/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newEntryCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entry",
		Aliases: []string{"e"},
		Short:   "Write, list, and delete entries",
	}
	cmd.AddCommand(
		newEntryNewCmd(a),
		newEntryListCmd(a),
		newEntryShowCmd(a),
		newEntryDeleteCmd(a),
	)
	return cmd
}

type entryNewFlags struct {
	moments []string
	kind    string
	style   string
	date    string
	notes   intelligence.WorkNotes
}

func newEntryNewCmd(a *App) *cobra.Command {
	f := &entryNewFlags{}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate an entry from the moments of a day",
		Long: `Generate an entry from the moments of a day.

Each --moment is one short description. Without any --moment flag on an
interactive terminal, a form asks for the moments instead.`,
		Example: `  daybook entry new -m "coffee on the balcony" -m "long call with mum"
  daybook entry new --kind work-record -m "shipped the billing fix" --lesson "write the test first"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := a.requireUser()
			if err != nil {
				return err
			}

			in, err := f.input()
			if err != nil {
				return err
			}
			if len(in.Moments) == 0 {
				if !a.interactive() {
					return fmt.Errorf("at least one --moment is required")
				}
				if in, err = a.runEntryForm(cmd.Context()); err != nil {
					return err
				}
			}

			var entry *domain.Entry
			err = a.withProgress(cmd.Context(), cmd.OutOrStdout(), "Writing your entry…", func(ctx context.Context) error {
				var genErr error
				entry, genErr = a.Entries.GenerateEntry(ctx, userID, in)
				return genErr
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEntry(entry))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&f.moments, "moment", "m", nil, "moment description (repeatable)")
	cmd.Flags().StringVarP(&f.kind, "kind", "k", "", "journal (default) or work-record")
	cmd.Flags().StringVarP(&f.style, "style", "s", "", "writer or figure whose general style to reflect")
	cmd.Flags().StringVar(&f.date, "date", "", "entry date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&f.notes.Hypothesis, "hypothesis", "", "work record: what you expected")
	cmd.Flags().StringVar(&f.notes.Action, "action", "", "work record: what you did")
	cmd.Flags().StringVar(&f.notes.Result, "result", "", "work record: what happened")
	cmd.Flags().StringVar(&f.notes.Lesson, "lesson", "", "work record: what you learned")
	cmd.Flags().StringVar(&f.notes.CurrentRole, "current-role", "", "work record: your current role")
	cmd.Flags().StringVar(&f.notes.TargetRole, "target-role", "", "work record: the role you are working toward")

	return cmd
}

func (f *entryNewFlags) input() (service.GenerateEntryInput, error) {
	in := service.GenerateEntryInput{
		Kind:           f.kind,
		StyleReference: f.style,
	}
	for _, m := range f.moments {
		in.Moments = append(in.Moments, domain.MomentInput{Description: m})
	}
	if notes := intelligence.FormatWorkNotes(f.notes); notes != "" {
		in.Moments = append(in.Moments, domain.MomentInput{Description: notes})
	}
	if strings.TrimSpace(f.date) != "" {
		d, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(f.date), time.Local)
		if err != nil {
			return in, fmt.Errorf("--date: expected YYYY-MM-DD: %w", err)
		}
		in.EntryDate = &d
	}
	return in, nil
}

func newEntryListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := a.requireUser()
			if err != nil {
				return err
			}
			entries, err := a.Entries.ListEntries(cmd.Context(), userID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEntryList(entries, time.Now()))
			return nil
		},
	}
}

func newEntryShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one entry with its moments",
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
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEntry(entry))
			return nil
		},
	}
}

func newEntryDeleteCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an entry and its moments",
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

			if !yes {
				if !a.interactive() {
					return fmt.Errorf("refusing to delete without --yes")
				}
				confirmed := false
				err := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Delete the entry from %s?", formatter.HumanDate(entry.EntryDate.Local()))).
						Description(formatter.Excerpt(entry.Content, 60)).
						Value(&confirmed),
				)).WithTheme(daybookHuhTheme()).WithShowHelp(false).Run()
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Kept."))
					return nil
				}
			}

			if err := a.Entries.DeleteEntry(cmd.Context(), entry.ID, userID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted entry %s\n",
				formatter.StyleGreen.Render("✔"), formatter.TruncID(entry.ID))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// resolveEntry accepts a full ID or the short suffix shown by "entry list".
func (a *App) resolveEntry(ctx context.Context, ref, userID string) (*domain.Entry, error) {
	ref = strings.TrimSpace(ref)
	if len(ref) >= 32 {
		return a.Entries.GetEntry(ctx, ref, userID)
	}
	entries, err := a.Entries.ListEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	var match *domain.Entry
	for _, e := range entries {
		if strings.HasSuffix(e.ID, ref) {
			if match != nil {
				return nil, fmt.Errorf("id %q is ambiguous", ref)
			}
			match = e
		}
	}
	if match == nil {
		return nil, fmt.Errorf("entry %s: %w", ref, domain.ErrNotFound)
	}
	return a.Entries.GetEntry(ctx, match.ID, userID)
}
