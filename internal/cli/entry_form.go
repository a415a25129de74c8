package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/intelligence"
	"github.com/alexanderramin/daybook/internal/service"
	"github.com/charmbracelet/huh"
)

const noStyle = ""

// entryFormValues collects what the entry form binds to.
type entryFormValues struct {
	kind    string
	moments string
	notes   intelligence.WorkNotes
	suggest bool
	style   string
}

func (v *entryFormValues) input() service.GenerateEntryInput {
	in := service.GenerateEntryInput{Kind: v.kind, StyleReference: v.style}
	for _, line := range splitMomentLines(v.moments) {
		in.Moments = append(in.Moments, domain.MomentInput{Description: line})
	}
	if v.kind == string(domain.EntryKindWorkRecord) {
		if notes := intelligence.FormatWorkNotes(v.notes); notes != "" {
			in.Moments = append(in.Moments, domain.MomentInput{Description: notes})
		}
	}
	return in
}

func splitMomentLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if l := strings.TrimSpace(line); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func validateMoments(s string) error {
	if len(splitMomentLines(s)) == 0 {
		return errors.New("write at least one moment")
	}
	return nil
}

// entryForm asks for kind, moments, optional work notes and whether to
// look for style suggestions.
func entryForm(v *entryFormValues) *huh.Form {
	notWorkRecord := func() bool { return v.kind != string(domain.EntryKindWorkRecord) }

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What are you writing?").
				Options(
					huh.NewOption("Journal entry", string(domain.EntryKindJournal)),
					huh.NewOption("Work record", string(domain.EntryKindWorkRecord)),
				).
				Value(&v.kind),
			huh.NewText().
				Title("Moments").
				Description("One moment per line.").
				Placeholder("coffee on the balcony\nlong call with mum").
				Value(&v.moments).
				Validate(validateMoments),
		),
		huh.NewGroup(
			huh.NewInput().Title("Hypothesis (optional)").Value(&v.notes.Hypothesis),
			huh.NewInput().Title("Action (optional)").Value(&v.notes.Action),
			huh.NewInput().Title("Result (optional)").Value(&v.notes.Result),
			huh.NewInput().Title("Lesson (optional)").Value(&v.notes.Lesson),
			huh.NewInput().Title("Current role (optional)").Value(&v.notes.CurrentRole),
			huh.NewInput().Title("Target role (optional)").Value(&v.notes.TargetRole),
		).WithHideFunc(notWorkRecord),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Suggest a writing style?").
				Affirmative("Yes").
				Negative("No, plain voice").
				Value(&v.suggest),
		),
	).WithTheme(daybookHuhTheme()).WithShowHelp(false)
}

// styleForm offers the suggested archetypes plus a plain-voice option.
func styleForm(suggestions []intelligence.StyleSuggestion, value *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(suggestions)+1)
	for _, s := range suggestions {
		options = append(options, huh.NewOption(fmt.Sprintf("%s · %s", s.Name, s.Reason), s.Name))
	}
	options = append(options, huh.NewOption("Plain voice", noStyle))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Pick a style").
				Options(options...).
				Value(value),
		),
	).WithTheme(daybookHuhTheme()).WithShowHelp(false)
}

// runEntryForm drives the interactive flow for "entry new".
func (a *App) runEntryForm(ctx context.Context) (service.GenerateEntryInput, error) {
	v := &entryFormValues{kind: string(domain.EntryKindJournal)}
	if err := entryForm(v).RunWithContext(ctx); err != nil {
		return service.GenerateEntryInput{}, err
	}

	if v.suggest && a.Styles != nil {
		res, err := a.Styles.Suggest(ctx, splitMomentLines(v.moments))
		switch {
		case err != nil:
			a.warn(ctx, "style suggestions unavailable", err)
		case !res.Degraded && len(res.Suggestions) > 0:
			if err := styleForm(res.Suggestions, &v.style).RunWithContext(ctx); err != nil {
				return service.GenerateEntryInput{}, err
			}
		}
	}
	return v.input(), nil
}

func (a *App) warn(ctx context.Context, msg string, err error) {
	if a.Logger != nil {
		a.Logger.WarnContext(ctx, msg, "error", err)
	}
}
