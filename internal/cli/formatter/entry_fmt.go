package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
)

const contentWidth = 72

// FormatEntry renders one entry with its moments and content.
func FormatEntry(e *domain.Entry) string {
	var b strings.Builder

	b.WriteString(KindBadge(e.Kind))
	b.WriteString("  ")
	b.WriteString(Bold(e.EntryDate.Local().Format("Monday, January 2, 2006")))
	b.WriteString("  ")
	b.WriteString(Dim(e.ID))
	b.WriteString("\n")
	if ref := domain.StrValue(e.StyleReference); ref != "" {
		b.WriteString(Dim("in the spirit of "))
		b.WriteString(StylePurple.Render(ref))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(RenderBox("", StyleFg.Render(Wrap(e.Content, contentWidth))))
	b.WriteString("\n\n")

	b.WriteString(Header("Moments"))
	b.WriteString("\n")
	for i, m := range e.Moments {
		b.WriteString(fmt.Sprintf("  %s %s\n", StyleHeader.Render(fmt.Sprintf("%d.", i+1)), m.Description))
		if meta := momentMeta(m); meta != "" {
			b.WriteString("     ")
			b.WriteString(Dim(meta))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func momentMeta(m domain.Moment) string {
	var parts []string
	if v := domain.StrValue(m.TakenAt); v != "" {
		parts = append(parts, v)
	}
	if v := domain.StrValue(m.Location); v != "" {
		parts = append(parts, v)
	}
	if v := domain.StrValue(m.Weather); v != "" {
		parts = append(parts, v)
	}
	return strings.Join(parts, " · ")
}

// FormatEntryList renders entries as a table, newest first as given.
func FormatEntryList(entries []*domain.Entry, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No entries yet. Create one with `daybook entry new`.") + "\n"
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			TruncID(e.ID),
			HumanDateFrom(e.EntryDate.Local(), now),
			KindBadge(e.Kind),
			fmt.Sprintf("%d", len(e.Moments)),
			Excerpt(e.Content, 48),
		})
	}
	return RenderTable(
		[]string{"ID", "Date", "Kind", "Moments", "Excerpt"},
		rows,
		AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft,
	) + "\n"
}
