package formatter

import (
	"strings"

	"github.com/alexanderramin/daybook/internal/domain"
)

// FormatSongList renders curated catalog songs.
func FormatSongList(songs []*domain.CatalogSong) string {
	if len(songs) == 0 {
		return Dim("The catalog is empty.") + "\n"
	}
	rows := make([][]string, 0, len(songs))
	for _, s := range songs {
		rows = append(rows, []string{
			TruncID(s.ID),
			s.Title,
			s.Artist,
			MoodStyle(domain.MoodLabel(s.Mood)).Render(s.Mood),
			domain.StrValue(s.Genre),
			domain.StrValue(s.Tags),
		})
	}
	return RenderTable([]string{"ID", "Title", "Artist", "Mood", "Genre", "Tags"}, rows) + "\n"
}

// FormatQuoteList renders quotes with their active flag.
func FormatQuoteList(quotes []*domain.Quote) string {
	if len(quotes) == 0 {
		return Dim("No quotes.") + "\n"
	}
	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		active := StyleGreen.Render("● active")
		if !q.IsActive {
			active = StyleDim.Render("○ hidden")
		}
		rows = append(rows, []string{TruncID(q.ID), Excerpt(q.Text, 50), q.Author, active})
	}
	return RenderTable([]string{"ID", "Quote", "Author", "Status"}, rows) + "\n"
}

// FormatQuote renders a single quote as an epigraph.
func FormatQuote(q *domain.Quote) string {
	var b strings.Builder
	b.WriteString(StyleFg.Italic(true).Render("“" + strings.TrimSpace(q.Text) + "”"))
	b.WriteString("\n")
	b.WriteString(Dim("    — " + q.Author))
	b.WriteString("\n")
	if c := domain.StrValue(q.Comment); c != "" {
		b.WriteString(Dim("    " + c))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatReactions renders reactions grouped in insertion order.
func FormatReactions(reactions []domain.Reaction) string {
	if len(reactions) == 0 {
		return Dim("No reactions yet.") + "\n"
	}
	rows := make([][]string, 0, len(reactions))
	for _, r := range reactions {
		rows = append(rows, []string{r.Emoji, string(r.RecommendationType), r.RecommendationID, HumanTimestamp(r.CreatedAt)})
	}
	return RenderTable([]string{"", "Source", "Song", "When"}, rows) + "\n"
}
