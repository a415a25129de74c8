package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/intelligence"
)

// FormatRecommendations renders the mood and both song lists.
func FormatRecommendations(r *domain.Recommendations) string {
	var b strings.Builder

	b.WriteString("Mood: ")
	b.WriteString(MoodBadge(r.Mood))
	b.WriteString("\n\n")

	b.WriteString(Header("From the catalog"))
	b.WriteString("\n")
	if len(r.CuratedSongs) == 0 {
		b.WriteString(Dim("  nothing curated for this mood yet"))
		b.WriteString("\n")
	}
	for i, s := range r.CuratedSongs {
		b.WriteString(songLine(i+1, s.Title, s.Artist, s.PlaybackURL))
	}

	if len(r.ExternalSongs) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("From your library"))
		b.WriteString("\n")
		for i, t := range r.ExternalSongs {
			b.WriteString(songLine(i+1, t.Title, t.Artist, t.PlaybackURL))
		}
	}
	return b.String()
}

func songLine(n int, title, artist, url string) string {
	line := fmt.Sprintf("  %s %s %s %s\n",
		StyleHeader.Render(fmt.Sprintf("%2d.", n)),
		Bold(title),
		Dim("by"),
		StyleFg.Render(artist),
	)
	if url != "" {
		line += "      " + StyleBlue.Render(url) + "\n"
	}
	return line
}

// FormatStyleSuggestions renders the five archetypes or a degraded notice.
func FormatStyleSuggestions(s *intelligence.StyleSuggestions) string {
	if s.Degraded || len(s.Suggestions) == 0 {
		return StyleYellow.Render("No style suggestions this time. The model reply could not be read.") + "\n"
	}
	var b strings.Builder
	b.WriteString(Header("Writing styles"))
	b.WriteString("\n")
	for i, sg := range s.Suggestions {
		b.WriteString(fmt.Sprintf("  %s %s\n", StyleHeader.Render(fmt.Sprintf("%d.", i+1)), StylePurple.Render(sg.Name)))
		b.WriteString("     ")
		b.WriteString(Dim(sg.Reason))
		b.WriteString("\n")
	}
	return b.String()
}
