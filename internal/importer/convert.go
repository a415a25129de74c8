package importer

import (
	"strings"

	"github.com/alexanderramin/daybook/internal/domain"
)

// Seed is a converted seed file ready for the catalog and quote services,
// which assign IDs and timestamps on create.
type Seed struct {
	Songs  []*domain.CatalogSong
	Quotes []*domain.Quote
}

// Convert maps a validated schema to domain objects. Call ValidateSeed first.
func Convert(schema *SeedSchema) *Seed {
	out := &Seed{
		Songs:  make([]*domain.CatalogSong, 0, len(schema.Songs)),
		Quotes: make([]*domain.Quote, 0, len(schema.Quotes)),
	}

	for _, s := range schema.Songs {
		song := &domain.CatalogSong{
			Title:       s.Title,
			Artist:      s.Artist,
			PlaybackURL: s.PlaybackURL,
			Mood:        s.Mood,
		}
		if g := strings.TrimSpace(s.Genre); g != "" {
			song.Genre = domain.StrPtr(g)
		}
		if tags := joinTags(s.Tags); tags != "" {
			song.Tags = domain.StrPtr(tags)
		}
		out.Songs = append(out.Songs, song)
	}

	for _, q := range schema.Quotes {
		quote := &domain.Quote{
			Text:     q.Text,
			Author:   q.Author,
			IsActive: q.Active == nil || *q.Active,
		}
		if c := strings.TrimSpace(q.Comment); c != "" {
			quote.Comment = domain.StrPtr(c)
		}
		out.Quotes = append(out.Quotes, quote)
	}
	return out
}

// joinTags stores tags in the comma-separated form the catalog searches.
func joinTags(tags []string) string {
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, ",")
}
