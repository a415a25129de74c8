package mcpserver

import (
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
)

type entryView struct {
	ID             string    `json:"id"`
	EntryDate      time.Time `json:"entry_date"`
	Kind           string    `json:"kind"`
	StyleReference string    `json:"style_reference,omitempty"`
	Content        string    `json:"content"`
	Moments        []string  `json:"moments"`
}

func toEntryView(e *domain.Entry) entryView {
	return entryView{
		ID:             e.ID,
		EntryDate:      e.EntryDate,
		Kind:           string(e.Kind),
		StyleReference: domain.StrValue(e.StyleReference),
		Content:        e.Content,
		Moments:        e.Descriptions(),
	}
}

type songView struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	PlaybackURL string `json:"playback_url"`
	Source      string `json:"source"`
}

type recommendationsView struct {
	Mood          string     `json:"mood"`
	CuratedSongs  []songView `json:"curated_songs"`
	ExternalSongs []songView `json:"external_songs"`
}

func toRecommendationsView(r *domain.Recommendations) recommendationsView {
	out := recommendationsView{
		Mood:          string(r.Mood),
		CuratedSongs:  make([]songView, len(r.CuratedSongs)),
		ExternalSongs: make([]songView, len(r.ExternalSongs)),
	}
	for i, s := range r.CuratedSongs {
		out.CuratedSongs[i] = songView{Title: s.Title, Artist: s.Artist, PlaybackURL: s.PlaybackURL, Source: string(domain.RecommendationCurated)}
	}
	for i, t := range r.ExternalSongs {
		out.ExternalSongs[i] = songView{Title: t.Title, Artist: t.Artist, PlaybackURL: t.PlaybackURL, Source: string(domain.RecommendationExternal)}
	}
	return out
}
