package domain

import (
	"strings"
	"time"
)

// CatalogSong is an admin-curated recommendation.
type CatalogSong struct {
	ID          string
	Title       string
	Artist      string
	PlaybackURL string
	Mood        string
	Genre       *string
	Tags        *string
	CreatedAt   time.Time
}

func (s *CatalogSong) Validate() error {
	switch {
	case strings.TrimSpace(s.Title) == "":
		return NewValidationError("title", "required")
	case strings.TrimSpace(s.Artist) == "":
		return NewValidationError("artist", "required")
	case strings.TrimSpace(s.PlaybackURL) == "":
		return NewValidationError("playback_url", "required")
	case strings.TrimSpace(s.Mood) == "":
		return NewValidationError("mood", "required")
	}
	return nil
}

// ExternalTrack is a track returned by the external music catalog.
type ExternalTrack struct {
	ID          string
	Title       string
	Artist      string
	ArtworkURL  string
	PlaybackURL string
}

// Recommendations groups songs by provenance. Both lists are always non-nil.
type Recommendations struct {
	Mood          MoodLabel
	CuratedSongs  []CatalogSong
	ExternalSongs []ExternalTrack
}
