package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
)

// Entry options
type EntryOption func(*domain.Entry)

func WithEntryDate(d time.Time) EntryOption {
	return func(e *domain.Entry) {
		e.EntryDate = d
	}
}

func WithKind(k domain.EntryKind) EntryOption {
	return func(e *domain.Entry) {
		e.Kind = k
	}
}

func WithStyleReference(s string) EntryOption {
	return func(e *domain.Entry) {
		e.StyleReference = &s
	}
}

func WithContent(c string) EntryOption {
	return func(e *domain.Entry) {
		e.Content = c
	}
}

// WithMoments replaces the default moment with one moment per description.
func WithMoments(descriptions ...string) EntryOption {
	return func(e *domain.Entry) {
		e.Moments = e.Moments[:0]
		for i, d := range descriptions {
			e.Moments = append(e.Moments, NewTestMoment(e.ID, i, d))
		}
	}
}

func NewTestEntry(userID string, opts ...EntryOption) *domain.Entry {
	now := time.Now().UTC().Truncate(time.Microsecond)
	e := &domain.Entry{
		ID:        domain.NewID(),
		UserID:    userID,
		EntryDate: now,
		Content:   "Morning coffee by the window, then a long walk home.",
		Kind:      domain.EntryKindJournal,
		CreatedAt: now,
	}
	e.Moments = []domain.Moment{NewTestMoment(e.ID, 0, "coffee by the window")}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Moment options
type MomentOption func(*domain.Moment)

func WithLocation(l string) MomentOption {
	return func(m *domain.Moment) {
		m.Location = &l
	}
}

func WithWeather(w string) MomentOption {
	return func(m *domain.Moment) {
		m.Weather = &w
	}
}

func WithTakenAt(t string) MomentOption {
	return func(m *domain.Moment) {
		m.TakenAt = &t
	}
}

func NewTestMoment(entryID string, position int, description string, opts ...MomentOption) domain.Moment {
	m := domain.Moment{
		ID:          domain.NewID(),
		EntryID:     entryID,
		Position:    position,
		ImageURL:    fmt.Sprintf("https://images.test/%d.jpg", position),
		Description: description,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Catalog options
type SongOption func(*domain.CatalogSong)

func WithTags(tags string) SongOption {
	return func(s *domain.CatalogSong) {
		s.Tags = &tags
	}
}

func WithGenre(g string) SongOption {
	return func(s *domain.CatalogSong) {
		s.Genre = &g
	}
}

func WithSongCreatedAt(t time.Time) SongOption {
	return func(s *domain.CatalogSong) {
		s.CreatedAt = t
	}
}

func NewTestSong(title, mood string, opts ...SongOption) *domain.CatalogSong {
	s := &domain.CatalogSong{
		ID:          domain.NewID(),
		Title:       title,
		Artist:      "Test Artist",
		PlaybackURL: "https://open.spotify.com/track/" + title,
		Mood:        mood,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quote options
type QuoteOption func(*domain.Quote)

func WithInactive() QuoteOption {
	return func(q *domain.Quote) {
		q.IsActive = false
	}
}

func WithComment(c string) QuoteOption {
	return func(q *domain.Quote) {
		q.Comment = &c
	}
}

func NewTestQuote(text string, opts ...QuoteOption) *domain.Quote {
	q := &domain.Quote{
		ID:        domain.NewID(),
		Text:      text,
		Author:    "Anonymous",
		IsActive:  true,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func NewTestReaction(userID, entryID, emoji string) *domain.Reaction {
	return &domain.Reaction{
		ID:                 domain.NewID(),
		UserID:             userID,
		EntryID:            entryID,
		RecommendationType: domain.RecommendationCurated,
		RecommendationID:   "song-1",
		Emoji:              emoji,
		CreatedAt:          time.Now().UTC().Truncate(time.Microsecond),
	}
}
