package service

import (
	"context"
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
)

// GenerateEntryInput is a request to write a new entry from moments.
type GenerateEntryInput struct {
	Moments        []domain.MomentInput
	Kind           string
	StyleReference string
	// EntryDate is the logical day of the entry. Defaults to now.
	EntryDate *time.Time
}

type EntryService interface {
	GenerateEntry(ctx context.Context, userID string, in GenerateEntryInput) (*domain.Entry, error)
	GetEntry(ctx context.Context, entryID, userID string) (*domain.Entry, error)
	ListEntries(ctx context.Context, userID string) ([]*domain.Entry, error)
	DeleteEntry(ctx context.Context, entryID, userID string) error
}

type RecommendationService interface {
	GetRecommendations(ctx context.Context, entryID, userID string) (*domain.Recommendations, error)
	// Resolve builds recommendations for an already-known mood.
	Resolve(ctx context.Context, mood domain.MoodLabel, userID string) (*domain.Recommendations, error)
}

type CatalogService interface {
	Create(ctx context.Context, s *domain.CatalogSong) error
	GetByID(ctx context.Context, id string) (*domain.CatalogSong, error)
	List(ctx context.Context) ([]*domain.CatalogSong, error)
	Update(ctx context.Context, s *domain.CatalogSong) error
	Delete(ctx context.Context, id string) error
}

type QuoteService interface {
	Create(ctx context.Context, q *domain.Quote) error
	GetByID(ctx context.Context, id string) (*domain.Quote, error)
	List(ctx context.Context) ([]*domain.Quote, error)
	Update(ctx context.Context, q *domain.Quote) error
	Delete(ctx context.Context, id string) error
	Random(ctx context.Context) (*domain.Quote, error)
}

// ReactionInput is an emoji attached to one recommendation of an entry.
type ReactionInput struct {
	RecommendationType string
	RecommendationID   string
	Emoji              string
}

type ReactionService interface {
	React(ctx context.Context, entryID, userID string, in ReactionInput) (*domain.Reaction, error)
	List(ctx context.Context, entryID, userID string) ([]domain.Reaction, error)
}
