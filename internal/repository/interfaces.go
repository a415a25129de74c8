package repository

import (
	"context"

	"github.com/alexanderramin/daybook/internal/domain"
)

// EntryRepo reads and writes entries. Reads always populate Moments.
type EntryRepo interface {
	Create(ctx context.Context, e *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Entry, error)
	Delete(ctx context.Context, id string) error
}

type MomentRepo interface {
	Create(ctx context.Context, m *domain.Moment) error
	ListByEntry(ctx context.Context, entryID string) ([]domain.Moment, error)
}

type CatalogRepo interface {
	Create(ctx context.Context, s *domain.CatalogSong) error
	GetByID(ctx context.Context, id string) (*domain.CatalogSong, error)
	List(ctx context.Context) ([]*domain.CatalogSong, error)
	Update(ctx context.Context, s *domain.CatalogSong) error
	Delete(ctx context.Context, id string) error
	// SearchByMood matches label case-insensitively as a substring of the
	// song's mood or tags.
	SearchByMood(ctx context.Context, label string, limit int) ([]domain.CatalogSong, error)
}

type QuoteRepo interface {
	Create(ctx context.Context, q *domain.Quote) error
	GetByID(ctx context.Context, id string) (*domain.Quote, error)
	List(ctx context.Context) ([]*domain.Quote, error)
	Update(ctx context.Context, q *domain.Quote) error
	Delete(ctx context.Context, id string) error
	RandomActive(ctx context.Context) (*domain.Quote, error)
}

type ReactionRepo interface {
	Create(ctx context.Context, r *domain.Reaction) error
	ListByEntry(ctx context.Context, entryID, userID string) ([]domain.Reaction, error)
}
