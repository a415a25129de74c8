package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/repository"
)

type quoteService struct {
	quotes repository.QuoteRepo
	now    func() time.Time
}

func NewQuoteService(quotes repository.QuoteRepo) QuoteService {
	return &quoteService{quotes: quotes, now: time.Now}
}

func (s *quoteService) Create(ctx context.Context, q *domain.Quote) error {
	normalizeQuote(q)
	if err := q.Validate(); err != nil {
		return err
	}
	if q.ID == "" {
		q.ID = domain.NewID()
	}
	q.CreatedAt = s.now().UTC().Truncate(time.Microsecond)
	return s.quotes.Create(ctx, q)
}

func (s *quoteService) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	return s.quotes.GetByID(ctx, id)
}

func (s *quoteService) List(ctx context.Context) ([]*domain.Quote, error) {
	return s.quotes.List(ctx)
}

func (s *quoteService) Update(ctx context.Context, q *domain.Quote) error {
	if strings.TrimSpace(q.ID) == "" {
		return domain.NewValidationError("id", "required")
	}
	normalizeQuote(q)
	if err := q.Validate(); err != nil {
		return err
	}
	return s.quotes.Update(ctx, q)
}

func (s *quoteService) Delete(ctx context.Context, id string) error {
	return s.quotes.Delete(ctx, id)
}

// Random returns one active quote, or ErrNotFound when none are active.
func (s *quoteService) Random(ctx context.Context) (*domain.Quote, error) {
	return s.quotes.RandomActive(ctx)
}

func normalizeQuote(q *domain.Quote) {
	q.Text = strings.TrimSpace(q.Text)
	q.Author = strings.TrimSpace(q.Author)
	q.Comment = domain.StrPtr(strings.TrimSpace(domain.StrValue(q.Comment)))
}
