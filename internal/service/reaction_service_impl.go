package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/repository"
)

type reactionService struct {
	entries   repository.EntryRepo
	reactions repository.ReactionRepo
	now       func() time.Time
}

func NewReactionService(entries repository.EntryRepo, reactions repository.ReactionRepo) ReactionService {
	return &reactionService{entries: entries, reactions: reactions, now: time.Now}
}

func (s *reactionService) React(ctx context.Context, entryID, userID string, in ReactionInput) (*domain.Reaction, error) {
	if err := s.checkOwner(ctx, entryID, userID); err != nil {
		return nil, err
	}

	rx := &domain.Reaction{
		ID:                 domain.NewID(),
		UserID:             userID,
		EntryID:            entryID,
		RecommendationType: domain.RecommendationType(strings.ToLower(strings.TrimSpace(in.RecommendationType))),
		RecommendationID:   strings.TrimSpace(in.RecommendationID),
		Emoji:              strings.TrimSpace(in.Emoji),
		CreatedAt:          s.now().UTC().Truncate(time.Microsecond),
	}
	if err := rx.Validate(); err != nil {
		return nil, err
	}
	if err := s.reactions.Create(ctx, rx); err != nil {
		return nil, err
	}
	return rx, nil
}

func (s *reactionService) List(ctx context.Context, entryID, userID string) ([]domain.Reaction, error) {
	if err := s.checkOwner(ctx, entryID, userID); err != nil {
		return nil, err
	}
	return s.reactions.ListByEntry(ctx, entryID, userID)
}

func (s *reactionService) checkOwner(ctx context.Context, entryID, userID string) error {
	e, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if !e.OwnedBy(userID) {
		return fmt.Errorf("entry %s: %w", entryID, domain.ErrForbidden)
	}
	return nil
}
