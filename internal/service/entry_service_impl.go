package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/daybook/internal/db"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/intelligence"
	"github.com/alexanderramin/daybook/internal/repository"
)

type entryService struct {
	entries   repository.EntryRepo
	uow       db.UnitOfWork
	generator intelligence.EntryGenerator
	observer  UseCaseObserver
	now       func() time.Time
}

func NewEntryService(entries repository.EntryRepo, uow db.UnitOfWork, generator intelligence.EntryGenerator, observers ...UseCaseObserver) EntryService {
	return &entryService{
		entries:   entries,
		uow:       uow,
		generator: generator,
		observer:  useCaseObserverOrNoop(observers),
		now:       time.Now,
	}
}

// GenerateEntry runs language detection, prompt composition, generation and
// persistence in order. Nothing is written unless generation succeeds.
func (s *entryService) GenerateEntry(ctx context.Context, userID string, in GenerateEntryInput) (entry *domain.Entry, err error) {
	startedAt := s.now()
	fields := map[string]any{"user_id": userID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "generate_entry",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if strings.TrimSpace(userID) == "" {
		return nil, domain.NewValidationError("user_id", "required")
	}
	kind, err := domain.ParseEntryKind(in.Kind)
	if err != nil {
		return nil, err
	}
	moments := domain.UsableMoments(in.Moments)
	if len(moments) == 0 {
		return nil, domain.NewValidationError("moments", "at least one moment with a description is required")
	}
	fields["kind"] = string(kind)
	fields["moments"] = len(moments)

	descriptions := make([]string, len(moments))
	for i, m := range moments {
		descriptions[i] = m.Description
	}
	lang := intelligence.DetectLanguage(strings.Join(descriptions, " "))
	fields["language"] = lang.Policy.String()

	prompt, err := intelligence.Compose(intelligence.ComposeRequest{
		Moments:        moments,
		Kind:           kind,
		StyleReference: in.StyleReference,
		Language:       lang,
	})
	if err != nil {
		return nil, err
	}

	gen, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	fields["degraded"] = gen.Degraded

	entry = s.buildEntry(userID, kind, in, gen.Text, moments)
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLEntryRepo(tx)
		txMoments := repository.NewSQLMomentRepo(tx)

		if err := txEntries.Create(ctx, entry); err != nil {
			return err
		}
		for i := range entry.Moments {
			if err := txMoments.Create(ctx, &entry.Moments[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["entry_id"] = entry.ID
	return entry, nil
}

func (s *entryService) buildEntry(userID string, kind domain.EntryKind, in GenerateEntryInput, content string, moments []domain.MomentInput) *domain.Entry {
	now := s.now().UTC().Truncate(time.Microsecond)
	entryDate := now
	if in.EntryDate != nil {
		entryDate = in.EntryDate.UTC().Truncate(time.Microsecond)
	}

	e := &domain.Entry{
		ID:             domain.NewID(),
		UserID:         userID,
		EntryDate:      entryDate,
		Content:        content,
		Kind:           kind,
		StyleReference: domain.StrPtr(strings.TrimSpace(in.StyleReference)),
		CreatedAt:      now,
		Moments:        make([]domain.Moment, len(moments)),
	}
	for i, m := range moments {
		e.Moments[i] = domain.Moment{
			ID:          domain.NewID(),
			EntryID:     e.ID,
			Position:    i,
			ImageURL:    m.ImageURL,
			Description: m.Description,
			TakenAt:     domain.StrPtr(m.TakenAt),
			Location:    domain.StrPtr(m.Location),
			Weather:     domain.StrPtr(m.Weather),
		}
	}
	return e
}

func (s *entryService) GetEntry(ctx context.Context, entryID, userID string) (*domain.Entry, error) {
	e, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !e.OwnedBy(userID) {
		return nil, fmt.Errorf("entry %s: %w", entryID, domain.ErrForbidden)
	}
	return e, nil
}

func (s *entryService) ListEntries(ctx context.Context, userID string) ([]*domain.Entry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.NewValidationError("user_id", "required")
	}
	return s.entries.ListByUser(ctx, userID)
}

// DeleteEntry checks ownership and deletes in one transaction. Moments and
// reactions are removed by the storage cascade.
func (s *entryService) DeleteEntry(ctx context.Context, entryID, userID string) (err error) {
	startedAt := s.now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "delete_entry",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"entry_id": entryID, "user_id": userID},
		})
	}()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLEntryRepo(tx)

		e, err := txEntries.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		if !e.OwnedBy(userID) {
			return fmt.Errorf("entry %s: %w", entryID, domain.ErrForbidden)
		}
		return txEntries.Delete(ctx, entryID)
	})
}
