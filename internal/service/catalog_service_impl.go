package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/repository"
)

type catalogService struct {
	songs repository.CatalogRepo
	now   func() time.Time
}

func NewCatalogService(songs repository.CatalogRepo) CatalogService {
	return &catalogService{songs: songs, now: time.Now}
}

func (s *catalogService) Create(ctx context.Context, song *domain.CatalogSong) error {
	normalizeSong(song)
	if err := song.Validate(); err != nil {
		return err
	}
	if song.ID == "" {
		song.ID = domain.NewID()
	}
	song.CreatedAt = s.now().UTC().Truncate(time.Microsecond)
	return s.songs.Create(ctx, song)
}

func (s *catalogService) GetByID(ctx context.Context, id string) (*domain.CatalogSong, error) {
	return s.songs.GetByID(ctx, id)
}

func (s *catalogService) List(ctx context.Context) ([]*domain.CatalogSong, error) {
	return s.songs.List(ctx)
}

func (s *catalogService) Update(ctx context.Context, song *domain.CatalogSong) error {
	if strings.TrimSpace(song.ID) == "" {
		return domain.NewValidationError("id", "required")
	}
	normalizeSong(song)
	if err := song.Validate(); err != nil {
		return err
	}
	return s.songs.Update(ctx, song)
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	return s.songs.Delete(ctx, id)
}

func normalizeSong(song *domain.CatalogSong) {
	song.Title = strings.TrimSpace(song.Title)
	song.Artist = strings.TrimSpace(song.Artist)
	song.PlaybackURL = strings.TrimSpace(song.PlaybackURL)
	song.Mood = strings.ToLower(strings.TrimSpace(song.Mood))
	song.Genre = domain.StrPtr(strings.TrimSpace(domain.StrValue(song.Genre)))
	song.Tags = domain.StrPtr(strings.TrimSpace(domain.StrValue(song.Tags)))
}
