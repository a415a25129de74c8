package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/intelligence"
	"github.com/alexanderramin/daybook/internal/music"
	"github.com/alexanderramin/daybook/internal/repository"
	"golang.org/x/sync/errgroup"
)

const (
	curatedLimit        = 10
	externalLimit       = 5
	playlistScanLimit   = 3
	playlistPageSize    = 50
	searchResultsPerRun = 5
	maxSearchPhrases    = 3
)

type recommendationService struct {
	entries    repository.EntryRepo
	catalog    repository.CatalogRepo
	classifier intelligence.MoodClassifier

	external    music.Catalog
	picker      intelligence.TrackPicker
	entitlement music.Entitlement

	observer UseCaseObserver
}

// RecommendationOption configures optional resolver collaborators.
type RecommendationOption func(*recommendationService)

// WithExternalCatalog enables external recommendations. A nil entitlement
// allows every user.
func WithExternalCatalog(catalog music.Catalog, picker intelligence.TrackPicker, entitlement music.Entitlement) RecommendationOption {
	return func(s *recommendationService) {
		s.external = catalog
		s.picker = picker
		s.entitlement = entitlement
	}
}

func WithRecommendationObserver(obs UseCaseObserver) RecommendationOption {
	return func(s *recommendationService) {
		if obs != nil {
			s.observer = obs
		}
	}
}

func NewRecommendationService(entries repository.EntryRepo, catalog repository.CatalogRepo, classifier intelligence.MoodClassifier, opts ...RecommendationOption) RecommendationService {
	s := &recommendationService{
		entries:    entries,
		catalog:    catalog,
		classifier: classifier,
		observer:   NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.entitlement == nil {
		s.entitlement = music.AllowList(nil)
	}
	return s
}

func (s *recommendationService) GetRecommendations(ctx context.Context, entryID, userID string) (*domain.Recommendations, error) {
	e, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !e.OwnedBy(userID) {
		return nil, fmt.Errorf("entry %s: %w", entryID, domain.ErrForbidden)
	}

	mood := s.classifier.Classify(ctx, e.Content)
	return s.Resolve(ctx, mood, userID)
}

// Resolve queries curated and external sources concurrently. External
// failures are reported to the observer and yield an empty external list.
func (s *recommendationService) Resolve(ctx context.Context, mood domain.MoodLabel, userID string) (recs *domain.Recommendations, err error) {
	startedAt := time.Now()
	fields := map[string]any{"mood": string(mood), "user_id": userID}
	var fieldsMu sync.Mutex
	setField := func(k string, v any) {
		fieldsMu.Lock()
		fields[k] = v
		fieldsMu.Unlock()
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "resolve_recommendations",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var curated []domain.CatalogSong
	external := []domain.ExternalTrack{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		songs, err := s.catalog.SearchByMood(gctx, string(mood), curatedLimit)
		if err != nil {
			return fmt.Errorf("searching curated catalog: %w", err)
		}
		curated = songs
		return nil
	})
	if s.external != nil && s.entitlement.Allowed(userID) {
		g.Go(func() error {
			tracks, src, err := s.resolveExternal(gctx, mood)
			if err != nil {
				setField("external_error", err.Error())
				return nil
			}
			setField("external_source", src)
			external = tracks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if curated == nil {
		curated = []domain.CatalogSong{}
	}
	fields["curated"] = len(curated)
	fields["external"] = len(external)
	return &domain.Recommendations{
		Mood:          mood,
		CuratedSongs:  curated,
		ExternalSongs: external,
	}, nil
}

// resolveExternal prefers tracks from saved playlists, ranked by the picker.
// Keyword search runs when the playlists yield nothing or the picker's call
// gave nothing usable. A reply with out-of-range indices keeps the picker's
// deterministic shuffle.
func (s *recommendationService) resolveExternal(ctx context.Context, mood domain.MoodLabel) ([]domain.ExternalTrack, string, error) {
	candidates, err := s.playlistCandidates(ctx)
	if err != nil {
		return nil, "", err
	}
	if len(candidates) == 0 {
		return s.searchFallback(ctx, mood, nil)
	}

	if s.picker == nil {
		return dedupeTracks(intelligence.ShuffleTracks(candidates, mood, externalLimit), externalLimit), "playlists_shuffled", nil
	}
	pick := s.picker.Pick(ctx, mood, candidates, externalLimit)
	switch {
	case pick.SelectionFailed():
		return s.searchFallback(ctx, mood, pick.Tracks)
	case pick.Fallback:
		return dedupeTracks(pick.Tracks, externalLimit), "playlists_shuffled", nil
	default:
		return dedupeTracks(pick.Tracks, externalLimit), "playlists", nil
	}
}

// searchFallback runs the mood keyword search. When the search finds
// nothing, shuffled playlist tracks are used if there are any.
func (s *recommendationService) searchFallback(ctx context.Context, mood domain.MoodLabel, shuffled []domain.ExternalTrack) ([]domain.ExternalTrack, string, error) {
	found, err := s.searchCandidates(ctx, mood)
	if err != nil {
		return nil, "", err
	}
	found = dedupeTracks(found, externalLimit)
	if len(found) == 0 && len(shuffled) > 0 {
		return dedupeTracks(shuffled, externalLimit), "playlists_shuffled", nil
	}
	return found, "search", nil
}

func (s *recommendationService) playlistCandidates(ctx context.Context) ([]domain.ExternalTrack, error) {
	playlists, err := s.external.SavedPlaylists(ctx, playlistScanLimit)
	if err != nil {
		return nil, err
	}
	if len(playlists) > playlistScanLimit {
		playlists = playlists[:playlistScanLimit]
	}

	var candidates []domain.ExternalTrack
	for _, p := range playlists {
		tracks, err := s.external.PlaylistTracks(ctx, p.ID, playlistPageSize)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, tracks...)
	}
	return dedupeTracks(candidates, -1), nil
}

func (s *recommendationService) searchCandidates(ctx context.Context, mood domain.MoodLabel) ([]domain.ExternalTrack, error) {
	phrases := mood.SearchPhrases()
	if len(phrases) > maxSearchPhrases {
		phrases = phrases[:maxSearchPhrases]
	}

	var found []domain.ExternalTrack
	for _, phrase := range phrases {
		tracks, err := s.external.SearchTracks(ctx, phrase, searchResultsPerRun)
		if err != nil {
			return nil, err
		}
		found = append(found, tracks...)
	}
	return found, nil
}

// dedupeTracks keeps the first occurrence of each track ID. A negative limit
// keeps everything.
func dedupeTracks(tracks []domain.ExternalTrack, limit int) []domain.ExternalTrack {
	out := make([]domain.ExternalTrack, 0, len(tracks))
	seen := make(map[string]bool, len(tracks))
	for _, t := range tracks {
		id := strings.TrimSpace(t.ID)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, t)
		if limit >= 0 && len(out) == limit {
			break
		}
	}
	return out
}
