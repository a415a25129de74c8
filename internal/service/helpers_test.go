package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/llm"
	"github.com/alexanderramin/daybook/internal/music"
	"github.com/alexanderramin/daybook/internal/repository"
	"github.com/alexanderramin/daybook/internal/testutil"
)

// taskLLMClient answers each task with a canned reply.
type taskLLMClient struct {
	replies map[llm.TaskType]string
	errs    map[llm.TaskType]error

	mu    sync.Mutex
	calls map[llm.TaskType]int
}

func newTaskLLMClient() *taskLLMClient {
	return &taskLLMClient{
		replies: map[llm.TaskType]string{},
		errs:    map[llm.TaskType]error{},
		calls:   map[llm.TaskType]int{},
	}
}

func (c *taskLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	c.mu.Lock()
	c.calls[req.Task]++
	c.mu.Unlock()
	if err := c.errs[req.Task]; err != nil {
		return nil, err
	}
	return &llm.GenerateResponse{Text: c.replies[req.Task], Model: "gpt-4o"}, nil
}

func (c *taskLLMClient) Available(context.Context) bool { return true }

func (c *taskLLMClient) callCount(task llm.TaskType) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[task]
}

// fakeCatalog is an in-memory external catalog.
type fakeCatalog struct {
	playlists []music.Playlist
	tracks    map[string][]domain.ExternalTrack
	search    map[string][]domain.ExternalTrack
	err       error

	mu       sync.Mutex
	searched []string
}

func (f *fakeCatalog) SavedPlaylists(_ context.Context, limit int) ([]music.Playlist, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.playlists) > limit {
		return f.playlists[:limit], nil
	}
	return f.playlists, nil
}

func (f *fakeCatalog) PlaylistTracks(_ context.Context, id string, limit int) ([]domain.ExternalTrack, error) {
	if f.err != nil {
		return nil, f.err
	}
	t := f.tracks[id]
	if len(t) > limit {
		t = t[:limit]
	}
	return t, nil
}

func (f *fakeCatalog) SearchTracks(_ context.Context, query string, limit int) ([]domain.ExternalTrack, error) {
	f.mu.Lock()
	f.searched = append(f.searched, query)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	t := f.search[query]
	if len(t) > limit {
		t = t[:limit]
	}
	return t, nil
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.events) == 0 {
		return UseCaseEvent{}
	}
	return o.events[len(o.events)-1]
}

type testRepos struct {
	db        *sql.DB
	entries   *repository.SQLEntryRepo
	moments   *repository.SQLMomentRepo
	catalog   *repository.SQLCatalogRepo
	quotes    *repository.SQLQuoteRepo
	reactions *repository.SQLReactionRepo
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		db:        database,
		entries:   repository.NewSQLEntryRepo(database),
		moments:   repository.NewSQLMomentRepo(database),
		catalog:   repository.NewSQLCatalogRepo(database),
		quotes:    repository.NewSQLQuoteRepo(database),
		reactions: repository.NewSQLReactionRepo(database),
	}
}

func moments(descriptions ...string) []domain.MomentInput {
	out := make([]domain.MomentInput, len(descriptions))
	for i, d := range descriptions {
		out[i] = domain.MomentInput{Description: d}
	}
	return out
}

func track(id, title string) domain.ExternalTrack {
	return domain.ExternalTrack{
		ID:          id,
		Title:       title,
		Artist:      "Artist " + id,
		PlaybackURL: "https://open.spotify.com/track/" + id,
	}
}
