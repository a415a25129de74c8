package intelligence

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateTracks(n int) []domain.ExternalTrack {
	out := make([]domain.ExternalTrack, n)
	for i := range out {
		out[i] = domain.ExternalTrack{
			ID:     fmt.Sprintf("t%d", i),
			Title:  fmt.Sprintf("Track %d", i),
			Artist: "Artist",
		}
	}
	return out
}

func trackIDs(tracks []domain.ExternalTrack) []string {
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	return ids
}

func TestTrackPicker_ValidIndices(t *testing.T) {
	client := &mockLLMClient{response: `{"indices":[4,1,1,7]}`}
	pick := NewTrackPicker(client).Pick(context.Background(), domain.MoodCalm, candidateTracks(10), 5)

	assert.False(t, pick.Fallback)
	assert.Equal(t, FallbackNone, pick.Reason)
	assert.Equal(t, []string{"t4", "t1", "t7"}, trackIDs(pick.Tracks))
	assert.Equal(t, llm.TaskPickTracks, client.lastRequest().Task)
	assert.Contains(t, client.lastRequest().UserPrompt, "Mood: calm")
}

func TestTrackPicker_TruncatesToLimit(t *testing.T) {
	client := &mockLLMClient{response: `{"indices":[0,1,2,3,4,5,6]}`}
	pick := NewTrackPicker(client).Pick(context.Background(), domain.MoodCalm, candidateTracks(10), 5)

	assert.False(t, pick.Fallback)
	assert.Len(t, pick.Tracks, 5)
}

func TestTrackPicker_FallbackCases(t *testing.T) {
	tests := []struct {
		name   string
		client *mockLLMClient
		reason FallbackReason
		failed bool
	}{
		{"out of range", &mockLLMClient{response: `{"indices":[1,42]}`}, FallbackInvalidIndex, false},
		{"negative", &mockLLMClient{response: `{"indices":[-1]}`}, FallbackInvalidIndex, false},
		{"empty", &mockLLMClient{response: `{"indices":[]}`}, FallbackUnusable, true},
		{"unparsable", &mockLLMClient{response: "tracks 1 and 2"}, FallbackUnusable, true},
		{"transport", &mockLLMClient{err: llm.ErrUnavailable}, FallbackCallFailed, true},
	}
	candidates := candidateTracks(12)
	want := ShuffleTracks(candidates, domain.MoodHappy, 5)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pick := NewTrackPicker(tt.client).Pick(context.Background(), domain.MoodHappy, candidates, 5)
			require.True(t, pick.Fallback)
			assert.Equal(t, tt.reason, pick.Reason)
			assert.Equal(t, tt.failed, pick.SelectionFailed())
			assert.Equal(t, trackIDs(want), trackIDs(pick.Tracks))
		})
	}
}

func TestTrackPicker_NoCandidates(t *testing.T) {
	client := &mockLLMClient{response: `{"indices":[0]}`}
	pick := NewTrackPicker(client).Pick(context.Background(), domain.MoodSad, nil, 5)
	assert.Empty(t, pick.Tracks)
	assert.Equal(t, 0, client.calls())
}

func TestShuffleTracks_Deterministic(t *testing.T) {
	candidates := candidateTracks(20)
	a := ShuffleTracks(candidates, domain.MoodDreamy, 5)
	b := ShuffleTracks(candidates, domain.MoodDreamy, 5)
	assert.Equal(t, trackIDs(a), trackIDs(b))
	assert.Len(t, a, 5)

	// Input order is untouched.
	assert.Equal(t, "t0", candidates[0].ID)
}

func TestShuffleTracks_FewerThanLimit(t *testing.T) {
	got := ShuffleTracks(candidateTracks(3), domain.MoodSad, 5)
	assert.ElementsMatch(t, []string{"t0", "t1", "t2"}, trackIDs(got))
}
