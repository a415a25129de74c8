package intelligence

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/llm"
)

// FallbackReason says why a pick did not come from the model.
type FallbackReason string

const (
	// FallbackNone means the model's selection was used.
	FallbackNone FallbackReason = ""
	// FallbackCallFailed means the selection call returned an error.
	FallbackCallFailed FallbackReason = "call_failed"
	// FallbackUnusable means the reply was unparsable or selected nothing.
	FallbackUnusable FallbackReason = "unusable"
	// FallbackInvalidIndex means the reply referenced a track outside the list.
	FallbackInvalidIndex FallbackReason = "invalid_index"
)

// TrackPick is the outcome of ranking candidates against a mood.
type TrackPick struct {
	Tracks   []domain.ExternalTrack
	Fallback bool
	Reason   FallbackReason
}

// SelectionFailed reports whether the model gave nothing to work with, as
// opposed to a reply that merely pointed outside the candidate list.
func (p TrackPick) SelectionFailed() bool {
	return p.Reason == FallbackCallFailed || p.Reason == FallbackUnusable
}

// TrackPicker selects the candidates that best fit a mood.
type TrackPicker interface {
	// Pick never fails. Whenever the model's selection cannot be used the
	// tracks are a deterministic shuffle of the candidates and Reason is set.
	Pick(ctx context.Context, mood domain.MoodLabel, candidates []domain.ExternalTrack, limit int) TrackPick
}

type trackPicker struct {
	client llm.LLMClient
}

// NewTrackPicker creates a TrackPicker backed by an LLM client.
func NewTrackPicker(client llm.LLMClient) TrackPicker {
	return &trackPicker{client: client}
}

type pickLLMResponse struct {
	Indices []int `json:"indices"`
}

func (p *trackPicker) Pick(ctx context.Context, mood domain.MoodLabel, candidates []domain.ExternalTrack, limit int) TrackPick {
	if len(candidates) == 0 || limit <= 0 {
		return TrackPick{Tracks: []domain.ExternalTrack{}}
	}

	resp, err := p.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskPickTracks,
		SystemPrompt: pickSystemPrompt(limit),
		UserPrompt:   buildPickUserPrompt(mood, candidates),
	})
	if err != nil {
		return shuffledPick(candidates, mood, limit, FallbackCallFailed)
	}

	parsed, err := llm.ExtractJSON[pickLLMResponse](resp.Text, nil)
	if err != nil || len(parsed.Indices) == 0 {
		return shuffledPick(candidates, mood, limit, FallbackUnusable)
	}

	picked, ok := selectIndices(parsed.Indices, candidates, limit)
	if !ok {
		return shuffledPick(candidates, mood, limit, FallbackInvalidIndex)
	}
	return TrackPick{Tracks: picked}
}

func shuffledPick(candidates []domain.ExternalTrack, mood domain.MoodLabel, limit int, reason FallbackReason) TrackPick {
	return TrackPick{Tracks: ShuffleTracks(candidates, mood, limit), Fallback: true, Reason: reason}
}

// selectIndices resolves model-chosen indices. Any out-of-range index
// rejects the whole reply.
func selectIndices(indices []int, candidates []domain.ExternalTrack, limit int) ([]domain.ExternalTrack, bool) {
	seen := make(map[int]bool, len(indices))
	out := make([]domain.ExternalTrack, 0, limit)
	for _, i := range indices {
		if i < 0 || i >= len(candidates) {
			return nil, false
		}
		if seen[i] {
			continue
		}
		seen[i] = true
		if len(out) < limit {
			out = append(out, candidates[i])
		}
	}
	return out, true
}

// ShuffleTracks returns up to limit candidates in an order determined only
// by the mood, so the same inputs always yield the same selection.
func ShuffleTracks(candidates []domain.ExternalTrack, mood domain.MoodLabel, limit int) []domain.ExternalTrack {
	shuffled := make([]domain.ExternalTrack, len(candidates))
	copy(shuffled, candidates)

	h := fnv.New64a()
	h.Write([]byte(mood))
	seed := h.Sum64()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if len(shuffled) > limit {
		shuffled = shuffled[:limit]
	}
	return shuffled
}

func pickSystemPrompt(limit int) string {
	return fmt.Sprintf(`You pick songs that match a mood.

Given a mood and a numbered list of tracks, choose up to %d tracks that best fit the mood.

You must output ONLY a JSON object: {"indices":[0,3,7]}
Indices are the 0-based numbers from the list. No other text.`, limit)
}

func buildPickUserPrompt(mood domain.MoodLabel, candidates []domain.ExternalTrack) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mood: %s\n\nTracks:\n", mood)
	for i, t := range candidates {
		fmt.Fprintf(&b, "%d. %s - %s\n", i, t.Title, t.Artist)
	}
	return b.String()
}
