package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func styleReply(n int) string {
	resp := styleLLMResponse{}
	for i := 0; i < n; i++ {
		resp.Suggestions = append(resp.Suggestions, StyleSuggestion{
			Name:   fmt.Sprintf("Style %d", i+1),
			Reason: "Fits the sunny beach photos.",
		})
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestStyleSuggestion_InsufficientInput(t *testing.T) {
	client := &mockLLMClient{response: styleReply(5)}
	svc := NewStyleSuggestionService(client, nil)

	_, err := svc.Suggest(context.Background(), []string{"", "  ", ""})
	assert.ErrorIs(t, err, domain.ErrInsufficientInput)
	assert.Equal(t, 0, client.calls(), "no upstream call without usable input")
}

func TestStyleSuggestion_ReturnsFive(t *testing.T) {
	svc := NewStyleSuggestionService(&mockLLMClient{response: styleReply(5)}, nil)

	out, err := svc.Suggest(context.Background(), []string{"Had a great day at the beach"})
	require.NoError(t, err)
	assert.Len(t, out.Suggestions, StyleSuggestionCount)
	assert.False(t, out.Degraded)
}

func TestStyleSuggestion_StripsFences(t *testing.T) {
	reply := "```json\n" + styleReply(5) + "\n```"
	svc := NewStyleSuggestionService(&mockLLMClient{response: reply}, nil)

	out, err := svc.Suggest(context.Background(), []string{"beach"})
	require.NoError(t, err)
	assert.Len(t, out.Suggestions, 5)
}

func TestStyleSuggestion_UnparsableIsDegraded(t *testing.T) {
	for _, reply := range []string{"Here are some styles: noir, haiku", styleReply(3), `{"suggestions":[]}`} {
		obs := &captureObserver{}
		svc := NewStyleSuggestionService(&mockLLMClient{response: reply}, obs)

		out, err := svc.Suggest(context.Background(), []string{"beach"})
		require.NoError(t, err)
		assert.Empty(t, out.Suggestions)
		assert.NotNil(t, out.Suggestions)
		assert.True(t, out.Degraded)
		require.Len(t, obs.events, 1)
		assert.Equal(t, "parse_error", obs.events[0].ErrorCode)
	}
}

func TestStyleSuggestion_TransportFailure(t *testing.T) {
	svc := NewStyleSuggestionService(&mockLLMClient{err: llm.ErrUnavailable}, nil)

	_, err := svc.Suggest(context.Background(), []string{"beach"})
	assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
}

func TestStyleSuggestion_PromptCarriesDescriptions(t *testing.T) {
	client := &mockLLMClient{response: styleReply(5)}
	svc := NewStyleSuggestionService(client, nil)

	_, err := svc.Suggest(context.Background(), []string{" 바다 산책 ", "", "노을"})
	require.NoError(t, err)
	req := client.lastRequest()
	assert.Equal(t, llm.TaskSuggestStyles, req.Task)
	assert.Contains(t, req.UserPrompt, "1. 바다 산책")
	assert.Contains(t, req.UserPrompt, "2. 노을")
	assert.Contains(t, req.SystemPrompt, "same language")
}

func TestParseStyleSuggestions_WrapsSentinel(t *testing.T) {
	_, err := parseStyleSuggestions("not json")
	assert.ErrorIs(t, err, domain.ErrSuggestionParse)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

type captureObserver struct {
	events []llm.LLMCallEvent
}

func (c *captureObserver) OnCallComplete(e llm.LLMCallEvent) {
	c.events = append(c.events, e)
}
