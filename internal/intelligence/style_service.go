package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/llm"
)

// StyleSuggestionCount is the fixed number of archetypes requested.
const StyleSuggestionCount = 5

// StyleSuggestion is one archetype with a one-sentence reason.
type StyleSuggestion struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// StyleSuggestions is the engine's result. Degraded is set when the reply
// could not be parsed and Suggestions is empty.
type StyleSuggestions struct {
	Suggestions []StyleSuggestion `json:"suggestions"`
	Degraded    bool              `json:"degraded"`
}

// StyleSuggestionService proposes writing styles for a set of moments.
type StyleSuggestionService interface {
	Suggest(ctx context.Context, descriptions []string) (*StyleSuggestions, error)
}

type styleSuggestionService struct {
	client   llm.LLMClient
	observer llm.Observer
}

// NewStyleSuggestionService creates a StyleSuggestionService backed by an LLM client.
func NewStyleSuggestionService(client llm.LLMClient, observer llm.Observer) StyleSuggestionService {
	if observer == nil {
		observer = llm.NoopObserver{}
	}
	return &styleSuggestionService{client: client, observer: observer}
}

type styleLLMResponse struct {
	Suggestions []StyleSuggestion `json:"suggestions"`
}

func (s *styleSuggestionService) Suggest(ctx context.Context, descriptions []string) (*StyleSuggestions, error) {
	usable := make([]string, 0, len(descriptions))
	for _, d := range descriptions {
		if d = strings.TrimSpace(d); d != "" {
			usable = append(usable, d)
		}
	}
	if len(usable) == 0 {
		return nil, domain.ErrInsufficientInput
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSuggestStyles,
		SystemPrompt: styleSystemPrompt,
		UserPrompt:   buildStyleUserPrompt(usable),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationUnavailable, err)
	}

	suggestions, err := parseStyleSuggestions(resp.Text)
	if err != nil {
		s.observer.OnCallComplete(llm.LLMCallEvent{
			Task:      llm.TaskSuggestStyles,
			Model:     resp.Model,
			Success:   false,
			ErrorCode: "parse_error",
		})
		return &StyleSuggestions{Suggestions: []StyleSuggestion{}, Degraded: true}, nil
	}
	return &StyleSuggestions{Suggestions: suggestions}, nil
}

// parseStyleSuggestions strips fences and validates the reply shape.
// Failures wrap domain.ErrSuggestionParse.
func parseStyleSuggestions(raw string) ([]StyleSuggestion, error) {
	parsed, err := llm.ExtractJSON[styleLLMResponse](raw, validateStyleResponse)
	if err != nil {
		return nil, errors.Join(domain.ErrSuggestionParse, err)
	}
	out := make([]StyleSuggestion, len(parsed.Suggestions))
	for i, sg := range parsed.Suggestions {
		out[i] = StyleSuggestion{Name: strings.TrimSpace(sg.Name), Reason: strings.TrimSpace(sg.Reason)}
	}
	return out, nil
}

func validateStyleResponse(resp styleLLMResponse) error {
	if len(resp.Suggestions) != StyleSuggestionCount {
		return fmt.Errorf("expected %d suggestions, got %d", StyleSuggestionCount, len(resp.Suggestions))
	}
	for i, sg := range resp.Suggestions {
		if strings.TrimSpace(sg.Name) == "" || strings.TrimSpace(sg.Reason) == "" {
			return fmt.Errorf("suggestion %d is missing a name or reason", i)
		}
	}
	return nil
}

const styleSystemPrompt = `You suggest writing styles for a personal diary.

Given the user's photo descriptions, propose exactly 5 writing style archetypes that would suit the day. Each archetype is a short name (a genre, a voice, or a well-known writer's general manner) with a one-sentence reason tied to the descriptions.

Write the names and reasons in the same language the user wrote in.

You must output ONLY a JSON object with this exact shape:
{"suggestions":[{"name":"...","reason":"..."}]}

No markdown fences, no text before or after.`

func buildStyleUserPrompt(descriptions []string) string {
	var b strings.Builder
	b.WriteString("Photo descriptions:\n")
	for i, d := range descriptions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, truncateRunes(d, MaxDescriptionRunes))
	}
	return b.String()
}
