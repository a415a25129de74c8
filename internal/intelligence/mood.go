package intelligence

import (
	"context"
	"strings"
	"unicode"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/llm"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MoodClassifier reduces entry text to one label from the closed set.
type MoodClassifier interface {
	// Classify never fails; untrusted output becomes domain.DefaultMood.
	Classify(ctx context.Context, text string) domain.MoodLabel
}

type moodClassifier struct {
	client llm.LLMClient
}

// NewMoodClassifier creates a MoodClassifier backed by an LLM client.
func NewMoodClassifier(client llm.LLMClient) MoodClassifier {
	return &moodClassifier{client: client}
}

func (c *moodClassifier) Classify(ctx context.Context, text string) domain.MoodLabel {
	if strings.TrimSpace(text) == "" {
		return domain.DefaultMood
	}

	resp, err := c.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskClassifyMood,
		SystemPrompt: moodSystemPrompt(),
		UserPrompt:   text,
	})
	if err != nil {
		return domain.DefaultMood
	}
	return normalizeMood(resp.Text)
}

// normalizeMood trims, strips surrounding punctuation and lowercases the reply
// before matching it against the label set.
func normalizeMood(raw string) domain.MoodLabel {
	word := strings.TrimFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
	word = cases.Lower(language.Und).String(word)
	if label, ok := domain.ParseMoodLabel(word); ok {
		return label
	}
	return domain.DefaultMood
}

func moodSystemPrompt() string {
	labels := make([]string, len(domain.AllMoods))
	for i, m := range domain.AllMoods {
		labels[i] = string(m)
	}
	return "Classify the overall mood of the user's text. Respond with exactly one word from this list and nothing else: " +
		strings.Join(labels, ", ") + "."
}
