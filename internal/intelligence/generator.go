package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/llm"
)

// GenerationPlaceholder replaces an empty or timed-out generation.
const GenerationPlaceholder = "Could not generate diary entry."

// Generation is the text produced for an entry.
type Generation struct {
	Text     string
	Model    string
	Degraded bool
}

// EntryGenerator turns a composed prompt into entry text.
type EntryGenerator interface {
	Generate(ctx context.Context, p Prompt) (*Generation, error)
}

type entryGenerator struct {
	client llm.LLMClient
}

// NewEntryGenerator creates an EntryGenerator backed by an LLM client.
func NewEntryGenerator(client llm.LLMClient) EntryGenerator {
	return &entryGenerator{client: client}
}

func (g *entryGenerator) Generate(ctx context.Context, p Prompt) (*Generation, error) {
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskGenerateEntry,
		SystemPrompt: p.SystemPrompt,
		UserPrompt:   p.UserPrompt,
	})
	if err != nil {
		if errors.Is(err, llm.ErrTimeout) {
			return &Generation{Text: GenerationPlaceholder, Degraded: true}, nil
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationUnavailable, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return &Generation{Text: GenerationPlaceholder, Model: resp.Model, Degraded: true}, nil
	}
	return &Generation{Text: text, Model: resp.Model}, nil
}
