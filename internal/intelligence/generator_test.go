package intelligence

import (
	"context"
	"testing"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrompt(t *testing.T) Prompt {
	t.Helper()
	p, err := Compose(ComposeRequest{
		Moments: []domain.MomentInput{{Description: "morning run"}},
		Kind:    domain.EntryKindJournal,
	})
	require.NoError(t, err)
	return p
}

func TestEntryGenerator_Success(t *testing.T) {
	client := &mockLLMClient{response: "  A quiet morning run.  "}
	gen := NewEntryGenerator(client)

	out, err := gen.Generate(context.Background(), testPrompt(t))
	require.NoError(t, err)
	assert.Equal(t, "A quiet morning run.", out.Text)
	assert.False(t, out.Degraded)
	assert.Equal(t, llm.TaskGenerateEntry, client.lastRequest().Task)
	assert.Contains(t, client.lastRequest().UserPrompt, "morning run")
}

func TestEntryGenerator_EmptyReplyUsesPlaceholder(t *testing.T) {
	gen := NewEntryGenerator(&mockLLMClient{response: "   "})

	out, err := gen.Generate(context.Background(), testPrompt(t))
	require.NoError(t, err)
	assert.Equal(t, GenerationPlaceholder, out.Text)
	assert.True(t, out.Degraded)
}

func TestEntryGenerator_TimeoutUsesPlaceholder(t *testing.T) {
	gen := NewEntryGenerator(&mockLLMClient{err: llm.ErrTimeout})

	out, err := gen.Generate(context.Background(), testPrompt(t))
	require.NoError(t, err)
	assert.Equal(t, GenerationPlaceholder, out.Text)
	assert.True(t, out.Degraded)
}

func TestEntryGenerator_TransportFailure(t *testing.T) {
	for _, upstream := range []error{llm.ErrUnavailable, llm.ErrRetryExhausted, llm.ErrDisabled} {
		gen := NewEntryGenerator(&mockLLMClient{err: upstream})

		_, err := gen.Generate(context.Background(), testPrompt(t))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
		assert.ErrorIs(t, err, upstream)
	}
}
