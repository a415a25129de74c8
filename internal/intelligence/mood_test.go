package intelligence

import (
	"context"
	"testing"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/llm"
	"github.com/stretchr/testify/assert"
)

func TestMoodClassifier_Normalizes(t *testing.T) {
	tests := []struct {
		reply string
		want  domain.MoodLabel
	}{
		{"happy", domain.MoodHappy},
		{"  Nostalgic\n", domain.MoodNostalgic},
		{`"DREAMY".`, domain.MoodDreamy},
		{"Melancholy!", domain.MoodMelancholy},
		{"", domain.DefaultMood},
		{"joyful", domain.DefaultMood},
		{"happy and sad", domain.DefaultMood},
		{"슬픔", domain.DefaultMood},
	}
	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			c := NewMoodClassifier(&mockLLMClient{response: tt.reply})
			assert.Equal(t, tt.want, c.Classify(context.Background(), "some entry text"))
		})
	}
}

func TestMoodClassifier_AlwaysInLabelSet(t *testing.T) {
	inputs := []string{"", "   ", "today was fine", "오늘은 좋은 날", "!!!"}
	replies := []string{"angry", "???", "", "CALM", "peaceful\n\nbecause"}
	for _, in := range inputs {
		for _, reply := range replies {
			got := NewMoodClassifier(&mockLLMClient{response: reply}).Classify(context.Background(), in)
			assert.Contains(t, domain.AllMoods, got)
		}
	}
}

func TestMoodClassifier_EmptyTextSkipsCall(t *testing.T) {
	client := &mockLLMClient{response: "angry"}
	got := NewMoodClassifier(client).Classify(context.Background(), "  ")
	assert.Equal(t, domain.MoodCalm, got)
	assert.Equal(t, 0, client.calls())
}

func TestMoodClassifier_FailureDefaults(t *testing.T) {
	for _, upstream := range []error{llm.ErrTimeout, llm.ErrUnavailable, llm.ErrDisabled} {
		got := NewMoodClassifier(&mockLLMClient{err: upstream}).Classify(context.Background(), "text")
		assert.Equal(t, domain.DefaultMood, got)
	}
}

func TestMoodClassifier_PromptListsLabels(t *testing.T) {
	client := &mockLLMClient{response: "calm"}
	NewMoodClassifier(client).Classify(context.Background(), "text")

	req := client.lastRequest()
	assert.Equal(t, llm.TaskClassifyMood, req.Task)
	for _, m := range domain.AllMoods {
		assert.Contains(t, req.SystemPrompt, string(m))
	}
}
