package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsableMoments_FiltersBlankDescriptions(t *testing.T) {
	in := []MomentInput{
		{Description: "  coffee at dawn  ", Location: " Seoul "},
		{Description: "   "},
		{Description: ""},
		{Description: "walk by the river", ImageURL: "s3://bucket/a.jpg"},
	}

	got := UsableMoments(in)

	require.Len(t, got, 2)
	assert.Equal(t, "coffee at dawn", got[0].Description)
	assert.Equal(t, "Seoul", got[0].Location)
	assert.Equal(t, PlaceholderImageURL, got[0].ImageURL)
	assert.Equal(t, "s3://bucket/a.jpg", got[1].ImageURL)
}

func TestParseEntryKind(t *testing.T) {
	cases := map[string]EntryKind{
		"":            EntryKindJournal,
		"journal":     EntryKindJournal,
		"diary":       EntryKindJournal,
		"Portfolio":   EntryKindWorkRecord,
		"work-record": EntryKindWorkRecord,
	}
	for in, want := range cases {
		got, err := ParseEntryKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseEntryKind("poem")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEntryValidate_RequiresMoments(t *testing.T) {
	e := &Entry{UserID: "u1", Content: "text", Kind: EntryKindJournal}
	err := e.Validate()

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "moments", ve.Field)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseMoodLabel(t *testing.T) {
	for _, m := range AllMoods {
		got, ok := ParseMoodLabel(string(m))
		assert.True(t, ok)
		assert.Equal(t, m, got)
		assert.NotEmpty(t, m.SearchPhrases())
		assert.LessOrEqual(t, len(m.SearchPhrases()), 3)
	}
	_, ok := ParseMoodLabel("Happy")
	assert.False(t, ok)
	assert.Len(t, AllMoods, 12)
}

func TestReactionValidate(t *testing.T) {
	r := &Reaction{RecommendationType: "spotify", RecommendationID: "x", Emoji: "🎵"}
	assert.ErrorIs(t, r.Validate(), ErrValidation)

	r.RecommendationType = RecommendationExternal
	assert.NoError(t, r.Validate())
}
