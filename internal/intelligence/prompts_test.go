package intelligence

import (
	"strings"
	"testing"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_KoreanJournalScenario(t *testing.T) {
	moments := domain.UsableMoments([]domain.MomentInput{
		{Description: "일기를 처음 써봐요", Location: "서울"},
	})
	lang := DetectLanguage(moments[0].Description)

	p, err := Compose(ComposeRequest{Moments: moments, Kind: domain.EntryKindJournal, Language: lang})
	require.NoError(t, err)

	assert.Equal(t, LanguageKorean, lang.Policy)
	assert.IsType(t, JournalTemplate{}, p.Template)
	assert.Contains(t, p.UserPrompt, "일기를 처음 써봐요")
	assert.Contains(t, p.UserPrompt, "- Location: 서울")
	assert.Contains(t, p.UserPrompt, "- Weather: Unknown")
	assert.Contains(t, p.UserPrompt, "- Time taken: Unknown")
	assert.Contains(t, p.UserPrompt, "Korean")
	assert.True(t, strings.HasSuffix(p.UserPrompt, "Output ONLY the diary text."))
}

func TestCompose_JournalStyleSectionsAreExclusive(t *testing.T) {
	moments := []domain.MomentInput{{Description: "beach walk"}}

	withRef, err := Compose(ComposeRequest{Moments: moments, Kind: domain.EntryKindJournal, StyleReference: "Haruki Murakami"})
	require.NoError(t, err)
	assert.Contains(t, withRef.UserPrompt, "GENERAL COMMUNICATION STYLE of Haruki Murakami")
	assert.Contains(t, withRef.UserPrompt, "Do NOT imitate, role-play, or claim to be the real person")
	assert.NotContains(t, withRef.UserPrompt, "modern, conversational tone")
	assert.Equal(t, 1, strings.Count(withRef.UserPrompt, "Writing style:"))

	without, err := Compose(ComposeRequest{Moments: moments, Kind: domain.EntryKindJournal, StyleReference: "   "})
	require.NoError(t, err)
	assert.Contains(t, without.UserPrompt, "modern, conversational tone")
	assert.NotContains(t, without.UserPrompt, "GENERAL COMMUNICATION STYLE")
	assert.Equal(t, 1, strings.Count(without.UserPrompt, "Writing style:"))
}

func TestCompose_CareerAlignmentOnlyForWorkRecord(t *testing.T) {
	notes := FormatWorkNotes(WorkNotes{
		Action:      "Migrated billing to the new queue",
		CurrentRole: "Engineer",
		TargetRole:  "Lead",
	})
	moments := []domain.MomentInput{{Description: notes}}

	work, err := Compose(ComposeRequest{Moments: moments, Kind: domain.EntryKindWorkRecord})
	require.NoError(t, err)
	assert.IsType(t, WorkRecordTemplate{}, work.Template)
	assert.Contains(t, work.UserPrompt, "Career Alignment:")
	assert.Contains(t, work.UserPrompt, "**Challenge**")
	assert.Contains(t, work.UserPrompt, "**Key Takeaways**")
	assert.True(t, strings.HasSuffix(work.UserPrompt, "Output ONLY the formatted portfolio text with headings."))

	journal, err := Compose(ComposeRequest{Moments: moments, Kind: domain.EntryKindJournal})
	require.NoError(t, err)
	assert.NotContains(t, journal.UserPrompt, "Career Alignment")
}

func TestCompose_WorkRecordWithoutRolesHasNoCareerBlock(t *testing.T) {
	moments := []domain.MomentInput{{Description: "Result: cut p99 latency by 40%"}}
	p, err := Compose(ComposeRequest{Moments: moments, Kind: domain.EntryKindWorkRecord})
	require.NoError(t, err)
	assert.NotContains(t, p.UserPrompt, "Career Alignment")
	assert.Contains(t, p.UserPrompt, "cut p99 latency by 40%")
}

func TestCompose_RequiresMoments(t *testing.T) {
	_, err := Compose(ComposeRequest{Kind: domain.EntryKindJournal})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCompose_UnknownKind(t *testing.T) {
	_, err := Compose(ComposeRequest{Moments: []domain.MomentInput{{Description: "x"}}, Kind: "poem"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCompose_TruncatesLongDescriptions(t *testing.T) {
	long := strings.Repeat("가", MaxDescriptionRunes+50)
	p, err := Compose(ComposeRequest{Moments: []domain.MomentInput{{Description: long}}, Kind: domain.EntryKindJournal})
	require.NoError(t, err)
	assert.NotContains(t, p.UserPrompt, long)
	assert.Contains(t, p.UserPrompt, strings.Repeat("가", MaxDescriptionRunes)+"…")
}

func TestCompose_RejectsOversizedPrompt(t *testing.T) {
	moments := make([]domain.MomentInput, 20)
	for i := range moments {
		moments[i] = domain.MomentInput{Description: strings.Repeat("x", MaxDescriptionRunes)}
	}
	_, err := Compose(ComposeRequest{Moments: moments, Kind: domain.EntryKindJournal})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCompose_MomentsKeepOrder(t *testing.T) {
	moments := []domain.MomentInput{
		{Description: "breakfast", TakenAt: "08:00"},
		{Description: "dinner", TakenAt: "19:30", Weather: "rain"},
	}
	p, err := Compose(ComposeRequest{Moments: moments, Kind: domain.EntryKindJournal})
	require.NoError(t, err)
	assert.Less(t, strings.Index(p.UserPrompt, "breakfast"), strings.Index(p.UserPrompt, "dinner"))
	assert.Contains(t, p.UserPrompt, "Photo 2:\n- Time taken: 19:30")
	assert.Contains(t, p.UserPrompt, "- Weather: rain")
}

func TestFormatWorkNotes(t *testing.T) {
	got := FormatWorkNotes(WorkNotes{Hypothesis: " caching helps ", Result: "2x faster", TargetRole: "Staff"})
	assert.Equal(t, "Hypothesis: caching helps\n\nResult: 2x faster\n\nTarget Role: Staff", got)
	assert.Empty(t, FormatWorkNotes(WorkNotes{}))
}
