package intelligence

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/daybook/internal/domain"
)

const (
	// MaxDescriptionRunes caps each moment description inside a prompt.
	MaxDescriptionRunes = 1000
	// MaxPromptRunes is the ceiling for the composed user prompt.
	MaxPromptRunes = 16000

	unknownField = "Unknown"
)

// EntryTemplate selects how an entry is written. Exactly one of
// JournalTemplate or WorkRecordTemplate is used per request.
type EntryTemplate interface {
	Kind() domain.EntryKind
	render(b *strings.Builder, lang LanguageInstruction)
}

// StyleSection is the writing-style block of a journal prompt.
type StyleSection interface {
	render(b *strings.Builder)
}

// ReferenceStyle emulates the abstract traits of a named influence.
type ReferenceStyle struct {
	Reference string
}

// ConversationalStyle is the default style when no reference is given.
type ConversationalStyle struct{}

type JournalTemplate struct {
	Moments []domain.MomentInput
	Style   StyleSection
}

type WorkRecordTemplate struct {
	Notes           string
	CareerAlignment bool
}

func (JournalTemplate) Kind() domain.EntryKind    { return domain.EntryKindJournal }
func (WorkRecordTemplate) Kind() domain.EntryKind { return domain.EntryKindWorkRecord }

// ComposeRequest is the input to Compose. Moments must already be filtered
// by domain.UsableMoments.
type ComposeRequest struct {
	Moments        []domain.MomentInput
	Kind           domain.EntryKind
	StyleReference string
	Language       LanguageInstruction
}

// Prompt is a composed generation request.
type Prompt struct {
	Template     EntryTemplate
	SystemPrompt string
	UserPrompt   string
}

// NewEntryTemplate picks the template variant for a kind.
func NewEntryTemplate(kind domain.EntryKind, moments []domain.MomentInput, styleReference string) (EntryTemplate, error) {
	switch kind {
	case domain.EntryKindJournal:
		var style StyleSection = ConversationalStyle{}
		if ref := strings.TrimSpace(styleReference); ref != "" {
			style = ReferenceStyle{Reference: ref}
		}
		return JournalTemplate{Moments: moments, Style: style}, nil
	case domain.EntryKindWorkRecord:
		notes := workNotes(moments)
		return WorkRecordTemplate{
			Notes:           notes,
			CareerAlignment: strings.Contains(notes, "Current Role:") || strings.Contains(notes, "Target Role:"),
		}, nil
	default:
		return nil, domain.NewValidationError("kind", fmt.Sprintf("unknown entry kind %q", kind))
	}
}

// Compose builds the generation prompt for a set of moments.
func Compose(req ComposeRequest) (Prompt, error) {
	if len(req.Moments) == 0 {
		return Prompt{}, domain.NewValidationError("moments", "at least one moment with a description is required")
	}

	moments := make([]domain.MomentInput, len(req.Moments))
	for i, m := range req.Moments {
		m.Description = truncateRunes(m.Description, MaxDescriptionRunes)
		moments[i] = m
	}

	tmpl, err := NewEntryTemplate(req.Kind, moments, req.StyleReference)
	if err != nil {
		return Prompt{}, err
	}

	var b strings.Builder
	tmpl.render(&b, req.Language)
	user := b.String()
	if utf8.RuneCountInString(user) > MaxPromptRunes {
		return Prompt{}, domain.NewValidationError("moments", "too much text to generate from")
	}

	return Prompt{
		Template:     tmpl,
		SystemPrompt: systemPrompt(tmpl),
		UserPrompt:   user,
	}, nil
}

func systemPrompt(t EntryTemplate) string {
	if t.Kind() == domain.EntryKindWorkRecord {
		return "You are a professional business writer creating portfolio content for career advancement."
	}
	return "You are an auto-diary writing assistant."
}

func (t JournalTemplate) render(b *strings.Builder, lang LanguageInstruction) {
	b.WriteString("Write a daily journal entry based on the user's photos and timestamps.\n\n")
	t.Style.render(b)
	b.WriteString(`
Guidelines:
- Let the diary feel like a quiet conversation with oneself.
- Focus on everyday moments and how they felt, not on storytelling drama.
- Reflect the flow of the day from morning to night.
- Keep the entry between 5 and 7 sentences.
- End with a short, emotionally grounded closing sentence.

Photos:
`)
	for i, m := range t.Moments {
		fmt.Fprintf(b, "\nPhoto %d:\n", i+1)
		fmt.Fprintf(b, "- Time taken: %s\n", domain.CoalesceStr(m.TakenAt, unknownField))
		fmt.Fprintf(b, "- Description: %s\n", m.Description)
		fmt.Fprintf(b, "- Location: %s\n", domain.CoalesceStr(m.Location, unknownField))
		fmt.Fprintf(b, "- Weather: %s\n", domain.CoalesceStr(m.Weather, unknownField))
	}
	b.WriteString("\n")
	b.WriteString(lang.Instruction())
	b.WriteString("\n\nOutput ONLY the diary text.")
}

func (t WorkRecordTemplate) render(b *strings.Builder, lang LanguageInstruction) {
	b.WriteString("Convert the following work notes into a structured, polished portfolio entry suitable for a professional case study or performance review.\n\n")
	b.WriteString("Work notes:\n")
	b.WriteString(t.Notes)
	b.WriteString(`

Format Requirements:
- Use clear section headings: **Challenge**, **Approach**, **Outcome**, **Key Takeaways**
- Write in first person, professional and objective tone
- Be concise and data-driven where possible
- Focus on measurable impact, decisions made, and business value delivered
- Avoid emotional or reflective language; keep it factual and results-oriented
`)
	if t.CareerAlignment {
		b.WriteString(`
Career Alignment:
Explicitly connect this work to the user's career trajectory. Explain how the skills demonstrated, lessons learned, or outcomes achieved relate to their target role or desired career path. Be specific about transferable competencies.
`)
	}
	b.WriteString(`
Writing Style:
- Business report format with clear structure
- Active voice, direct statements
- Quantify results when possible (e.g., "reduced by 30%", "delivered in 2 weeks")
- Professional vocabulary appropriate for executive audiences

`)
	b.WriteString(lang.Instruction())
	b.WriteString("\n\nOutput ONLY the formatted portfolio text with headings.")
}

func (s ReferenceStyle) render(b *strings.Builder) {
	fmt.Fprintf(b, `Writing style:
Write in a style inspired by the GENERAL COMMUNICATION STYLE of %s.
- Reflect their abstract stylistic traits (tone, rhythm, emotional register)
- Do NOT imitate, role-play, or claim to be the real person
- Do NOT use or reference real quotes, slogans, or catchphrases
- Do NOT mention the reference by name in the output
- Write in an original voice that only reflects abstract stylistic traits
`, s.Reference)
}

func (ConversationalStyle) render(b *strings.Builder) {
	b.WriteString(`Writing style:
Use a modern, conversational tone.
- Natural, spoken-language flow
- Warm, relatable, and personal
- Clear emotional beats without exaggeration
- Short to medium-length sentences, easy to read
`)
}

func workNotes(moments []domain.MomentInput) string {
	parts := make([]string, 0, len(moments))
	for _, m := range moments {
		if d := strings.TrimSpace(m.Description); d != "" {
			parts = append(parts, d)
		}
	}
	if len(parts) == 0 {
		return "No details provided"
	}
	return strings.Join(parts, "\n\n")
}

// WorkNotes is the structured form behind a work-record moment.
type WorkNotes struct {
	Hypothesis  string
	Action      string
	Result      string
	Lesson      string
	CurrentRole string
	TargetRole  string
}

// FormatWorkNotes joins the non-empty fields into one labeled description.
func FormatWorkNotes(n WorkNotes) string {
	fields := []struct {
		label, value string
	}{
		{"Hypothesis", n.Hypothesis},
		{"Action", n.Action},
		{"Result", n.Result},
		{"Lesson", n.Lesson},
		{"Current Role", n.CurrentRole},
		{"Target Role", n.TargetRole},
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if v := strings.TrimSpace(f.value); v != "" {
			parts = append(parts, f.label+": "+v)
		}
	}
	return strings.Join(parts, "\n\n")
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max]) + "…"
}
