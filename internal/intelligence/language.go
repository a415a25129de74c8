package intelligence

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// LanguagePolicy is the output-language rule handed to the generator.
type LanguagePolicy int

const (
	// LanguageMatchInput asks the generator to answer in whatever language
	// the input uses, without translating.
	LanguageMatchInput LanguagePolicy = iota
	LanguageKorean
	LanguageEnglish
)

// LanguageInstruction is the result of language detection.
type LanguageInstruction struct {
	Policy LanguagePolicy
	Tag    language.Tag
}

var englishMarkers = map[string]bool{
	"the": true, "and": true, "a": true, "an": true, "to": true, "of": true,
	"i": true, "my": true, "was": true, "with": true, "at": true, "in": true,
	"on": true, "is": true, "we": true, "it": true, "for": true, "had": true,
}

// DetectLanguage classifies the dominant language of text. Any Hangul
// selects Korean. ASCII-only text containing common English words selects
// English. Everything else, including empty input, matches the input.
func DetectLanguage(text string) LanguageInstruction {
	text = norm.NFC.String(strings.TrimSpace(text))
	if text == "" {
		return LanguageInstruction{Policy: LanguageMatchInput, Tag: language.Und}
	}

	asciiLetters := true
	for _, r := range text {
		if isHangul(r) {
			return LanguageInstruction{Policy: LanguageKorean, Tag: language.Korean}
		}
		if unicode.IsLetter(r) && r > unicode.MaxASCII {
			asciiLetters = false
		}
	}

	if asciiLetters && hasEnglishMarker(text) {
		return LanguageInstruction{Policy: LanguageEnglish, Tag: language.English}
	}
	return LanguageInstruction{Policy: LanguageMatchInput, Tag: language.Und}
}

func isHangul(r rune) bool {
	return (r >= 0xAC00 && r <= 0xD7AF) ||
		(r >= 0x1100 && r <= 0x11FF) ||
		(r >= 0x3130 && r <= 0x318F)
}

func hasEnglishMarker(text string) bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	for _, w := range words {
		if englishMarkers[w] {
			return true
		}
	}
	return false
}

// Instruction renders the policy as a prompt line.
func (l LanguageInstruction) Instruction() string {
	switch l.Policy {
	case LanguageKorean:
		return "IMPORTANT: The user wrote in Korean. You MUST write the entire output in Korean (한국어)."
	case LanguageEnglish:
		return "IMPORTANT: Write the entire output in English."
	default:
		return "IMPORTANT: Write the entire output in the same language the user wrote in. Do not translate."
	}
}

func (p LanguagePolicy) String() string {
	switch p {
	case LanguageKorean:
		return "korean"
	case LanguageEnglish:
		return "english"
	default:
		return "match-input"
	}
}
