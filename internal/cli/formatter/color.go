package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// MoodStyle groups the mood labels into warm, cool, and intense colors.
func MoodStyle(mood domain.MoodLabel) lipgloss.Style {
	switch mood {
	case domain.MoodHappy, domain.MoodExcited, domain.MoodEnergetic, domain.MoodHopeful:
		return StyleYellow
	case domain.MoodCalm, domain.MoodPeaceful, domain.MoodDreamy:
		return StyleBlue
	case domain.MoodSad, domain.MoodMelancholy, domain.MoodNostalgic:
		return StylePurple
	case domain.MoodAngry:
		return StyleRed
	case domain.MoodRomantic:
		return StyleGreen
	default:
		return StyleDim
	}
}

// MoodBadge returns a colored mood indicator such as "● calm".
func MoodBadge(mood domain.MoodLabel) string {
	if mood == "" {
		return StyleDim.Render("● unknown")
	}
	return MoodStyle(mood).Render("● " + string(mood))
}

// KindBadge labels an entry kind.
func KindBadge(kind domain.EntryKind) string {
	switch kind {
	case domain.EntryKindWorkRecord:
		return StyleBlue.Render("▣ Work record")
	case domain.EntryKindJournal:
		return StyleGreen.Render("✎ Journal")
	default:
		return StyleDim.Render(string(kind))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
