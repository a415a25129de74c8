package domain

import (
	"fmt"
	"strings"
	"time"
)

// PlaceholderImageURL is stored for moments submitted without an uploaded photo.
const PlaceholderImageURL = "https://placehold.co/600x400?text=Photo"

type Entry struct {
	ID             string
	UserID         string
	EntryDate      time.Time
	Content        string
	Kind           EntryKind
	StyleReference *string
	CreatedAt      time.Time
	Moments        []Moment
}

type Moment struct {
	ID          string
	EntryID     string
	Position    int
	ImageURL    string
	Description string
	TakenAt     *string
	Location    *string
	Weather     *string
}

// MomentInput is a user-submitted moment before persistence.
type MomentInput struct {
	ImageURL    string
	Description string
	TakenAt     string
	Location    string
	Weather     string
}

// UsableMoments trims descriptions and drops moments whose description is
// empty afterwards. Order is preserved.
func UsableMoments(in []MomentInput) []MomentInput {
	out := make([]MomentInput, 0, len(in))
	for _, m := range in {
		m.Description = strings.TrimSpace(m.Description)
		if m.Description == "" {
			continue
		}
		m.ImageURL = CoalesceStr(strings.TrimSpace(m.ImageURL), PlaceholderImageURL)
		m.TakenAt = strings.TrimSpace(m.TakenAt)
		m.Location = strings.TrimSpace(m.Location)
		m.Weather = strings.TrimSpace(m.Weather)
		out = append(out, m)
	}
	return out
}

// Validate checks the invariants every persisted entry must satisfy.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.UserID) == "" {
		return NewValidationError("user_id", "required")
	}
	if strings.TrimSpace(e.Content) == "" {
		return NewValidationError("content", "must not be empty")
	}
	if e.Kind != EntryKindJournal && e.Kind != EntryKindWorkRecord {
		return NewValidationError("kind", fmt.Sprintf("unknown entry kind %q", e.Kind))
	}
	if len(e.Moments) == 0 {
		return NewValidationError("moments", "at least one moment is required")
	}
	for i, m := range e.Moments {
		if strings.TrimSpace(m.Description) == "" {
			return NewValidationError(fmt.Sprintf("moments[%d].description", i), "must not be empty")
		}
	}
	return nil
}

// OwnedBy reports whether userID owns the entry.
func (e *Entry) OwnedBy(userID string) bool {
	return e.UserID == userID
}

// Descriptions returns the moment descriptions in order.
func (e *Entry) Descriptions() []string {
	out := make([]string, 0, len(e.Moments))
	for _, m := range e.Moments {
		out = append(out, m.Description)
	}
	return out
}
