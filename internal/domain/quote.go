package domain

import (
	"strings"
	"time"
)

type Quote struct {
	ID        string
	Text      string
	Author    string
	Comment   *string
	IsActive  bool
	CreatedAt time.Time
}

func (q *Quote) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewValidationError("text", "required")
	}
	if strings.TrimSpace(q.Author) == "" {
		return NewValidationError("author", "required")
	}
	return nil
}

// Reaction is an emoji a user attached to a recommendation shown for an entry.
type Reaction struct {
	ID                 string
	UserID             string
	EntryID            string
	RecommendationType RecommendationType
	RecommendationID   string
	Emoji              string
	CreatedAt          time.Time
}

func (r *Reaction) Validate() error {
	switch {
	case !r.RecommendationType.Valid():
		return NewValidationError("recommendation_type", "must be curated or external")
	case strings.TrimSpace(r.RecommendationID) == "":
		return NewValidationError("recommendation_id", "required")
	case strings.TrimSpace(r.Emoji) == "":
		return NewValidationError("emoji", "required")
	}
	return nil
}
