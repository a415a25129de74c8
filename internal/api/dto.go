package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/intelligence"
)

type momentRequest struct {
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
	TakenAt     string `json:"taken_at"`
	Location    string `json:"location"`
	Weather     string `json:"weather"`
}

type workNotesRequest struct {
	Hypothesis  string `json:"hypothesis"`
	Action      string `json:"action"`
	Result      string `json:"result"`
	Lesson      string `json:"lesson"`
	CurrentRole string `json:"current_role"`
	TargetRole  string `json:"target_role"`
}

type generateEntryRequest struct {
	Moments        []momentRequest   `json:"moments"`
	Kind           string            `json:"kind"`
	StyleReference string            `json:"style_reference"`
	EntryDate      string            `json:"entry_date"`
	WorkNotes      *workNotesRequest `json:"work_notes,omitempty"`
}

func (r generateEntryRequest) moments() []domain.MomentInput {
	out := make([]domain.MomentInput, 0, len(r.Moments)+1)
	for _, m := range r.Moments {
		out = append(out, domain.MomentInput{
			ImageURL:    m.ImageURL,
			Description: m.Description,
			TakenAt:     m.TakenAt,
			Location:    m.Location,
			Weather:     m.Weather,
		})
	}
	if r.WorkNotes != nil {
		out = append(out, domain.MomentInput{Description: intelligence.FormatWorkNotes(intelligence.WorkNotes{
			Hypothesis:  r.WorkNotes.Hypothesis,
			Action:      r.WorkNotes.Action,
			Result:      r.WorkNotes.Result,
			Lesson:      r.WorkNotes.Lesson,
			CurrentRole: r.WorkNotes.CurrentRole,
			TargetRole:  r.WorkNotes.TargetRole,
		})})
	}
	return out
}

// parseEntryDate accepts RFC 3339 or a bare YYYY-MM-DD. Empty means now.
func parseEntryDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, domain.NewValidationError("entry_date", fmt.Sprintf("unrecognised date %q", s))
}

type momentResponse struct {
	ID          string  `json:"id"`
	Position    int     `json:"position"`
	ImageURL    string  `json:"image_url"`
	Description string  `json:"description"`
	TakenAt     *string `json:"taken_at"`
	Location    *string `json:"location"`
	Weather     *string `json:"weather"`
}

type entryResponse struct {
	ID             string           `json:"id"`
	EntryDate      time.Time        `json:"entry_date"`
	Content        string           `json:"content"`
	Kind           string           `json:"kind"`
	StyleReference *string          `json:"style_reference"`
	CreatedAt      time.Time        `json:"created_at"`
	Moments        []momentResponse `json:"moments"`
}

func toEntryResponse(e *domain.Entry) entryResponse {
	out := entryResponse{
		ID:             e.ID,
		EntryDate:      e.EntryDate,
		Content:        e.Content,
		Kind:           string(e.Kind),
		StyleReference: e.StyleReference,
		CreatedAt:      e.CreatedAt,
		Moments:        make([]momentResponse, len(e.Moments)),
	}
	for i, m := range e.Moments {
		out.Moments[i] = momentResponse{
			ID:          m.ID,
			Position:    m.Position,
			ImageURL:    m.ImageURL,
			Description: m.Description,
			TakenAt:     m.TakenAt,
			Location:    m.Location,
			Weather:     m.Weather,
		}
	}
	return out
}

type songResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist"`
	PlaybackURL string    `json:"playback_url"`
	Mood        string    `json:"mood"`
	Genre       *string   `json:"genre"`
	Tags        *string   `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

func toSongResponse(s *domain.CatalogSong) songResponse {
	return songResponse{
		ID:          s.ID,
		Title:       s.Title,
		Artist:      s.Artist,
		PlaybackURL: s.PlaybackURL,
		Mood:        s.Mood,
		Genre:       s.Genre,
		Tags:        s.Tags,
		CreatedAt:   s.CreatedAt,
	}
}

type songRequest struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	PlaybackURL string `json:"playback_url"`
	Mood        string `json:"mood"`
	Genre       string `json:"genre"`
	Tags        string `json:"tags"`
}

func (r songRequest) toDomain(id string) *domain.CatalogSong {
	return &domain.CatalogSong{
		ID:          id,
		Title:       r.Title,
		Artist:      r.Artist,
		PlaybackURL: r.PlaybackURL,
		Mood:        r.Mood,
		Genre:       domain.StrPtr(r.Genre),
		Tags:        domain.StrPtr(r.Tags),
	}
}

type trackResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	ArtworkURL  string `json:"artwork_url,omitempty"`
	PlaybackURL string `json:"playback_url"`
}

type recommendationsResponse struct {
	Mood          string          `json:"mood"`
	CuratedSongs  []songResponse  `json:"curated_songs"`
	ExternalSongs []trackResponse `json:"external_songs"`
}

func toRecommendationsResponse(r *domain.Recommendations) recommendationsResponse {
	out := recommendationsResponse{
		Mood:          string(r.Mood),
		CuratedSongs:  make([]songResponse, len(r.CuratedSongs)),
		ExternalSongs: make([]trackResponse, len(r.ExternalSongs)),
	}
	for i := range r.CuratedSongs {
		out.CuratedSongs[i] = toSongResponse(&r.CuratedSongs[i])
	}
	for i, t := range r.ExternalSongs {
		out.ExternalSongs[i] = trackResponse{
			ID:          t.ID,
			Title:       t.Title,
			Artist:      t.Artist,
			ArtworkURL:  t.ArtworkURL,
			PlaybackURL: t.PlaybackURL,
		}
	}
	return out
}

type quoteRequest struct {
	Text     string `json:"text"`
	Author   string `json:"author"`
	Comment  string `json:"comment"`
	IsActive *bool  `json:"is_active"`
}

func (r quoteRequest) toDomain(id string) *domain.Quote {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &domain.Quote{
		ID:       id,
		Text:     r.Text,
		Author:   r.Author,
		Comment:  domain.StrPtr(r.Comment),
		IsActive: active,
	}
}

type quoteResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Comment   *string   `json:"comment"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toQuoteResponse(q *domain.Quote) quoteResponse {
	return quoteResponse{
		ID:        q.ID,
		Text:      q.Text,
		Author:    q.Author,
		Comment:   q.Comment,
		IsActive:  q.IsActive,
		CreatedAt: q.CreatedAt,
	}
}

type reactionRequest struct {
	RecommendationType string `json:"recommendation_type"`
	RecommendationID   string `json:"recommendation_id"`
	Emoji              string `json:"emoji"`
}

type reactionResponse struct {
	ID                 string    `json:"id"`
	RecommendationType string    `json:"recommendation_type"`
	RecommendationID   string    `json:"recommendation_id"`
	Emoji              string    `json:"emoji"`
	CreatedAt          time.Time `json:"created_at"`
}

func toReactionResponse(r domain.Reaction) reactionResponse {
	return reactionResponse{
		ID:                 r.ID,
		RecommendationType: string(r.RecommendationType),
		RecommendationID:   r.RecommendationID,
		Emoji:              r.Emoji,
		CreatedAt:          r.CreatedAt,
	}
}

type suggestStylesRequest struct {
	Descriptions []string `json:"descriptions"`
}
