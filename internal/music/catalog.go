package music

import (
	"context"

	"github.com/alexanderramin/daybook/internal/domain"
)

// Playlist is a saved collection in the external catalog.
type Playlist struct {
	ID   string
	Name string
}

// Catalog is the external music catalog used for recommendations.
// Every failure wraps domain.ErrExternalCatalogUnavailable.
type Catalog interface {
	SavedPlaylists(ctx context.Context, limit int) ([]Playlist, error)
	PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]domain.ExternalTrack, error)
	SearchTracks(ctx context.Context, query string, limit int) ([]domain.ExternalTrack, error)
}

// Entitlement decides whether a user may use the external catalog.
type Entitlement interface {
	Allowed(userID string) bool
}

// AllowList permits the listed users, or everyone when empty.
type AllowList []string

func (a AllowList) Allowed(userID string) bool {
	if len(a) == 0 {
		return true
	}
	for _, u := range a {
		if u == userID {
			return true
		}
	}
	return false
}
