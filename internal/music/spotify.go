package music

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/zmb3/spotify/v2"
)

// DefaultSpotifyBaseURL is the Spotify Web API root.
const DefaultSpotifyBaseURL = "https://api.spotify.com/v1/"

// TokenProvider supplies bearer tokens for API calls.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
	Invalidate()
}

// SpotifyClient implements Catalog against the Spotify Web API.
type SpotifyClient struct {
	api *spotify.Client
}

var _ Catalog = (*SpotifyClient)(nil)

type spotifyOptions struct {
	base http.RoundTripper
}

// Option configures a SpotifyClient.
type Option func(*spotifyOptions)

// WithTransport overrides the transport under the bearer-token layer.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *spotifyOptions) {
		if rt != nil {
			o.base = rt
		}
	}
}

// NewSpotifyClient creates a Spotify client whose requests carry tokens
// from the provider.
func NewSpotifyClient(baseURL string, tokens TokenProvider, opts ...Option) (*SpotifyClient, error) {
	if tokens == nil {
		return nil, errors.New("spotify token provider required")
	}
	o := spotifyOptions{base: http.DefaultTransport}
	for _, opt := range opts {
		opt(&o)
	}

	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultSpotifyBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: &bearerTransport{tokens: tokens, base: o.base},
	}
	return &SpotifyClient{api: spotify.New(httpClient, spotify.WithBaseURL(baseURL))}, nil
}

// bearerTransport authorizes each request with the provider's current token
// and drops the cached token when Spotify rejects it.
type bearerTransport struct {
	tokens TokenProvider
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokens.AccessToken(req.Context())
	if err != nil {
		return nil, err
	}
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "Bearer "+token)
	resp, err := t.base.RoundTrip(r)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		t.tokens.Invalidate()
	}
	return resp, nil
}

func trackToDomain(t spotify.FullTrack) domain.ExternalTrack {
	artists := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		artists = append(artists, a.Name)
	}
	out := domain.ExternalTrack{
		ID:          string(t.ID),
		Title:       t.Name,
		Artist:      strings.Join(artists, ", "),
		PlaybackURL: t.ExternalURLs["spotify"],
	}
	if len(t.Album.Images) > 0 {
		out.ArtworkURL = t.Album.Images[0].URL
	}
	return out
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: spotify %s: %w", domain.ErrExternalCatalogUnavailable, op, err)
}

// SavedPlaylists lists the current user's playlists.
func (c *SpotifyClient) SavedPlaylists(ctx context.Context, limit int) ([]Playlist, error) {
	page, err := c.api.CurrentUsersPlaylists(ctx, spotify.Limit(limit))
	if err != nil {
		return nil, unavailable("playlists", err)
	}
	out := make([]Playlist, 0, len(page.Playlists))
	for _, p := range page.Playlists {
		out = append(out, Playlist{ID: string(p.ID), Name: p.Name})
	}
	return out, nil
}

// PlaylistTracks returns one page of a playlist's tracks. Episodes, local
// files and removed tracks without an ID are skipped.
func (c *SpotifyClient) PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]domain.ExternalTrack, error) {
	page, err := c.api.GetPlaylistItems(ctx, spotify.ID(playlistID), spotify.Limit(limit))
	if err != nil {
		return nil, unavailable("playlist items", err)
	}
	out := make([]domain.ExternalTrack, 0, len(page.Items))
	for _, item := range page.Items {
		if item.Track.Track == nil || item.Track.Track.ID == "" {
			continue
		}
		out = append(out, trackToDomain(*item.Track.Track))
	}
	return out, nil
}

// SearchTracks runs a keyword track search.
func (c *SpotifyClient) SearchTracks(ctx context.Context, query string, limit int) ([]domain.ExternalTrack, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", domain.ErrExternalCatalogUnavailable)
	}
	res, err := c.api.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(limit))
	if err != nil {
		return nil, unavailable("search", err)
	}
	if res.Tracks == nil {
		return []domain.ExternalTrack{}, nil
	}
	out := make([]domain.ExternalTrack, 0, len(res.Tracks.Tracks))
	for _, t := range res.Tracks.Tracks {
		if t.ID == "" {
			continue
		}
		out = append(out, trackToDomain(t))
	}
	return out, nil
}
