package music

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// DefaultExpiryMargin is how long before expiry a cached token is refreshed.
const DefaultExpiryMargin = 60 * time.Second

const refreshTimeout = 10 * time.Second

// RefreshFunc exchanges stored credentials for a fresh access token.
type RefreshFunc func(ctx context.Context) (*oauth2.Token, error)

// NewOAuthRefresher returns a RefreshFunc that performs a refresh-token
// grant on every call. A rotated refresh token is kept for later calls.
func NewOAuthRefresher(clientID, clientSecret, tokenURL, refreshToken string) RefreshFunc {
	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: tokenURL, AuthStyle: oauth2.AuthStyleInHeader},
	}
	var mu sync.Mutex
	current := refreshToken

	return func(ctx context.Context) (*oauth2.Token, error) {
		mu.Lock()
		rt := current
		mu.Unlock()

		// A new source each time; oauth2's reuse logic would otherwise hand
		// back the cached token inside our margin.
		tok, err := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: rt}).Token()
		if err != nil {
			return nil, err
		}
		if tok.RefreshToken != "" && tok.RefreshToken != rt {
			mu.Lock()
			current = tok.RefreshToken
			mu.Unlock()
		}
		return tok, nil
	}
}

// CredentialCache holds the process-wide access token for the external
// catalog. Concurrent refreshes collapse into one upstream call.
type CredentialCache struct {
	refresh RefreshFunc
	margin  time.Duration
	now     func() time.Time

	mu    sync.Mutex
	token *oauth2.Token

	group singleflight.Group
}

// CacheOption customizes a CredentialCache.
type CacheOption func(*CredentialCache)

// WithExpiryMargin overrides DefaultExpiryMargin.
func WithExpiryMargin(d time.Duration) CacheOption {
	return func(c *CredentialCache) {
		if d >= 0 {
			c.margin = d
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) CacheOption {
	return func(c *CredentialCache) {
		if now != nil {
			c.now = now
		}
	}
}

func NewCredentialCache(refresh RefreshFunc, opts ...CacheOption) *CredentialCache {
	c := &CredentialCache{
		refresh: refresh,
		margin:  DefaultExpiryMargin,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var errNoRefresher = errors.New("no credential refresher configured")

// AccessToken returns a token valid for at least the expiry margin,
// refreshing first when needed.
func (c *CredentialCache) AccessToken(ctx context.Context) (string, error) {
	if tok := c.cached(); tok != "" {
		return tok, nil
	}
	if c.refresh == nil {
		return "", errNoRefresher
	}

	ch := c.group.DoChan("refresh", func() (any, error) {
		// Another caller may have stored a token while we waited.
		if tok := c.cached(); tok != "" {
			return tok, nil
		}
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		tok, err := c.refresh(rctx)
		if err != nil {
			return "", fmt.Errorf("refreshing access token: %w", err)
		}
		c.store(tok)
		return tok.AccessToken, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Invalidate drops the cached token so the next call refreshes.
func (c *CredentialCache) Invalidate() {
	c.mu.Lock()
	c.token = nil
	c.mu.Unlock()
}

func (c *CredentialCache) cached() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == nil || c.token.AccessToken == "" {
		return ""
	}
	if !c.token.Expiry.IsZero() && !c.now().Add(c.margin).Before(c.token.Expiry) {
		return ""
	}
	return c.token.AccessToken
}

func (c *CredentialCache) store(tok *oauth2.Token) {
	c.mu.Lock()
	c.token = tok
	c.mu.Unlock()
}
