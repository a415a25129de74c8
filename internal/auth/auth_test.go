package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T, secret string) *Signer {
	t.Helper()
	s, err := NewSigner(secret)
	require.NoError(t, err)
	return s
}

func TestSigner_RoundTrip(t *testing.T) {
	s := newTestSigner(t, "super-secret")

	tok, err := s.Issue(Identity{UserID: "user-123", Admin: true}, time.Hour)
	require.NoError(t, err)

	id, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "user-123", Admin: true}, id)
}

func TestSigner_Expired(t *testing.T) {
	s := newTestSigner(t, "secret")
	tok, err := s.Issue(Identity{UserID: "u1"}, -time.Second)
	require.NoError(t, err)

	_, err = s.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSigner_WrongSecret(t *testing.T) {
	tok, err := newTestSigner(t, "right").Issue(Identity{UserID: "u2"}, time.Hour)
	require.NoError(t, err)

	_, err = newTestSigner(t, "wrong").Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_RejectsOtherAlgorithms(t *testing.T) {
	s := newTestSigner(t, "secret")
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "u3",
	})
	signed, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = s.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_Validation(t *testing.T) {
	_, err := NewSigner("  ")
	assert.Error(t, err)

	_, err = newTestSigner(t, "k").Issue(Identity{}, time.Hour)
	assert.Error(t, err)

	_, err = newTestSigner(t, "k").Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	s := newTestSigner(t, "secret")
	userTok, err := s.Issue(Identity{UserID: "alice"}, time.Hour)
	require.NoError(t, err)
	adminTok, err := s.Issue(Identity{UserID: "root", Admin: true}, time.Hour)
	require.NoError(t, err)

	var seen Identity
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		admin  bool
		want   int
		user   string
	}{
		{"no header", "", false, http.StatusUnauthorized, ""},
		{"not bearer", "Basic abc", false, http.StatusUnauthorized, ""},
		{"garbage token", "Bearer nope", false, http.StatusUnauthorized, ""},
		{"valid user", "Bearer " + userTok, false, http.StatusNoContent, "alice"},
		{"user on admin route", "Bearer " + userTok, true, http.StatusForbidden, ""},
		{"admin on admin route", "Bearer " + adminTok, true, http.StatusNoContent, "root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = Identity{}
			var h http.Handler = inner
			if tt.admin {
				h = RequireAdmin(h)
			}
			h = Middleware(s, h)

			req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, tt.user, seen.UserID)
			if tt.want == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}
