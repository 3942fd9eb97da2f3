package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIssuer() *TokenIssuer {
	return NewTokenIssuer("test-secret", 30*time.Minute, 7*24*time.Hour)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := newIssuer()
	userID := uuid.New()

	access, err := issuer.IssueAccessToken(userID)
	require.NoError(t, err)

	got, err := issuer.Verify(access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	issuer := newIssuer()

	refresh, err := issuer.IssueRefreshToken(uuid.New())
	require.NoError(t, err)

	_, err = issuer.Verify(refresh, TokenTypeAccess)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected access token")

	_, err = issuer.Verify(refresh, TokenTypeRefresh)
	assert.NoError(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute, -time.Minute)

	access, err := issuer.IssueAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = issuer.Verify(access, TokenTypeAccess)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	access, err := newIssuer().IssueAccessToken(uuid.New())
	require.NoError(t, err)

	other := NewTokenIssuer("different-secret", 30*time.Minute, time.Hour)
	_, err = other.Verify(access, TokenTypeAccess)
	assert.Error(t, err)
}

func newAuthRouter(issuer *TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", NewAuthMiddleware(issuer).Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": GetUserID(c)})
	})
	return r
}

func TestAuthenticateMiddleware(t *testing.T) {
	issuer := newIssuer()
	r := newAuthRouter(issuer)
	userID := uuid.New()

	access, err := issuer.IssueAccessToken(userID)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + access, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", access, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), userID.String())
			}
		})
	}
}
