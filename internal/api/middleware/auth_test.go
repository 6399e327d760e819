package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wathera-admin/internal/auth"
)

func TestExtractToken_PrefersCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "access_token", Value: "from-cookie"})
	r.Header.Set("Authorization", "Bearer from-header")

	assert.Equal(t, "from-cookie", ExtractToken(r))
}

func TestExtractToken_BearerFallback(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer from-header")

	assert.Equal(t, "from-header", ExtractToken(r))
}

func TestExtractToken_Absent(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Equal(t, "", ExtractToken(r))
}

func TestAuth_ValidTokenReachesHandlerWithClaims(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	token, _, err := tokens.Generate("admin@gmail.com", time.Now())
	require.NoError(t, err)

	var gotEmail string
	handler := Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())
		require.NotNil(t, claims)
		gotEmail = claims.Email
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin@gmail.com", gotEmail)
}

func TestAuth_MissingTokenRejected(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	handler := Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ExpiredTokenRejected(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	token, _, err := tokens.Generate("admin@gmail.com", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	handler := Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
