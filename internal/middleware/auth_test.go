package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantgoods/storefront/pkg/auth"
)

func okHandler(called *bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuth_MissingCredential(t *testing.T) {
	var called bool
	handler := Auth(okHandler(&called))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/cart", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuth_GarbageCredential(t *testing.T) {
	var called bool
	handler := Auth(okHandler(&called))

	req := httptest.NewRequest("GET", "/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuth_CookieCredential(t *testing.T) {
	token, err := auth.GenerateToken(42, "jo@example.com", false)
	require.NoError(t, err)

	var gotID uint
	handler := Auth(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserID(r)
	})

	req := httptest.NewRequest("GET", "/cart", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(42), gotID)
}

func TestAuth_BearerFallback(t *testing.T) {
	token, err := auth.GenerateToken(42, "jo@example.com", false)
	require.NoError(t, err)

	var called bool
	handler := Auth(okHandler(&called))

	req := httptest.NewRequest("GET", "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestAdmin_RejectsNonAdmin(t *testing.T) {
	token, err := auth.GenerateToken(42, "jo@example.com", false)
	require.NoError(t, err)

	var called bool
	handler := Admin(okHandler(&called))

	req := httptest.NewRequest("GET", "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestAdmin_AllowsAdmin(t *testing.T) {
	token, err := auth.GenerateToken(1, "admin@example.com", true)
	require.NoError(t, err)

	var called bool
	handler := Admin(okHandler(&called))

	req := httptest.NewRequest("GET", "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestOptionalAuth(t *testing.T) {
	token, err := auth.GenerateToken(42, "jo@example.com", false)
	require.NoError(t, err)

	var gotID uint
	var hadID bool
	handler := OptionalAuth(func(w http.ResponseWriter, r *http.Request) {
		gotID, hadID = UserID(r)
	})

	// Anonymous requests pass straight through.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/reviews", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, hadID)

	// Authenticated requests get their identity attached.
	req := httptest.NewRequest("POST", "/reviews", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, hadID)
	assert.Equal(t, uint(42), gotID)
}
