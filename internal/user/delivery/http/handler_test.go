package http

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantgoods/storefront/internal/middleware"
)

func TestSetAuthCookieFollowsTokenTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL_HOURS", "72")

	w := httptest.NewRecorder()
	setAuthCookie(w, "token-value")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, middleware.CookieName, c.Name)
	assert.Equal(t, "token-value", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, 72*60*60, c.MaxAge, "cookie must live as long as the token")
}

func TestClearAuthCookieExpiresImmediately(t *testing.T) {
	w := httptest.NewRecorder()
	clearAuthCookie(w)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
