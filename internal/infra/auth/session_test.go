package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticTokenVerifier(t *testing.T) {
	v := NewStaticTokenVerifier("s3cret")

	assert.True(t, v.Verify("s3cret"))
	assert.False(t, v.Verify("wrong"))
	assert.False(t, v.Verify(""))
}

func TestEmptySecretNeverMatches(t *testing.T) {
	// an unconfigured deployment must not silently authorize everyone
	v := NewStaticTokenVerifier("")

	assert.False(t, v.Verify(""))
	assert.False(t, v.Verify("anything"))
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/admin/leads", nil)
	assert.Equal(t, "", TokenFromRequest(r))

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "tok"})
	assert.Equal(t, "tok", TokenFromRequest(r))
}

func TestSessionCookieAttributes(t *testing.T) {
	c := NewSessionCookie("tok", true)

	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 60*60*24*7, c.MaxAge)
}

func TestClearSessionCookieExpires(t *testing.T) {
	c := ClearSessionCookie(false)

	assert.Equal(t, CookieName, c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
}
