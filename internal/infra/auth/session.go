package auth

import (
	"crypto/subtle"
	"net/http"
)

// CookieName carries the admin session token.
const CookieName = "vl_admin"

const sessionMaxAge = 60 * 60 * 24 * 7 // 7 days

// SessionVerifier decides whether a presented token represents the
// administrator. There is exactly one admin identity; the default
// implementation compares against a pre-shared constant. A deliberate
// (if weak) simplification, not a per-user signed token.
type SessionVerifier interface {
	Verify(token string) bool
}

type StaticTokenVerifier struct {
	secret string
}

func NewStaticTokenVerifier(secret string) *StaticTokenVerifier {
	return &StaticTokenVerifier{secret: secret}
}

// Verify requires both sides non-empty: an unconfigured deployment must
// never authorize an empty cookie.
func (v *StaticTokenVerifier) Verify(token string) bool {
	if v.secret == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(v.secret), []byte(token)) == 1
}

// TokenFromRequest pulls the session cookie value, "" when absent.
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// IsAuthed is the server-side check every admin operation repeats.
// The routing gate is convenience, never the sole guard.
func IsAuthed(r *http.Request, verifier SessionVerifier) bool {
	return verifier.Verify(TokenFromRequest(r))
}

// NewSessionCookie issues the admin cookie carrying the shared secret.
func NewSessionCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
}

// ClearSessionCookie expires the admin cookie.
func ClearSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
}
